package dataset

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/sheetcheck/internal/utils"
)

// Reader decodes one file format into a Dataset.
type Reader interface {
	CanRead(path string) bool
	Read(path string) (*Dataset, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// Load reads the first sheet of the file at path. A missing path or a
// non-regular file fails with a *NotFoundError before anything is read; other
// stat failures are returned as is. Undecodable content fails with a
// *ParseError.
func Load(path string) (*Dataset, error) {
	ok, err := utils.FileExists(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	for _, r := range registry {
		if !r.CanRead(path) {
			continue
		}
		ds, err := r.Read(path)
		if err != nil {
			if errors.Is(err, ErrParse) {
				return nil, err
			}
			return nil, &ParseError{Path: path, Err: err}
		}
		return ds, nil
	}
	return nil, &ParseError{Path: path, Err: ErrUnsupportedFormat}
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func init() {
	Register(xlsxReader{})
	Register(csvReader{})
}
