package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// csvReader loads delimited text exports of a sheet.
type csvReader struct{}

func (csvReader) CanRead(path string) bool {
	return hasExt(path, ".csv", ".tsv")
}

func (csvReader) Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comma = sniffDelimiter(path)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New(name)
		}
		return nil, &ParseError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records [][]Cell
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		rec := make([]Cell, len(fields))
		for j, v := range fields {
			rec[j] = ParseCell(v)
		}
		records = append(records, rec)
	}
	return build(name, header, records)
}

func sniffDelimiter(path string) rune {
	if hasExt(path, ".tsv") {
		return '\t'
	}
	return ','
}
