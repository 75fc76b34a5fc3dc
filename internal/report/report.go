// Package report renders check results as text tables, JSON or Markdown.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/sheetcheck/internal/quality"
	"github.com/KaramelBytes/sheetcheck/internal/utils"
)

// Format is an output format name.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned for a format other than text, json or markdown.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat resolves a format name; "md" is accepted for markdown and an
// empty name selects text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q (want text, json or markdown)", ErrUnknownFormat, s)
}

// Report is the rendered view of one run. Advanced is nil for a basic run.
type Report struct {
	File     string
	Rows     int
	Method   quality.Method
	Basic    *quality.BasicResults
	Advanced *quality.AdvancedResults
}

// New returns a report for a basic run.
func New(file string, rows int, res *quality.BasicResults) *Report {
	return &Report{File: file, Rows: rows, Basic: res}
}

// NewAdvanced returns a report for an advanced run.
func NewAdvanced(file string, rows int, method quality.Method, res *quality.AdvancedResults) *Report {
	return &Report{File: file, Rows: rows, Method: method, Basic: &res.BasicResults, Advanced: res}
}

// Write renders the report to w in format f.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return r.writeText(w)
	case FormatJSON:
		var v any = r.Basic
		if r.Advanced != nil {
			v = r.Advanced
		}
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, r.Markdown())
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
