package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cast"

	"github.com/KaramelBytes/sheetcheck/internal/quality"
)

// Section titles of the text report, in print order.
const (
	SectionBasic           = "Basic Checks"
	SectionOutliers        = "Outliers"
	SectionFormat          = "Format Consistency"
	SectionFormulaErrors   = "Formula Errors"
	SectionRecommendations = "Cleaning Recommendations"
)

const textTitle = "=== Excel Data Quality Report ==="

func (r *Report) writeText(w io.Writer) error {
	fmt.Fprintf(w, "\n%s\n\n", textTitle)
	if r.File != "" {
		fmt.Fprintf(w, "File: %s (%d rows)\n\n", r.File, r.Rows)
	}

	heading(w, SectionBasic)
	io.WriteString(w, "1. Null Values (% per column):\n")
	t := newTable(w, "Column", "Null %")
	for _, n := range r.Basic.NullValues {
		t.AppendRow(table.Row{n.Column, quality.FormatPercent(n.Percent) + "%"})
	}
	t.Render()

	fmt.Fprintln(w, "\n2. Duplicate Rows:")
	d := r.Basic.Duplicates
	t = newTable(w, "Metric", "Value")
	t.AppendRow(table.Row{"total_rows", d.TotalRows})
	t.AppendRow(table.Row{"duplicate_rows", d.DuplicateRows})
	t.AppendRow(table.Row{"duplicate_percentage", quality.FormatPercent(d.DuplicatePercentage)})
	t.Render()

	fmt.Fprintln(w, "\n3. Column Data Types:")
	t = newTable(w, "Column", "Type")
	for _, ct := range r.Basic.ColumnTypes {
		t.AppendRow(table.Row{ct.Column, ct.Type})
	}
	t.Render()

	a := r.Advanced
	if a == nil {
		return nil
	}

	heading(w, SectionOutliers)
	if r.Method != "" {
		fmt.Fprintf(w, "Method: %s\n", r.Method)
	}
	if a.Outliers.Total() == 0 {
		fmt.Fprintln(w, "   none found")
	} else {
		t = newTable(w, "Column", "Count", "Values", "Rows")
		for _, co := range a.Outliers {
			if len(co.Outliers) == 0 {
				continue
			}
			vals := make([]string, len(co.Outliers))
			rows := make([]string, len(co.Outliers))
			for i, o := range co.Outliers {
				vals[i] = cast.ToString(o.Value)
				rows[i] = cast.ToString(o.Row + 2) // sheet row: 1-based plus header
			}
			t.AppendRow(table.Row{co.Column, len(co.Outliers), strings.Join(vals, ", "), strings.Join(rows, ", ")})
		}
		t.Render()
	}

	heading(w, SectionFormat)
	if len(a.FormatConsistency) == 0 {
		fmt.Fprintln(w, "   no text columns")
	} else {
		t = newTable(w, "Column", "Mixed case", "Leading/trailing spaces", "Special characters")
		for _, f := range a.FormatConsistency {
			t.AppendRow(table.Row{f.Column, f.MixedCase, f.LeadingTrailingSpaces, f.SpecialCharacters})
		}
		t.Render()
	}

	heading(w, SectionFormulaErrors)
	if len(a.FormulaErrors) == 0 {
		fmt.Fprintln(w, "   none found")
	} else {
		t = newTable(w, "Column", "Errors")
		for _, fe := range a.FormulaErrors {
			t.AppendRow(table.Row{fe.Column, strings.Join(fe.Tokens, ", ")})
		}
		t.Render()
	}

	heading(w, SectionRecommendations)
	if len(a.CleaningRecommendations) == 0 {
		fmt.Fprintln(w, "   no cleaning needed")
	}
	for i, rec := range a.CleaningRecommendations {
		fmt.Fprintf(w, "%d. %s\n", i+1, rec)
	}
	return nil
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

func newTable(w io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}
