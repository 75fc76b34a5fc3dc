package report

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/KaramelBytes/sheetcheck/internal/quality"
)

// Markdown renders the report with bracketed section headers.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATA QUALITY REPORT]\n")
	if r.File != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.File))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Basic.ColumnTypes)))

	b.WriteString("\n[NULL VALUES]\n")
	for _, n := range r.Basic.NullValues {
		b.WriteString(fmt.Sprintf("- %s: %s%%\n", safeName(n.Column), quality.FormatPercent(n.Percent)))
	}

	d := r.Basic.Duplicates
	b.WriteString("\n[DUPLICATES]\n")
	b.WriteString(fmt.Sprintf("- total_rows: %d\n", d.TotalRows))
	b.WriteString(fmt.Sprintf("- duplicate_rows: %d\n", d.DuplicateRows))
	b.WriteString(fmt.Sprintf("- duplicate_percentage: %s%%\n", quality.FormatPercent(d.DuplicatePercentage)))

	b.WriteString("\n[COLUMN TYPES]\n")
	for _, ct := range r.Basic.ColumnTypes {
		b.WriteString(fmt.Sprintf("- %s: %s\n", safeName(ct.Column), ct.Type))
	}

	a := r.Advanced
	if a == nil {
		return b.String()
	}

	b.WriteString("\n[OUTLIERS]\n")
	if r.Method != "" {
		b.WriteString(fmt.Sprintf("Method: %s\n", r.Method))
	}
	for _, co := range a.Outliers {
		if len(co.Outliers) == 0 {
			b.WriteString(fmt.Sprintf("- %s: none\n", safeName(co.Column)))
			continue
		}
		vals := make([]string, len(co.Outliers))
		for i, o := range co.Outliers {
			vals[i] = cast.ToString(o.Value)
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", safeName(co.Column), strings.Join(vals, ", ")))
	}

	if len(a.FormatConsistency) > 0 {
		b.WriteString("\n[FORMAT CONSISTENCY]\n")
		for _, f := range a.FormatConsistency {
			b.WriteString(fmt.Sprintf("- %s: mixed_case %d, leading_trailing_spaces %d, special_characters %d\n",
				safeName(f.Column), f.MixedCase, f.LeadingTrailingSpaces, f.SpecialCharacters))
		}
	}

	if len(a.FormulaErrors) > 0 {
		b.WriteString("\n[FORMULA ERRORS]\n")
		for _, fe := range a.FormulaErrors {
			b.WriteString(fmt.Sprintf("- %s: %s\n", safeName(fe.Column), strings.Join(fe.Tokens, ", ")))
		}
	}

	if len(a.CleaningRecommendations) > 0 {
		b.WriteString("\n[CLEANING RECOMMENDATIONS]\n")
		for _, rec := range a.CleaningRecommendations {
			b.WriteString("- ")
			b.WriteString(rec)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
