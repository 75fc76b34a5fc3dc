package quality

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// HighNullPercent is the missing percentage above which removing the column
// is suggested instead of filling it.
const HighNullPercent = 50.0

// Recommendations turns computed profiles into cleaning advice. Advice is
// grouped by category (missing values, duplicates, case, whitespace) and
// follows column order within a category.
func Recommendations(nulls NullProfile, dups DuplicateReport, formats FormatReport) []string {
	recs := []string{}
	for _, n := range nulls {
		if n.Percent > HighNullPercent {
			recs = append(recs, fmt.Sprintf("Consider removing column '%s' (%s%% missing values)", n.Column, FormatPercent(n.Percent)))
		}
	}
	for _, n := range nulls {
		if n.Percent > 0 && n.Percent <= HighNullPercent {
			recs = append(recs, fmt.Sprintf("Handle missing values in column '%s' (%s%% missing)", n.Column, FormatPercent(n.Percent)))
		}
	}
	if dups.DuplicateRows > 0 {
		recs = append(recs, fmt.Sprintf("Remove %d duplicate rows", dups.DuplicateRows))
	}
	for _, f := range formats {
		if f.MixedCase > 0 {
			recs = append(recs, fmt.Sprintf("Standardize case in column '%s' (%d values with mixed case)", f.Column, f.MixedCase))
		}
	}
	for _, f := range formats {
		if f.LeadingTrailingSpaces > 0 {
			recs = append(recs, fmt.Sprintf("Trim leading/trailing spaces in column '%s' (%d values affected)", f.Column, f.LeadingTrailingSpaces))
		}
	}
	return recs
}

// FormatPercent prints a percentage rounded to two decimals, always with a
// fractional part: 60 prints as "60.0", 12.345 as "12.35".
func FormatPercent(p float64) string {
	s := decimal.NewFromFloat(p).Round(2).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
