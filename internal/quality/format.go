package quality

import (
	"strings"
	"unicode"

	"github.com/KaramelBytes/sheetcheck/internal/dataset"
)

// FormatConsistency counts case, whitespace and special-character issues in
// the string cells of every object column.
func FormatConsistency(ds *dataset.Dataset) FormatReport {
	out := FormatReport{}
	for _, c := range ds.Columns() {
		if c.Label() != dataset.KindText.Label() {
			continue
		}
		fi := FormatIssues{Column: c.Name()}
		for i := 0; i < c.Len(); i++ {
			s, ok := c.Cell(i).Text()
			if !ok {
				continue
			}
			if isMixedCase(s) {
				fi.MixedCase++
			}
			if s != strings.TrimSpace(s) {
				fi.LeadingTrailingSpaces++
			}
			if hasSpecial(s) {
				fi.SpecialCharacters++
			}
		}
		out = append(out, fi)
	}
	return out
}

// isMixedCase reports whether s has both a lower and an upper case letter.
func isMixedCase(s string) bool {
	return s != strings.ToLower(s) && s != strings.ToUpper(s)
}

func hasSpecial(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) >= 0
}
