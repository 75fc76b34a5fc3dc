package quality

import (
	"strings"

	"github.com/KaramelBytes/sheetcheck/internal/dataset"
)

// ErrorTokens are the spreadsheet error markers looked for, in report order.
var ErrorTokens = []string{"#N/A", "#REF!", "#VALUE!", "#DIV/0!", "#NUM!", "#NAME?", "#NULL!"}

// FormulaErrors lists, per column, which error tokens occur in the text form
// of any cell. Columns without a token are left out.
func FormulaErrors(ds *dataset.Dataset) FormulaErrorMap {
	out := FormulaErrorMap{}
	for _, c := range ds.Columns() {
		found := make([]bool, len(ErrorTokens))
		for i := 0; i < c.Len(); i++ {
			cell := c.Cell(i)
			if cell.IsMissing() {
				continue
			}
			s := cell.String()
			if !strings.Contains(s, "#") {
				continue
			}
			for k, tok := range ErrorTokens {
				if !found[k] && strings.Contains(s, tok) {
					found[k] = true
				}
			}
		}
		var tokens []string
		for k, ok := range found {
			if ok {
				tokens = append(tokens, ErrorTokens[k])
			}
		}
		if len(tokens) > 0 {
			out = append(out, ColumnFormulaErrors{Column: c.Name(), Tokens: tokens})
		}
	}
	return out
}
