package quality

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Result maps are ordered slices so that JSON objects list columns in load
// order. Each type has a Get helper for lookups by column name.

type field struct {
	key string
	val any
}

func marshalObject(fields []field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.val)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// percent returns part/total*100 rounded half away from zero to two
// decimals. A zero total yields 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	p := decimal.NewFromInt(int64(part)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(total)))
	return p.Round(2).InexactFloat64()
}

// NullStat is the missing-value percentage of one column.
type NullStat struct {
	Column  string
	Percent float64
}

// NullProfile lists the missing percentage of every column.
type NullProfile []NullStat

func (p NullProfile) Get(column string) (float64, bool) {
	for _, s := range p {
		if s.Column == column {
			return s.Percent, true
		}
	}
	return 0, false
}

func (p NullProfile) MarshalJSON() ([]byte, error) {
	fields := make([]field, len(p))
	for i, s := range p {
		fields[i] = field{s.Column, s.Percent}
	}
	return marshalObject(fields)
}

// DuplicateReport summarizes whole-row duplication.
type DuplicateReport struct {
	TotalRows           int     `json:"total_rows"`
	DuplicateRows       int     `json:"duplicate_rows"`
	DuplicatePercentage float64 `json:"duplicate_percentage"`
}

// ColumnType is the dtype label of one column.
type ColumnType struct {
	Column string
	Type   string
}

// TypeMap lists the type label of every column.
type TypeMap []ColumnType

func (m TypeMap) Get(column string) (string, bool) {
	for _, t := range m {
		if t.Column == column {
			return t.Type, true
		}
	}
	return "", false
}

func (m TypeMap) MarshalJSON() ([]byte, error) {
	fields := make([]field, len(m))
	for i, t := range m {
		fields[i] = field{t.Column, t.Type}
	}
	return marshalObject(fields)
}

// Outlier is one flagged value and the 0-based data row it came from.
type Outlier struct {
	Row   int
	Value float64
}

// ColumnOutliers holds the flagged values of one numeric column in row order.
type ColumnOutliers struct {
	Column   string
	Outliers []Outlier
}

// Values returns the flagged values, one entry per occurrence.
func (c ColumnOutliers) Values() []float64 {
	out := make([]float64, len(c.Outliers))
	for i, o := range c.Outliers {
		out[i] = o.Value
	}
	return out
}

// OutlierMap lists every numeric column, including those with no outliers.
// It marshals value-only: column -> [values].
type OutlierMap []ColumnOutliers

func (m OutlierMap) Get(column string) (ColumnOutliers, bool) {
	for _, c := range m {
		if c.Column == column {
			return c, true
		}
	}
	return ColumnOutliers{}, false
}

// Total returns the number of flagged values across all columns.
func (m OutlierMap) Total() int {
	n := 0
	for _, c := range m {
		n += len(c.Outliers)
	}
	return n
}

func (m OutlierMap) MarshalJSON() ([]byte, error) {
	fields := make([]field, len(m))
	for i, c := range m {
		fields[i] = field{c.Column, c.Values()}
	}
	return marshalObject(fields)
}

// FormatCounts are the three format counters of a text column.
type FormatCounts struct {
	MixedCase             int `json:"mixed_case"`
	LeadingTrailingSpaces int `json:"leading_trailing_spaces"`
	SpecialCharacters     int `json:"special_characters"`
}

// FormatIssues is the format record of one text column.
type FormatIssues struct {
	Column string
	FormatCounts
}

// FormatReport lists every text column with its counters.
type FormatReport []FormatIssues

func (r FormatReport) Get(column string) (FormatCounts, bool) {
	for _, f := range r {
		if f.Column == column {
			return f.FormatCounts, true
		}
	}
	return FormatCounts{}, false
}

func (r FormatReport) MarshalJSON() ([]byte, error) {
	fields := make([]field, len(r))
	for i, f := range r {
		fields[i] = field{f.Column, f.FormatCounts}
	}
	return marshalObject(fields)
}

// ColumnFormulaErrors lists the error tokens found in one column.
type ColumnFormulaErrors struct {
	Column string
	Tokens []string
}

// FormulaErrorMap lists only the columns where a token was found.
type FormulaErrorMap []ColumnFormulaErrors

func (m FormulaErrorMap) Get(column string) ([]string, bool) {
	for _, f := range m {
		if f.Column == column {
			return f.Tokens, true
		}
	}
	return nil, false
}

func (m FormulaErrorMap) MarshalJSON() ([]byte, error) {
	fields := make([]field, len(m))
	for i, f := range m {
		fields[i] = field{f.Column, f.Tokens}
	}
	return marshalObject(fields)
}

// BasicResults is the result of a basic run.
type BasicResults struct {
	NullValues  NullProfile     `json:"null_values"`
	Duplicates  DuplicateReport `json:"duplicates"`
	ColumnTypes TypeMap         `json:"column_types"`
}

// AdvancedResults extends the basic results with the advanced checks.
type AdvancedResults struct {
	BasicResults
	Outliers                OutlierMap      `json:"outliers"`
	FormatConsistency       FormatReport    `json:"format_consistency"`
	FormulaErrors           FormulaErrorMap `json:"formula_errors"`
	CleaningRecommendations []string        `json:"cleaning_recommendations"`
}
