package quality

import "github.com/KaramelBytes/sheetcheck/internal/dataset"

// NullValues reports the percentage of missing cells in every column.
func NullValues(ds *dataset.Dataset) NullProfile {
	out := make(NullProfile, 0, ds.Cols())
	for _, c := range ds.Columns() {
		out = append(out, NullStat{Column: c.Name(), Percent: percent(c.MissingCount(), ds.Rows())})
	}
	return out
}

// Duplicates counts rows identical to an earlier row. The first occurrence
// of a row is never counted.
func Duplicates(ds *dataset.Dataset) DuplicateReport {
	seen := make(map[string]struct{}, ds.Rows())
	dup := 0
	for i := 0; i < ds.Rows(); i++ {
		k := ds.RowKey(i)
		if _, ok := seen[k]; ok {
			dup++
			continue
		}
		seen[k] = struct{}{}
	}
	return DuplicateReport{
		TotalRows:           ds.Rows(),
		DuplicateRows:       dup,
		DuplicatePercentage: percent(dup, ds.Rows()),
	}
}

// ColumnTypes reports the dtype label of every column.
func ColumnTypes(ds *dataset.Dataset) TypeMap {
	out := make(TypeMap, 0, ds.Cols())
	for _, c := range ds.Columns() {
		out = append(out, ColumnType{Column: c.Name(), Type: c.Label()})
	}
	return out
}
