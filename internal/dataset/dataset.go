// Package dataset holds the in-memory table checked by sheetcheck and the
// readers that load it from spreadsheet files.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Dataset is an ordered set of uniquely named columns of equal length.
// It is built once and never modified afterwards.
type Dataset struct {
	name  string
	cols  []*Column
	index map[string]int // name -> col index
	rows  int
}

// New validates the columns and returns a Dataset.
func New(name string, cols ...*Column) (*Dataset, error) {
	d := &Dataset{name: name, cols: make([]*Column, len(cols)), index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("%w: column %d is nil", ErrShape, i)
		}
		if _, dup := d.index[c.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", ErrShape, c.Name())
		}
		if i == 0 {
			d.rows = c.Len()
		} else if c.Len() != d.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrShape, c.Name(), c.Len(), d.rows)
		}
		d.cols[i] = c
		d.index[c.Name()] = i
	}
	return d, nil
}

func (d *Dataset) Name() string { return d.name }
func (d *Dataset) Rows() int    { return d.rows }
func (d *Dataset) Cols() int    { return len(d.cols) }

// Column returns the i-th column in load order.
func (d *Dataset) Column(i int) *Column { return d.cols[i] }

// Columns returns the columns in load order.
func (d *Dataset) Columns() []*Column {
	out := make([]*Column, len(d.cols))
	copy(out, d.cols)
	return out
}

func (d *Dataset) ColumnByName(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

// Names returns the column names in load order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name()
	}
	return out
}

// Row returns a copy of the cells of row i in column order.
func (d *Dataset) Row(i int) []Cell {
	out := make([]Cell, len(d.cols))
	for j, c := range d.cols {
		out[j] = c.Cell(i)
	}
	return out
}

// RowKey returns a string that is equal for two rows exactly when every
// cell of the rows is equal.
func (d *Dataset) RowKey(i int) string {
	var b strings.Builder
	for _, c := range d.cols {
		c.Cell(i).appendKey(&b)
	}
	return b.String()
}

// build assembles a Dataset from a header row and decoded records. Rows are
// padded to the widest record, columns past the header are named like blank
// headers, and trailing all-missing rows are dropped.
func build(name string, header []string, records [][]Cell) (*Dataset, error) {
	for len(records) > 0 && blankRow(records[len(records)-1]) {
		records = records[:len(records)-1]
	}
	width := len(header)
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	names := normalizeHeader(header, width)
	cols := make([]*Column, width)
	for j := 0; j < width; j++ {
		cells := make([]Cell, len(records))
		for i, rec := range records {
			if j < len(rec) {
				cells[i] = rec[j]
			}
		}
		cols[j] = NewColumn(names[j], cells)
	}
	return New(name, cols...)
}

func blankRow(rec []Cell) bool {
	for _, c := range rec {
		if !c.IsMissing() {
			return false
		}
	}
	return true
}

// normalizeHeader names blank headers "Unnamed: <i>" and suffixes repeated
// names with ".<n>" so every column name is unique.
func normalizeHeader(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		n := ""
		if i < len(header) {
			n = header[i]
		}
		if strings.TrimSpace(n) == "" {
			n = "Unnamed: " + strconv.Itoa(i)
		}
		base := n
		for k := 1; seen[n]; k++ {
			n = base + "." + strconv.Itoa(k)
		}
		seen[n] = true
		names[i] = n
	}
	return names
}
