package dataset

import "math"

// Kind is the storage type inferred for a whole column.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "datetime"
	case KindText:
		return "text"
	default:
		return "empty"
	}
}

// Label returns the dtype label reported for the column. A column with no
// values at all reads as float64, as spreadsheet readers load it.
func (k Kind) Label() string {
	switch k {
	case KindInt:
		return "int64"
	case KindBool:
		return "bool"
	case KindTime:
		return "datetime64[ns]"
	case KindText:
		return "object"
	default:
		return "float64"
	}
}

// IsNumeric reports whether outlier statistics apply to the column.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat || k == KindEmpty
}

// Column is a named, typed, read-only sequence of cells.
type Column struct {
	name  string
	kind  Kind
	cells []Cell
}

// NewColumn copies cells into a new column and infers its kind.
func NewColumn(name string, cells []Cell) *Column {
	cp := make([]Cell, len(cells))
	copy(cp, cells)
	return &Column{name: name, kind: inferKind(cp), cells: cp}
}

// Name returns the header of the column.
func (c *Column) Name() string { return c.name }

// Kind returns the inferred kind.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.cells) }

// Cell returns the cell at row i (0-based data row).
func (c *Column) Cell(i int) Cell { return c.cells[i] }

// IsMissing reports whether row i is empty.
func (c *Column) IsMissing(i int) bool { return c.cells[i].IsMissing() }

// Label returns the dtype label of the column. Integer and boolean columns
// with gaps widen to float64 and object, the way spreadsheet readers load them.
func (c *Column) Label() string {
	if c.MissingCount() > 0 {
		switch c.kind {
		case KindInt:
			return KindFloat.Label()
		case KindBool:
			return KindText.Label()
		}
	}
	return c.kind.Label()
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.cells {
		if cell.IsMissing() {
			n++
		}
	}
	return n
}

// Floats returns the non-missing numeric values with their row indices.
func (c *Column) Floats() (vals []float64, rows []int) {
	for i, cell := range c.cells {
		if v, ok := cell.Float(); ok {
			vals = append(vals, v)
			rows = append(rows, i)
		}
	}
	return vals, rows
}

// inferKind generalizes the kinds of all non-missing cells. Integral and
// fractional numbers merge to float; any other disagreement is text.
func inferKind(cells []Cell) Kind {
	kind := KindEmpty
	for _, cell := range cells {
		k := cellKind(cell)
		if k == KindEmpty || k == kind {
			continue
		}
		switch {
		case kind == KindEmpty:
			kind = k
		case kind == KindInt && k == KindFloat, kind == KindFloat && k == KindInt:
			kind = KindFloat
		default:
			return KindText
		}
	}
	return kind
}

func cellKind(c Cell) Kind {
	switch c.Kind() {
	case CellNumeric:
		v, _ := c.Float()
		if !math.IsInf(v, 0) && math.Trunc(v) == v {
			return KindInt
		}
		return KindFloat
	case CellText:
		return KindText
	case CellBoolean:
		return KindBool
	case CellTemporal:
		return KindTime
	default:
		return KindEmpty
	}
}
