package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// CellKind tags the variant held by a Cell.
type CellKind uint8

const (
	CellMissing CellKind = iota
	CellNumeric
	CellText
	CellBoolean
	CellTemporal
)

func (k CellKind) String() string {
	switch k {
	case CellNumeric:
		return "numeric"
	case CellText:
		return "text"
	case CellBoolean:
		return "boolean"
	case CellTemporal:
		return "temporal"
	default:
		return "missing"
	}
}

// Cell is a single value of the table. The variant is fixed when the cell is
// created and never changes.
type Cell struct {
	kind CellKind
	num  float64
	str  string
	b    bool
	t    time.Time
}

// Missing returns an empty cell.
func Missing() Cell { return Cell{} }

// Num returns a numeric cell. NaN and infinities are stored as missing.
func Num(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{}
	}
	return Cell{kind: CellNumeric, num: v}
}

// Str returns a text cell.
func Str(s string) Cell { return Cell{kind: CellText, str: s} }

// Bool returns a boolean cell.
func Bool(v bool) Cell { return Cell{kind: CellBoolean, b: v} }

// Time returns a temporal cell. The zero time is stored as missing.
func Time(v time.Time) Cell {
	if v.IsZero() {
		return Cell{}
	}
	return Cell{kind: CellTemporal, t: v}
}

// Kind returns the variant held by the cell.
func (c Cell) Kind() CellKind { return c.kind }

// IsMissing reports whether the cell is empty.
func (c Cell) IsMissing() bool { return c.kind == CellMissing }

// Float returns the numeric value; ok is false for other variants.
func (c Cell) Float() (float64, bool) { return c.num, c.kind == CellNumeric }

// Text returns the string value of a text cell.
func (c Cell) Text() (string, bool) { return c.str, c.kind == CellText }

// Boolean returns the value of a boolean cell.
func (c Cell) Boolean() (bool, bool) { return c.b, c.kind == CellBoolean }

// Temporal returns the value of a date/time cell.
func (c Cell) Temporal() (time.Time, bool) { return c.t, c.kind == CellTemporal }

// String returns the text form of the cell. Missing cells render as "".
func (c Cell) String() string {
	switch c.kind {
	case CellNumeric:
		return cast.ToString(c.num)
	case CellText:
		return c.str
	case CellBoolean:
		return cast.ToString(c.b)
	case CellTemporal:
		if c.t.Hour() == 0 && c.t.Minute() == 0 && c.t.Second() == 0 && c.t.Nanosecond() == 0 {
			return c.t.Format("2006-01-02")
		}
		return c.t.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Equal reports whether both cells hold the same variant and value.
// Two missing cells are equal.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case CellNumeric:
		return c.num == o.num
	case CellText:
		return c.str == o.str
	case CellBoolean:
		return c.b == o.b
	case CellTemporal:
		return c.t.Equal(o.t)
	default:
		return true
	}
}

// appendKey writes an unambiguous encoding of the cell; equal cells produce
// equal keys.
func (c Cell) appendKey(b *strings.Builder) {
	b.WriteByte(byte('0' + c.kind))
	var v string
	switch c.kind {
	case CellNumeric:
		v = strconv.FormatFloat(c.num, 'g', -1, 64)
	case CellText:
		v = c.str
	case CellBoolean:
		v = strconv.FormatBool(c.b)
	case CellTemporal:
		v = strconv.FormatInt(c.t.UnixNano(), 10)
	}
	b.WriteString(strconv.Itoa(len(v)))
	b.WriteByte(':')
	b.WriteString(v)
}

// ParseCell infers a cell from its text form: blank is missing, then number,
// boolean, date/time, and finally text. The original string is kept for text
// cells so surrounding whitespace stays visible to the format checks.
func ParseCell(s string) Cell {
	v := strings.TrimSpace(s)
	if v == "" {
		return Missing()
	}
	if x, err := strconv.ParseFloat(v, 64); err == nil {
		return Num(x)
	}
	switch strings.ToLower(v) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if t, ok := parseTimeMaybe(v); ok {
		return Time(t)
	}
	return Str(s)
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
