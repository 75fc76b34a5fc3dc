package dataset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// xlsxReader loads the first worksheet of an Office Open XML workbook.
type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return hasExt(path, ".xlsx", ".xlsm", ".xltx", ".xltm")
}

func (xlsxReader) Read(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}
	sheet := sheets[0]

	s := &sheetDecoder{f: f, sheet: sheet, dateStyles: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		s.date1904 = *props.Date1904
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer rows.Close()

	var header []string
	var records [][]Cell
	rowNum := 0
	for rows.Next() {
		rowNum++
		raw, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("row %d: %w", rowNum, err)}
		}
		if rowNum == 1 {
			header = raw
			continue
		}
		rec := make([]Cell, len(raw))
		for j, v := range raw {
			c, err := s.decode(j+1, rowNum, v)
			if err != nil {
				return nil, &ParseError{Path: path, Err: err}
			}
			rec[j] = c
		}
		records = append(records, rec)
	}
	if err := rows.Error(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return build(name, header, records)
}

type sheetDecoder struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool // style index -> has a date/time number format
}

// decode turns the raw value of one cell into a Cell. Error values and
// strings stay text so their tokens survive verbatim.
func (s *sheetDecoder) decode(col, row int, raw string) (Cell, error) {
	if raw == "" {
		return Missing(), nil
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Cell{}, err
	}
	typ, err := s.f.GetCellType(s.sheet, ref)
	if err != nil {
		return Cell{}, fmt.Errorf("cell %s: %w", ref, err)
	}
	switch typ {
	case excelize.CellTypeBool:
		return Bool(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeError, excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return Str(raw), nil
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return Time(t), nil
		}
		if t, ok := parseTimeMaybe(raw); ok {
			return Time(t), nil
		}
		return Str(raw), nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Str(raw), nil
	}
	isDate, err := s.isDateCell(ref)
	if err != nil {
		return Cell{}, fmt.Errorf("cell %s: %w", ref, err)
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(v, s.date1904)
		if err == nil {
			return Time(t), nil
		}
	}
	return Num(v), nil
}

func (s *sheetDecoder) isDateCell(ref string) (bool, error) {
	idx, err := s.f.GetCellStyle(s.sheet, ref)
	if err != nil {
		return false, err
	}
	if d, ok := s.dateStyles[idx]; ok {
		return d, nil
	}
	d := false
	if idx != 0 {
		style, err := s.f.GetStyle(idx)
		if err != nil {
			return false, err
		}
		d = isDateFormat(style.NumFmt, style.CustomNumFmt)
	}
	s.dateStyles[idx] = d
	return d, nil
}

var (
	fmtLiteral = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.|_.|\*.`)
	fmtDate    = regexp.MustCompile(`[yYdDhHsSmM]`)
)

// isDateFormat reports whether a number format renders a date or time.
// Builtin ids 14-22 and 45-47 are the date and time formats; a custom code
// is a date format when its first section uses a date or time token outside
// quoted text, brackets and escapes.
func isDateFormat(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		code := *custom
		if i := strings.IndexByte(code, ';'); i >= 0 {
			code = code[:i]
		}
		if strings.EqualFold(code, "general") {
			return false
		}
		return fmtDate.MatchString(fmtLiteral.ReplaceAllString(code, ""))
	}
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}
