package dataset_test

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/sheetcheck/internal/dataset"
	"github.com/KaramelBytes/sheetcheck/internal/quality"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	p := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, f.SaveAs(p))
	return p
}

func TestLoadNotFound(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrNotFound))
	var nf *dataset.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Contains(t, err.Error(), "missing.xlsx")
}

func TestLoadDirectoryIsNotFound(t *testing.T) {
	_, err := dataset.Load(t.TempDir())
	assert.True(t, errors.Is(err, dataset.ErrNotFound))
}

func TestLoadStatFailureIsNotNotFound(t *testing.T) {
	_, err := dataset.Load("bad\x00name.xlsx")
	require.Error(t, err)
	var nf *dataset.NotFoundError
	assert.False(t, errors.As(err, &nf), "got %v", err)
	assert.False(t, errors.Is(err, dataset.ErrParse))
}

// writeRawWorkbook zips a minimal workbook around the given sheet data XML.
// excelize has no setter for error-typed cells, so the part is written by hand.
func writeRawWorkbook(t *testing.T, sheetData string) string {
	t.Helper()
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`,
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Sheet1" sheetId="1" r:id="rId1"/></sheets>
</workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>` + sheetData + `</sheetData></worksheet>`,
	}
	p := filepath.Join(t.TempDir(), "errors.xlsx")
	out, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
	return p
}

func TestLoadXLSXErrorAndFormulaCells(t *testing.T) {
	p := writeRawWorkbook(t,
		`<row r="1">`+
			`<c r="A1" t="inlineStr"><is><t>id</t></is></c>`+
			`<c r="B1" t="inlineStr"><is><t>lookup</t></is></c>`+
			`<c r="C1" t="inlineStr"><is><t>label</t></is></c>`+
			`</row>`+
			`<row r="2">`+
			`<c r="A2"><v>1</v></c>`+
			`<c r="B2" t="e"><v>#N/A</v></c>`+
			`<c r="C2" t="str"><f>"a"&amp;"b"</f><v>ab</v></c>`+
			`</row>`+
			`<row r="3">`+
			`<c r="A3"><v>2</v></c>`+
			`<c r="B3" t="e"><f>1/0</f><v>#DIV/0!</v></c>`+
			`<c r="C3" t="str"><f>"c"</f><v>c</v></c>`+
			`</row>`)

	ds, err := dataset.Load(p)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "lookup", "label"}, ds.Names())
	require.Equal(t, 2, ds.Rows())

	lookup, _ := ds.ColumnByName("lookup")
	s, ok := lookup.Cell(0).Text()
	require.True(t, ok, "error cell must load as text, got %v", lookup.Cell(0).Kind())
	assert.Equal(t, "#N/A", s)
	s, ok = lookup.Cell(1).Text()
	require.True(t, ok)
	assert.Equal(t, "#DIV/0!", s)

	label, _ := ds.ColumnByName("label")
	s, ok = label.Cell(0).Text()
	require.True(t, ok)
	assert.Equal(t, "ab", s)

	fe := quality.FormulaErrors(ds)
	toks, ok := fe.Get("lookup")
	require.True(t, ok)
	assert.Equal(t, []string{"#N/A", "#DIV/0!"}, toks)
	_, ok = fe.Get("label")
	assert.False(t, ok)
}

func TestLoadCSVInfinitiesAreMissing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "values.csv")
	require.NoError(t, os.WriteFile(p, []byte("v\n1\n2\n3\n4\n5\ninf\n-Infinity\n"), 0o644))

	ds, err := dataset.Load(p)
	require.NoError(t, err)
	v := ds.Column(0)
	assert.Equal(t, dataset.KindInt, v.Kind())
	assert.True(t, v.IsMissing(5))
	assert.True(t, v.IsMissing(6))

	c := quality.NewChecker(ds, quality.Options{Method: quality.MethodIQR}, nil)
	res, err := c.RunAdvanced()
	require.NoError(t, err)
	co, ok := res.Outliers.Get("v")
	require.True(t, ok)
	assert.Empty(t, co.Outliers)
	_, err = json.Marshal(res)
	require.NoError(t, err)
}

func TestLoadXLSX(t *testing.T) {
	day := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	p := writeWorkbook(t, [][]any{
		{"id", "name", "amount", "paid", "ordered"},
		{1, "Alice", 10.5, true, day},
		{2, " bob", 99, false, day},
		{3, "#DIV/0!", nil, true, day},
	})

	ds, err := dataset.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "orders", ds.Name())
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"id", "name", "amount", "paid", "ordered"}, ds.Names())

	id, _ := ds.ColumnByName("id")
	assert.Equal(t, dataset.KindInt, id.Kind())

	amount, _ := ds.ColumnByName("amount")
	assert.Equal(t, dataset.KindFloat, amount.Kind())
	assert.True(t, amount.IsMissing(2))

	paid, _ := ds.ColumnByName("paid")
	assert.Equal(t, dataset.KindBool, paid.Kind())

	ordered, _ := ds.ColumnByName("ordered")
	require.Equal(t, dataset.KindTime, ordered.Kind())
	got, ok := ordered.Cell(0).Temporal()
	require.True(t, ok)
	assert.True(t, got.Equal(day), "got %v", got)

	name, _ := ds.ColumnByName("name")
	assert.Equal(t, " bob", name.Cell(1).String())
	assert.Equal(t, "#DIV/0!", name.Cell(2).String())
}

func TestLoadXLSXUsesFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "first"))
	require.NoError(t, f.SetCellValue("Other", "A1", "second"))
	p := filepath.Join(t.TempDir(), "two.xlsx")
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	ds, err := dataset.Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, ds.Names())
	assert.Equal(t, 0, ds.Rows())
}

func TestLoadMalformedWorkbook(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(p, []byte("not a zip archive"), 0o644))
	_, err := dataset.Load(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrParse))
	assert.False(t, errors.Is(err, dataset.ErrNotFound))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))
	_, err := dataset.Load(p)
	assert.True(t, errors.Is(err, dataset.ErrParse))
	assert.True(t, errors.Is(err, dataset.ErrUnsupportedFormat))
}

func TestLoadCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "people.csv")
	content := "\ufeffname,age,,age\n" +
		"Alice,30,x,1\n" +
		" Bob ,,y\n" +
		",,,\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	ds, err := dataset.Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "Unnamed: 2", "age.1"}, ds.Names())
	assert.Equal(t, 2, ds.Rows())

	name := ds.Column(0)
	assert.Equal(t, " Bob ", name.Cell(1).String())
	age := ds.Column(1)
	assert.Equal(t, dataset.KindInt, age.Kind())
	assert.True(t, age.IsMissing(1))
	assert.True(t, ds.Column(3).IsMissing(1))
}

func TestLoadTSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "scores.tsv")
	require.NoError(t, os.WriteFile(p, []byte("a\tb\n1\t2\n"), 0o644))
	ds, err := dataset.Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.Names())
}

func TestLoadEmptyCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	ds, err := dataset.Load(p)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Rows())
	assert.Equal(t, 0, ds.Cols())
}
