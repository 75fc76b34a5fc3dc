// Package visualize draws terminal panels for a checked dataset: a
// missing-value matrix and a distribution chart per numeric column.
package visualize

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/KaramelBytes/sheetcheck/internal/dataset"
	"github.com/KaramelBytes/sheetcheck/internal/quality"
	"github.com/KaramelBytes/sheetcheck/internal/utils"
)

// Options sizes the panels.
type Options struct {
	Width  int // chart and matrix width in characters
	Height int // chart height in lines
	Bins   int // histogram bins per numeric column
}

// DefaultOptions returns 60x10 charts with 20 bins.
func DefaultOptions() Options {
	return Options{Width: 60, Height: 10, Bins: 20}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Bins <= 1 {
		o.Bins = d.Bins
	}
	return o
}

const (
	markMissing = '█'
	markPresent = '·'
)

// Render writes the panels for ds to w. Only columns typed int64 or float64
// in types get a distribution chart.
func Render(w io.Writer, ds *dataset.Dataset, types quality.TypeMap, opt Options) error {
	opt = opt.normalized()
	var b strings.Builder

	b.WriteString("[MISSING VALUES]\n")
	width := 0
	for _, n := range ds.Names() {
		if len(n) > width {
			width = len(n)
		}
	}
	for _, c := range ds.Columns() {
		b.WriteString(fmt.Sprintf("%-*s |%s| %s%%\n", width, c.Name(), missingStrip(c, opt.Width),
			quality.FormatPercent(missingPercent(c))))
	}

	for _, ct := range types {
		if ct.Type != "int64" && ct.Type != "float64" {
			continue
		}
		c, ok := ds.ColumnByName(ct.Column)
		if !ok {
			continue
		}
		vals, _ := c.Floats()
		b.WriteString(fmt.Sprintf("\n[DISTRIBUTION] %s\n", ct.Column))
		counts, lo, hi, ok := histogram(vals, opt.Bins)
		if !ok {
			b.WriteString(fmt.Sprintf("not enough distinct values to plot (n=%d)\n", len(vals)))
			continue
		}
		b.WriteString(asciigraph.Plot(counts,
			asciigraph.Height(opt.Height),
			asciigraph.Width(opt.Width),
			asciigraph.Caption(fmt.Sprintf("%d values in %d bins, %.4g to %.4g", len(vals), len(counts), lo, hi)),
		))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile renders the panels to a file, replacing it atomically.
func WriteFile(path string, ds *dataset.Dataset, types quality.TypeMap, opt Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, ds, types, opt); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}

// missingStrip buckets the rows of c into at most width marks; a bucket is
// marked missing when any of its rows is missing.
func missingStrip(c *dataset.Column, width int) string {
	n := c.Len()
	if n == 0 {
		return ""
	}
	if n < width {
		width = n
	}
	marks := make([]rune, width)
	for i := range marks {
		marks[i] = markPresent
	}
	for i := 0; i < n; i++ {
		if c.IsMissing(i) {
			marks[i*width/n] = markMissing
		}
	}
	return string(marks)
}

func missingPercent(c *dataset.Column) float64 {
	if c.Len() == 0 {
		return 0
	}
	return float64(c.MissingCount()) * 100 / float64(c.Len())
}

// histogram counts vals into equal-width bins over [min, max]; the last bin
// includes max. ok is false when the values have no spread.
func histogram(vals []float64, bins int) (counts []float64, lo, hi float64, ok bool) {
	if len(vals) < 2 {
		return nil, 0, 0, false
	}
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return nil, lo, hi, false
	}
	counts = make([]float64, bins)
	step := (hi - lo) / float64(bins)
	for _, v := range vals {
		i := int((v - lo) / step)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	return counts, lo, hi, true
}
