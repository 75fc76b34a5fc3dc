package quality

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/sheetcheck/internal/dataset"
)

// Outliers flags extreme values in every numeric column. Boolean columns are
// not numeric. Columns without outliers are still listed with no values.
func Outliers(ds *dataset.Dataset, opt Options) (OutlierMap, error) {
	method, err := ParseMethod(string(opt.Method))
	if err != nil {
		return nil, err
	}
	out := OutlierMap{}
	for _, c := range ds.Columns() {
		if !c.Kind().IsNumeric() {
			continue
		}
		vals, rows := c.Floats()
		var flagged []int
		switch method {
		case MethodIQR:
			flagged = iqrOutliers(vals)
		default:
			flagged = zscoreOutliers(vals, opt.threshold())
		}
		co := ColumnOutliers{Column: c.Name(), Outliers: make([]Outlier, 0, len(flagged))}
		for _, i := range flagged {
			co.Outliers = append(co.Outliers, Outlier{Row: rows[i], Value: vals[i]})
		}
		out = append(out, co)
	}
	return out, nil
}

// zscoreOutliers returns the indices of values whose population z-score
// exceeds threshold in magnitude. A zero standard deviation flags nothing.
func zscoreOutliers(vals []float64, threshold float64) []int {
	if len(vals) < 2 {
		return nil
	}
	mean, sd := stat.PopMeanStdDev(vals, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil
	}
	var idx []int
	for i, v := range vals {
		if math.Abs(v-mean)/sd > threshold {
			idx = append(idx, i)
		}
	}
	return idx
}

// iqrOutliers returns the indices of values outside the 1.5*IQR fences.
func iqrOutliers(vals []float64) []int {
	if len(vals) == 0 {
		return nil
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lo, hi := q1-IQRFence*iqr, q3+IQRFence*iqr
	var idx []int
	for i, v := range vals {
		if v < lo || v > hi {
			idx = append(idx, i)
		}
	}
	return idx
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
