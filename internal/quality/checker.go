// Package quality runs the data-quality checks over a loaded dataset.
package quality

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/KaramelBytes/sheetcheck/internal/dataset"
)

// Checker runs checks against one dataset. The dataset is shared by every
// check and never modified, so runs may be repeated.
type Checker struct {
	ds     *dataset.Dataset
	opt    Options
	logger *logrus.Logger
}

// NewChecker creates a checker for ds. A nil logger gets a default one.
func NewChecker(ds *dataset.Dataset, opt Options, logger *logrus.Logger) *Checker {
	if logger == nil {
		logger = logrus.New()
	}
	return &Checker{ds: ds, opt: opt, logger: logger}
}

// Open loads the spreadsheet at path and returns a checker for it. Load
// failures are returned before any check runs.
func Open(path string, opt Options, logger *logrus.Logger) (*Checker, error) {
	if _, err := ParseMethod(string(opt.Method)); err != nil {
		return nil, err
	}
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	c := NewChecker(ds, opt, logger)
	c.logger.WithFields(logrus.Fields{
		"file":    path,
		"rows":    ds.Rows(),
		"columns": ds.Cols(),
	}).Debug("Loaded dataset")
	return c, nil
}

// Dataset returns the dataset under check.
func (c *Checker) Dataset() *dataset.Dataset { return c.ds }

// Options returns the options the advanced checks run with.
func (c *Checker) Options() Options { return c.opt }

// RunBasic computes the null, duplicate and type profiles.
func (c *Checker) RunBasic() *BasicResults {
	log := c.runLogger("basic")
	res := c.basic(log)
	log.Debug("Basic checks completed")
	return res
}

// RunAdvanced computes the basic profiles plus outliers, format issues,
// formula errors and recommendations.
func (c *Checker) RunAdvanced() (*AdvancedResults, error) {
	log := c.runLogger("advanced")
	res := &AdvancedResults{BasicResults: *c.basic(log)}

	var err error
	timed(log, "outliers", func() {
		res.Outliers, err = Outliers(c.ds, c.opt)
	})
	if err != nil {
		return nil, fmt.Errorf("outlier check: %w", err)
	}
	timed(log, "format_consistency", func() { res.FormatConsistency = FormatConsistency(c.ds) })
	timed(log, "formula_errors", func() { res.FormulaErrors = FormulaErrors(c.ds) })
	res.CleaningRecommendations = Recommendations(res.NullValues, res.Duplicates, res.FormatConsistency)

	log.WithFields(logrus.Fields{
		"outliers":        res.Outliers.Total(),
		"recommendations": len(res.CleaningRecommendations),
	}).Debug("Advanced checks completed")
	return res, nil
}

func (c *Checker) basic(log *logrus.Entry) *BasicResults {
	res := &BasicResults{}
	timed(log, "null_values", func() { res.NullValues = NullValues(c.ds) })
	timed(log, "duplicates", func() { res.Duplicates = Duplicates(c.ds) })
	timed(log, "column_types", func() { res.ColumnTypes = ColumnTypes(c.ds) })
	return res
}

func (c *Checker) runLogger(kind string) *logrus.Entry {
	return c.logger.WithFields(logrus.Fields{
		"run_id":  uuid.NewString(),
		"run":     kind,
		"dataset": c.ds.Name(),
	})
}

func timed(log *logrus.Entry, check string, fn func()) {
	start := time.Now()
	fn()
	log.WithFields(logrus.Fields{
		"check":   check,
		"elapsed": time.Since(start).String(),
	}).Debug("Check finished")
}
