package quality

import (
	"errors"
	"fmt"
	"strings"
)

// Method selects the outlier detection rule.
type Method string

const (
	MethodZScore Method = "zscore"
	MethodIQR    Method = "iqr"
)

const (
	// DefaultZThreshold is the |z| above which a value is an outlier.
	DefaultZThreshold = 3.0
	// IQRFence is the multiple of the interquartile range added beyond Q1/Q3.
	IQRFence = 1.5
)

// ErrUnknownMethod is returned for an outlier method other than zscore or iqr.
var ErrUnknownMethod = errors.New("unknown outlier method")

// ParseMethod resolves a method name. An empty name selects z-score.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "", MethodZScore:
		return MethodZScore, nil
	case MethodIQR:
		return MethodIQR, nil
	}
	return "", fmt.Errorf("%w: %q (want zscore or iqr)", ErrUnknownMethod, s)
}

// Options controls the advanced checks.
type Options struct {
	// Method for outlier detection; empty means zscore.
	Method Method
	// ZThreshold for the zscore method. Non-positive values use DefaultZThreshold.
	ZThreshold float64
}

// DefaultOptions returns the z-score method with a threshold of 3.
func DefaultOptions() Options {
	return Options{Method: MethodZScore, ZThreshold: DefaultZThreshold}
}

func (o Options) threshold() float64 {
	if o.ZThreshold <= 0 {
		return DefaultZThreshold
	}
	return o.ZThreshold
}
