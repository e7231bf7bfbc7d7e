package binding

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

var log = logrus.WithField("component", "binding")

// DefaultTolerance is the relative tolerance Verify accepts between runs.
const DefaultTolerance = 1e-9

// Report is the outcome of Verify for one indicator.
type Report struct {
	Name     string `json:"name"`
	Lookback int    `json:"lookback"`
	Samples  int    `json:"samples"`

	// MaxPrefixDiff is the largest difference between a prefix run and the
	// full run over the same indices.
	MaxPrefixDiff float64 `json:"maxPrefixDiff"`

	// MaxStreamDiff is the largest difference between values advanced with
	// Next and the full run.
	MaxStreamDiff float64 `json:"maxStreamDiff"`
}

type VerifyOptions struct {
	Tolerance float64

	// Stride checks every Stride-th prefix, 1 checks them all.
	Stride int
}

// Len returns the number of samples, the length of the longest series.
func (in Input) Len() int {
	n := len(in.Close)
	if len(in.High) > n {
		n = len(in.High)
	}
	if len(in.Low) > n {
		n = len(in.Low)
	}
	return n
}

// Head returns the first n samples of every present series.
func (in Input) Head(n int) Input {
	head := func(s floats.Slice) floats.Slice {
		if s == nil {
			return nil
		}
		if n > len(s) {
			return s
		}
		return s[:n]
	}
	return Input{Close: head(in.Close), High: head(in.High), Low: head(in.Low)}
}

func (in Input) sample(i int) Sample {
	at := func(s floats.Slice) float64 {
		if i < len(s) {
			return s[i]
		}
		return math.NaN()
	}
	return Sample{Close: at(in.Close), High: at(in.High), Low: at(in.Low)}
}

// Verify checks that output at index i never depends on samples after i and
// that advancing a snapshot with Next reproduces the batch values. Every
// mismatch beyond the tolerance is collected into the returned error.
func Verify(name string, in Input, p Params, opts VerifyOptions) (*Report, error) {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.Stride <= 0 {
		opts.Stride = 1
	}

	ind, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	lookback, err := ind.Lookback(p)
	if err != nil {
		return nil, err
	}

	full, err := Compute(name, in, p)
	if err != nil {
		return nil, err
	}

	// the output is as long as the series the indicator reads
	n := len(full.Column(ind.Columns[0]))
	report := &Report{Name: ind.Name, Lookback: lookback, Samples: n}
	logger := log.WithField("indicator", ind.Name)
	logger.Debugf("verifying %d samples, lookback %d", n, lookback)

	var errs error
	for k := lookback + 1; k <= n; k += opts.Stride {
		prefix, err := Compute(name, in.Head(k), p)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("prefix %d: %w", k, err))
			continue
		}

		for _, col := range ind.Columns {
			diff, at := floats.MaxAbsDiff(full.Column(col)[:k], prefix.Column(col))
			if !math.IsInf(diff, 0) {
				report.MaxPrefixDiff = math.Max(report.MaxPrefixDiff, diff)
			}
			if !withinTolerance(diff, full.Column(col), at, opts.Tolerance) {
				errs = multierr.Append(errs, fmt.Errorf("%s: prefix %d changes %s at index %d by %g", ind.Name, k, col, at, diff))
			}
		}
	}

	seed, err := Compute(name, in.Head(lookback+1), p)
	if err != nil {
		errs = multierr.Append(errs, err)
		logger.Warnf("seed at %d failed: %v", lookback+1, err)
		return report, errs
	}

	state := seed.State
	for i := lookback + 1; i < n; i++ {
		next, err := Next(name, state, in.sample(i))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: next at %d: %w", ind.Name, i, err))
			break
		}
		state = next.State

		for _, col := range ind.Columns {
			want := full.Column(col)
			diff := math.Abs(want[i] - next.Column(col)[0])
			if !math.IsNaN(diff) {
				report.MaxStreamDiff = math.Max(report.MaxStreamDiff, diff)
			}
			if !withinTolerance(diff, want, i, opts.Tolerance) {
				errs = multierr.Append(errs, fmt.Errorf("%s: next at %d differs on %s by %g", ind.Name, i, col, diff))
			}
		}
	}

	if errs != nil {
		logger.Warnf("%d mismatches, max prefix diff %g, max next diff %g", len(multierr.Errors(errs)), report.MaxPrefixDiff, report.MaxStreamDiff)
	} else {
		logger.Debugf("max prefix diff %g, max next diff %g", report.MaxPrefixDiff, report.MaxStreamDiff)
	}
	return report, errs
}

func withinTolerance(diff float64, ref floats.Slice, at int, tolerance float64) bool {
	if diff == 0 {
		return true
	}
	if math.IsNaN(diff) || math.IsInf(diff, 0) {
		return false
	}

	scale := 1.0
	if at >= 0 && at < len(ref) && !math.IsNaN(ref[at]) {
		scale = math.Max(1, math.Abs(ref[at]))
	}
	return diff <= tolerance*scale
}
