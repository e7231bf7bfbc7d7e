package indicator

import (
	"math"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkPeriod(name string, period int) error {
	if period < 2 {
		return badParam("%s period must be at least 2, got %d", name, period)
	}
	return nil
}

func checkLength(name string, n, need int) error {
	if n < need {
		return insufficientData(name, need, n)
	}
	return nil
}

func checkSample(name string, index int, v float64) error {
	if !isFinite(v) {
		return nonFinite("%s input at index %d is %v", name, index, v)
	}
	return nil
}

func checkUpdateSample(name string, v float64) error {
	if !isFinite(v) {
		return nonFinite("%s update sample is %v", name, v)
	}
	return nil
}

// checkStored rejects a state field that is no longer finite.
func checkStored(name, field string, v float64) error {
	if !isFinite(v) {
		return nonFinite("%s state %s is %v", name, field, v)
	}
	return nil
}

func checkOutput(name string, index int, v float64) error {
	if !isFinite(v) {
		return overflow(name, index, v)
	}
	return nil
}

func checkWindow(name string, w *Ring, period int) error {
	if w.Len() != period || w.Cap() != period {
		return badParam("%s window holds %d values, expected %d", name, w.Len(), period)
	}
	if i := w.firstNonFinite(); i >= 0 {
		return nonFinite("%s window value %d is %v", name, i, w.At(i))
	}
	return nil
}

// PeriodToAlpha converts a period to the EMA weight smoothing/(period+1).
func PeriodToAlpha(period int, smoothing float64) float64 {
	return smoothing / float64(period+1)
}

func checkSmoothing(name string, smoothing float64) error {
	if !(smoothing > 0) || math.IsInf(smoothing, 0) {
		return badParam("%s smoothing must be a positive finite number, got %v", name, smoothing)
	}
	return nil
}

func checkAlpha(name string, alpha float64) error {
	if !(alpha > 0) || math.IsInf(alpha, 0) {
		return badParam("%s alpha must be a positive finite number, got %v", name, alpha)
	}
	return nil
}

// newOutput allocates an output series of length n with the first lookback
// positions set to NaN.
func newOutput(n, lookback int) floats.Slice {
	out := make(floats.Slice, n)
	for i := 0; i < lookback && i < n; i++ {
		out[i] = math.NaN()
	}
	return out
}
