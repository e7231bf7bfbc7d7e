package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// DefaultVolumeFactor is the customary T3 volume factor.
const DefaultVolumeFactor = 0.7

type T3Result struct {
	Values floats.Slice
	State  T3State
}

// T3State holds the six chained EMA levels, EMAs[0] smooths the input.
type T3State struct {
	T3           float64    `json:"t3"`
	EMAs         [6]float64 `json:"emas"`
	Period       int        `json:"period"`
	Alpha        float64    `json:"alpha"`
	VolumeFactor float64    `json:"volume_factor"`
}

func T3Lookback(period int) (int, error) {
	if err := checkPeriod("T3", period); err != nil {
		return 0, err
	}
	return emaChainLookback(period, 6), nil
}

func checkVolumeFactor(v float64) error {
	if !(v >= 0 && v <= 1) {
		return badParam("T3 volume factor must be within [0, 1], got %v", v)
	}
	return nil
}

// t3Combine returns the Tillson combination of the upper four chain levels.
func t3Combine(vFactor float64) func(levels []float64) float64 {
	v2 := vFactor * vFactor
	v3 := v2 * vFactor
	c1 := -v3
	c2 := 3*v2 + 3*v3
	c3 := -6*v2 - 3*vFactor - 3*v3
	c4 := 1 + 3*vFactor + v3 + 3*v2
	return func(levels []float64) float64 {
		return c1*levels[5] + c2*levels[4] + c3*levels[3] + c4*levels[2]
	}
}

// T3 computes the Tillson T3 moving average.
func T3(data []float64, period int, vFactor, smoothing float64) (*T3Result, error) {
	if _, err := T3Lookback(period); err != nil {
		return nil, err
	}
	if err := checkVolumeFactor(vFactor); err != nil {
		return nil, err
	}
	if err := checkSmoothing("T3", smoothing); err != nil {
		return nil, err
	}

	alpha := PeriodToAlpha(period, smoothing)
	out, levels, err := runEMAChain("T3", data, period, 6, alpha, t3Combine(vFactor))
	if err != nil {
		return nil, err
	}

	state := T3State{
		T3:           out[len(out)-1],
		Period:       period,
		Alpha:        alpha,
		VolumeFactor: vFactor,
	}
	copy(state.EMAs[:], levels)
	return &T3Result{Values: out, State: state}, nil
}

func (s *T3State) Value() float64 { return s.T3 }

func (s *T3State) Update(sample float64) error {
	if err := checkPeriod("T3", s.Period); err != nil {
		return err
	}
	if err := checkVolumeFactor(s.VolumeFactor); err != nil {
		return err
	}

	levels, t3, err := updateEMAChain("T3", s.EMAs[:], sample, s.Alpha, t3Combine(s.VolumeFactor))
	if err != nil {
		return err
	}

	copy(s.EMAs[:], levels)
	s.T3 = t3
	return nil
}

func (s T3State) Clone() T3State { return s }
