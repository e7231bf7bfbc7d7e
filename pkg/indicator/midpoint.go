package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type MidPointResult struct {
	Values floats.Slice
	State  MidPointState
}

type MidPointState struct {
	MidPoint float64 `json:"midpoint"`
	Period   int     `json:"period"`
	Window   Ring    `json:"window"`
}

func MidPointLookback(period int) (int, error) {
	if err := checkPeriod("MidPoint", period); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// MidPoint computes (highest + lowest) / 2 over the last period samples.
func MidPoint(data []float64, period int) (*MidPointResult, error) {
	lookback, err := MidPointLookback(period)
	if err != nil {
		return nil, err
	}
	if err := checkLength("MidPoint", len(data), period); err != nil {
		return nil, err
	}

	out := newOutput(len(data), lookback)
	window := NewRing(period)
	mid := 0.0
	for i, v := range data {
		if err := checkSample("MidPoint", i, v); err != nil {
			return nil, err
		}

		window.Push(v)
		if i < lookback {
			continue
		}

		mid = (window.Max() + window.Min()) * 0.5
		if err := checkOutput("MidPoint", i, mid); err != nil {
			return nil, err
		}
		out[i] = mid
	}

	return &MidPointResult{
		Values: out,
		State:  MidPointState{MidPoint: mid, Period: period, Window: window},
	}, nil
}

func (s *MidPointState) Value() float64 { return s.MidPoint }

func (s *MidPointState) Update(sample float64) error {
	if err := checkPeriod("MidPoint", s.Period); err != nil {
		return err
	}
	if err := checkUpdateSample("MidPoint", sample); err != nil {
		return err
	}
	if err := checkWindow("MidPoint", &s.Window, s.Period); err != nil {
		return err
	}

	next := s.Window.Clone()
	next.Push(sample)
	mid := (next.Max() + next.Min()) * 0.5
	if err := checkOutput("MidPoint", UpdateIndex, mid); err != nil {
		return err
	}

	s.Window = next
	s.MidPoint = mid
	return nil
}

func (s MidPointState) Clone() MidPointState {
	s.Window = s.Window.Clone()
	return s
}
