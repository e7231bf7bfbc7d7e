package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type TRIMAResult struct {
	Values floats.Slice
	State  TRIMAState
}

// TRIMAState splits the window at the middle index: TrailingSum covers the
// older half (ascending weights) and HeadingSum the newer half (descending weights).
type TRIMAState struct {
	TRIMA       float64 `json:"trima"`
	Period      int     `json:"period"`
	Sum         float64 `json:"sum"`
	TrailingSum float64 `json:"trailing_sum"`
	HeadingSum  float64 `json:"heading_sum"`
	Window      Ring    `json:"window"`
}

func TRIMALookback(period int) (int, error) {
	if err := checkPeriod("TRIMA", period); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// TRIMA computes the triangular moving average.
func TRIMA(data []float64, period int) (*TRIMAResult, error) {
	lookback, err := TRIMALookback(period)
	if err != nil {
		return nil, err
	}
	if err := checkLength("TRIMA", len(data), period); err != nil {
		return nil, err
	}

	for i := 0; i < period; i++ {
		if err := checkSample("TRIMA", i, data[i]); err != nil {
			return nil, err
		}
	}

	out := newOutput(len(data), lookback)
	invWeightSum := trimaInvWeightSum(period)
	middle := trimaMiddle(period)
	odd := period%2 == 1

	sum, trailing, heading := trimaSums(data[:period])
	trima := sum * invWeightSum
	if err := checkTRIMAOutput(lookback, trima, sum, trailing, heading); err != nil {
		return nil, err
	}
	out[lookback] = trima

	for i := period; i < len(data); i++ {
		if err := checkSample("TRIMA", i, data[i]); err != nil {
			return nil, err
		}

		start := i - period
		sum, trailing, heading = trimaNext(data[i], data[start+middle+1], data[start], odd, sum, trailing, heading)
		trima = sum * invWeightSum
		if err := checkTRIMAOutput(i, trima, sum, trailing, heading); err != nil {
			return nil, err
		}
		out[i] = trima
	}

	return &TRIMAResult{
		Values: out,
		State: TRIMAState{
			TRIMA:       trima,
			Period:      period,
			Sum:         sum,
			TrailingSum: trailing,
			HeadingSum:  heading,
			Window:      RingOf(data[len(data)-period:]...),
		},
	}, nil
}

func checkTRIMAOutput(index int, values ...float64) error {
	for _, v := range values {
		if err := checkOutput("TRIMA", index, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *TRIMAState) Value() float64 { return s.TRIMA }

func (s *TRIMAState) Update(sample float64) error {
	if err := checkPeriod("TRIMA", s.Period); err != nil {
		return err
	}
	if err := checkUpdateSample("TRIMA", sample); err != nil {
		return err
	}
	if err := checkStored("TRIMA", "sum", s.Sum); err != nil {
		return err
	}
	if err := checkStored("TRIMA", "trailing_sum", s.TrailingSum); err != nil {
		return err
	}
	if err := checkStored("TRIMA", "heading_sum", s.HeadingSum); err != nil {
		return err
	}
	if err := checkWindow("TRIMA", &s.Window, s.Period); err != nil {
		return err
	}

	// the value at the middle of the window once sample has been pushed
	middleValue := s.Window.At(trimaMiddle(s.Period) + 1)
	sum, trailing, heading := trimaNext(sample, middleValue, s.Window.Oldest(), s.Period%2 == 1, s.Sum, s.TrailingSum, s.HeadingSum)
	trima := sum * trimaInvWeightSum(s.Period)
	if err := checkTRIMAOutput(UpdateIndex, trima, sum, trailing, heading); err != nil {
		return err
	}

	s.Window.Push(sample)
	s.TRIMA = trima
	s.Sum = sum
	s.TrailingSum = trailing
	s.HeadingSum = heading
	return nil
}

func (s TRIMAState) Clone() TRIMAState {
	s.Window = s.Window.Clone()
	return s
}
