package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type WMAResult struct {
	Values floats.Slice
	State  WMAState
}

// WMAState holds the plain and the weighted running sums next to the raw window.
// PeriodSum is the weighted sum of the window with weights 0..period-1.
type WMAState struct {
	WMA       float64 `json:"wma"`
	Period    int     `json:"period"`
	PeriodSub float64 `json:"period_sub"`
	PeriodSum float64 `json:"period_sum"`
	Window    Ring    `json:"window"`
}

func WMALookback(period int) (int, error) {
	if err := checkPeriod("WMA", period); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// WMA computes the linearly weighted moving average, the newest sample weighs period.
func WMA(data []float64, period int) (*WMAResult, error) {
	lookback, err := WMALookback(period)
	if err != nil {
		return nil, err
	}
	if err := checkLength("WMA", len(data), period); err != nil {
		return nil, err
	}

	out := newOutput(len(data), lookback)
	invWeightSum := wmaInvWeightSum(period)

	periodSub, periodSum := 0.0, 0.0
	for i := 0; i < period; i++ {
		if err := checkSample("WMA", i, data[i]); err != nil {
			return nil, err
		}
		periodSub += data[i]
		periodSum += data[i] * float64(i)
	}

	wma := (periodSum + periodSub) * invWeightSum
	if err := checkOutput("WMA", lookback, wma); err != nil {
		return nil, err
	}
	if err := checkOutput("WMA", lookback, periodSum); err != nil {
		return nil, err
	}
	out[lookback] = wma

	for i := period; i < len(data); i++ {
		if err := checkSample("WMA", i, data[i]); err != nil {
			return nil, err
		}

		wma, periodSub, periodSum = wmaNext(data[i], data[i-period], period, periodSub, periodSum, invWeightSum)
		if err := checkWMAOutput(i, wma, periodSub, periodSum); err != nil {
			return nil, err
		}
		out[i] = wma
	}

	return &WMAResult{
		Values: out,
		State: WMAState{
			WMA:       wma,
			Period:    period,
			PeriodSub: periodSub,
			PeriodSum: periodSum,
			Window:    RingOf(data[len(data)-period:]...),
		},
	}, nil
}

func checkWMAOutput(index int, wma, periodSub, periodSum float64) error {
	if err := checkOutput("WMA", index, wma); err != nil {
		return err
	}
	if err := checkOutput("WMA", index, periodSub); err != nil {
		return err
	}
	return checkOutput("WMA", index, periodSum)
}

func (s *WMAState) Value() float64 { return s.WMA }

func (s *WMAState) Update(sample float64) error {
	if err := checkPeriod("WMA", s.Period); err != nil {
		return err
	}
	if err := checkUpdateSample("WMA", sample); err != nil {
		return err
	}
	if err := checkStored("WMA", "period_sub", s.PeriodSub); err != nil {
		return err
	}
	if err := checkStored("WMA", "period_sum", s.PeriodSum); err != nil {
		return err
	}
	if err := checkWindow("WMA", &s.Window, s.Period); err != nil {
		return err
	}

	wma, periodSub, periodSum := wmaNext(sample, s.Window.Oldest(), s.Period, s.PeriodSub, s.PeriodSum, wmaInvWeightSum(s.Period))
	if err := checkWMAOutput(UpdateIndex, wma, periodSub, periodSum); err != nil {
		return err
	}

	s.Window.Push(sample)
	s.WMA = wma
	s.PeriodSub = periodSub
	s.PeriodSum = periodSum
	return nil
}

func (s WMAState) Clone() WMAState {
	s.Window = s.Window.Clone()
	return s
}
