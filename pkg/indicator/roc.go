package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type ROCResult struct {
	Values floats.Slice
	State  ROCState
}

type ROCState struct {
	ROC    float64 `json:"roc"`
	Period int     `json:"period"`
	Window Ring    `json:"window"`
}

// ROC accepts a period of 1, the plain one-step rate of change.
func checkROCPeriod(period int) error {
	if period < 1 {
		return badParam("ROC period must be at least 1, got %d", period)
	}
	return nil
}

func ROCLookback(period int) (int, error) {
	if err := checkROCPeriod(period); err != nil {
		return 0, err
	}
	return period, nil
}

func rocValue(value, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (value/prev - 1) * 100
}

// ROC computes the rate of change in percent against the sample period steps back.
func ROC(data []float64, period int) (*ROCResult, error) {
	lookback, err := ROCLookback(period)
	if err != nil {
		return nil, err
	}
	if err := checkLength("ROC", len(data), period+1); err != nil {
		return nil, err
	}
	for i := 0; i < period; i++ {
		if err := checkSample("ROC", i, data[i]); err != nil {
			return nil, err
		}
	}

	out := newOutput(len(data), lookback)
	roc := 0.0
	for i := period; i < len(data); i++ {
		if err := checkSample("ROC", i, data[i]); err != nil {
			return nil, err
		}

		roc = rocValue(data[i], data[i-period])
		if err := checkOutput("ROC", i, roc); err != nil {
			return nil, err
		}
		out[i] = roc
	}

	return &ROCResult{
		Values: out,
		State: ROCState{
			ROC:    roc,
			Period: period,
			Window: RingOf(data[len(data)-period:]...),
		},
	}, nil
}

func (s *ROCState) Value() float64 { return s.ROC }

func (s *ROCState) Update(sample float64) error {
	if err := checkROCPeriod(s.Period); err != nil {
		return err
	}
	if err := checkUpdateSample("ROC", sample); err != nil {
		return err
	}
	if err := checkWindow("ROC", &s.Window, s.Period); err != nil {
		return err
	}

	roc := rocValue(sample, s.Window.Oldest())
	if err := checkOutput("ROC", UpdateIndex, roc); err != nil {
		return err
	}

	s.Window.Push(sample)
	s.ROC = roc
	return nil
}

func (s ROCState) Clone() ROCState {
	s.Window = s.Window.Clone()
	return s
}
