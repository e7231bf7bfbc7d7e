package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type DEMAResult struct {
	Values floats.Slice
	State  DEMAState
}

type DEMAState struct {
	DEMA   float64 `json:"dema"`
	EMA1   float64 `json:"ema_1"`
	EMA2   float64 `json:"ema_2"`
	Period int     `json:"period"`
	Alpha  float64 `json:"alpha"`
}

func DEMALookback(period int) (int, error) {
	if err := checkPeriod("DEMA", period); err != nil {
		return 0, err
	}
	return emaChainLookback(period, 2), nil
}

func demaCombine(levels []float64) float64 {
	return 2*levels[0] - levels[1]
}

// DEMA computes the double exponential moving average 2*EMA - EMA(EMA).
func DEMA(data []float64, period int, smoothing float64) (*DEMAResult, error) {
	if _, err := DEMALookback(period); err != nil {
		return nil, err
	}
	if err := checkSmoothing("DEMA", smoothing); err != nil {
		return nil, err
	}

	alpha := PeriodToAlpha(period, smoothing)
	out, levels, err := runEMAChain("DEMA", data, period, 2, alpha, demaCombine)
	if err != nil {
		return nil, err
	}

	return &DEMAResult{
		Values: out,
		State: DEMAState{
			DEMA:   out[len(out)-1],
			EMA1:   levels[0],
			EMA2:   levels[1],
			Period: period,
			Alpha:  alpha,
		},
	}, nil
}

func (s *DEMAState) Value() float64 { return s.DEMA }

func (s *DEMAState) Update(sample float64) error {
	if err := checkPeriod("DEMA", s.Period); err != nil {
		return err
	}

	levels, dema, err := updateEMAChain("DEMA", []float64{s.EMA1, s.EMA2}, sample, s.Alpha, demaCombine)
	if err != nil {
		return err
	}

	s.EMA1, s.EMA2 = levels[0], levels[1]
	s.DEMA = dema
	return nil
}

func (s DEMAState) Clone() DEMAState { return s }
