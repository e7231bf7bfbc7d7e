package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type TEMAResult struct {
	Values floats.Slice
	State  TEMAState
}

type TEMAState struct {
	TEMA   float64 `json:"tema"`
	EMA1   float64 `json:"ema_1"`
	EMA2   float64 `json:"ema_2"`
	EMA3   float64 `json:"ema_3"`
	Period int     `json:"period"`
	Alpha  float64 `json:"alpha"`
}

func TEMALookback(period int) (int, error) {
	if err := checkPeriod("TEMA", period); err != nil {
		return 0, err
	}
	return emaChainLookback(period, 3), nil
}

func temaCombine(levels []float64) float64 {
	return 3*levels[0] - 3*levels[1] + levels[2]
}

// TEMA computes the triple exponential moving average 3*e1 - 3*e2 + e3.
func TEMA(data []float64, period int, smoothing float64) (*TEMAResult, error) {
	if _, err := TEMALookback(period); err != nil {
		return nil, err
	}
	if err := checkSmoothing("TEMA", smoothing); err != nil {
		return nil, err
	}

	alpha := PeriodToAlpha(period, smoothing)
	out, levels, err := runEMAChain("TEMA", data, period, 3, alpha, temaCombine)
	if err != nil {
		return nil, err
	}

	return &TEMAResult{
		Values: out,
		State: TEMAState{
			TEMA:   out[len(out)-1],
			EMA1:   levels[0],
			EMA2:   levels[1],
			EMA3:   levels[2],
			Period: period,
			Alpha:  alpha,
		},
	}, nil
}

func (s *TEMAState) Value() float64 { return s.TEMA }

func (s *TEMAState) Update(sample float64) error {
	if err := checkPeriod("TEMA", s.Period); err != nil {
		return err
	}

	levels, tema, err := updateEMAChain("TEMA", []float64{s.EMA1, s.EMA2, s.EMA3}, sample, s.Alpha, temaCombine)
	if err != nil {
		return err
	}

	s.EMA1, s.EMA2, s.EMA3 = levels[0], levels[1], levels[2]
	s.TEMA = tema
	return nil
}

func (s TEMAState) Clone() TEMAState { return s }
