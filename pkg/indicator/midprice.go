package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// MidPriceSample is one bar of the high and low series.
type MidPriceSample struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

type MidPriceResult struct {
	Values floats.Slice
	State  MidPriceState
}

type MidPriceState struct {
	MidPrice   float64 `json:"midprice"`
	Period     int     `json:"period"`
	HighWindow Ring    `json:"high_window"`
	LowWindow  Ring    `json:"low_window"`
}

func MidPriceLookback(period int) (int, error) {
	if err := checkPeriod("MidPrice", period); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// MidPrice computes (highest high + lowest low) / 2 over the last period bars.
func MidPrice(high, low []float64, period int) (*MidPriceResult, error) {
	lookback, err := MidPriceLookback(period)
	if err != nil {
		return nil, err
	}
	if len(high) != len(low) {
		return nil, badParam("MidPrice high and low lengths differ: %d != %d", len(high), len(low))
	}
	if err := checkLength("MidPrice", len(high), period); err != nil {
		return nil, err
	}

	out := newOutput(len(high), lookback)
	highs, lows := NewRing(period), NewRing(period)
	mid := 0.0
	for i := range high {
		if err := checkSample("MidPrice high", i, high[i]); err != nil {
			return nil, err
		}
		if err := checkSample("MidPrice low", i, low[i]); err != nil {
			return nil, err
		}

		highs.Push(high[i])
		lows.Push(low[i])
		if i < lookback {
			continue
		}

		mid = (highs.Max() + lows.Min()) * 0.5
		if err := checkOutput("MidPrice", i, mid); err != nil {
			return nil, err
		}
		out[i] = mid
	}

	return &MidPriceResult{
		Values: out,
		State: MidPriceState{
			MidPrice:   mid,
			Period:     period,
			HighWindow: highs,
			LowWindow:  lows,
		},
	}, nil
}

func (s *MidPriceState) Value() float64 { return s.MidPrice }

func (s *MidPriceState) Update(sample MidPriceSample) error {
	if err := checkPeriod("MidPrice", s.Period); err != nil {
		return err
	}
	if err := checkUpdateSample("MidPrice high", sample.High); err != nil {
		return err
	}
	if err := checkUpdateSample("MidPrice low", sample.Low); err != nil {
		return err
	}
	if err := checkWindow("MidPrice high", &s.HighWindow, s.Period); err != nil {
		return err
	}
	if err := checkWindow("MidPrice low", &s.LowWindow, s.Period); err != nil {
		return err
	}

	highs, lows := s.HighWindow.Clone(), s.LowWindow.Clone()
	highs.Push(sample.High)
	lows.Push(sample.Low)
	mid := (highs.Max() + lows.Min()) * 0.5
	if err := checkOutput("MidPrice", UpdateIndex, mid); err != nil {
		return err
	}

	s.HighWindow, s.LowWindow = highs, lows
	s.MidPrice = mid
	return nil
}

func (s MidPriceState) Clone() MidPriceState {
	s.HighWindow = s.HighWindow.Clone()
	s.LowWindow = s.LowWindow.Clone()
	return s
}
