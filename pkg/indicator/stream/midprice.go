package stream

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
	"github.com/techalysis/techalysis/pkg/indicator"
)

// MidPriceStream pairs the high and low sources by index, a value is emitted
// once both sides have pushed it.
type MidPriceStream struct {
	*StateStream[indicator.MidPriceSample]

	high, low floats.Slice
}

func MidPrice(high, low Float64Source, period int) (*MidPriceStream, error) {
	lookback, err := indicator.MidPriceLookback(period)
	if err != nil {
		return nil, err
	}

	seed := func(samples []indicator.MidPriceSample) (indicator.Updater[indicator.MidPriceSample], error) {
		highs := make([]float64, len(samples))
		lows := make([]float64, len(samples))
		for i, sample := range samples {
			highs[i], lows[i] = sample.High, sample.Low
		}

		r, err := indicator.MidPrice(highs, lows, period)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	}

	checkHigh, checkLow := checkFinite("MidPrice high"), checkFinite("MidPrice low")
	s := &MidPriceStream{
		StateStream: NewStateStream("MidPrice", lookback, seed, func(sample indicator.MidPriceSample) error {
			if err := checkHigh(sample.High); err != nil {
				return err
			}
			return checkLow(sample.Low)
		}),
	}

	if high != nil && low != nil {
		high.OnUpdate(func(v float64) {
			s.high.Push(v)
			s.calculate()
		})
		low.OnUpdate(func(v float64) {
			s.low.Push(v)
			s.calculate()
		})
	}
	return s, nil
}

// PushBar feeds one high/low pair directly.
func (s *MidPriceStream) PushBar(high, low float64) float64 {
	y := s.Calculate(indicator.MidPriceSample{High: high, Low: low})
	s.PushAndEmit(y)
	return y
}

func (s *MidPriceStream) calculate() {
	n := s.high.Length()
	if s.low.Length() < n {
		n = s.low.Length()
	}

	for ; n > 0; n-- {
		s.PushBar(s.high[0], s.low[0])
		s.high, s.low = s.high[1:], s.low[1:]
	}

	if len(s.high) == 0 {
		s.high = nil
	}
	if len(s.low) == 0 {
		s.low = nil
	}
}
