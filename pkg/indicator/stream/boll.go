package stream

import (
	"math"

	"github.com/techalysis/techalysis/pkg/indicator"
)

// BOLLStream is the Bollinger middle band, UpBand and DownBand follow it.
//
// the data flow:
//
//	source -> BBands state -> middle -> upBand, downBand
type BOLLStream struct {
	*FloatStream

	UpBand, DownBand *Float64Series

	state *indicator.BBandsState
}

func BOLL(source Float64Source, period int, multipliers indicator.DeviationMultipliers, ma indicator.MovingAverage) (*BOLLStream, error) {
	s := &BOLLStream{
		UpBand:   NewFloat64Series(),
		DownBand: NewFloat64Series(),
	}

	lookback, err := indicator.BBandsLookback(period)
	if err != nil {
		return nil, err
	}

	seed := func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.BBands(data, period, multipliers, ma)
		if err != nil {
			return nil, err
		}
		s.state = &r.State
		return s.state, nil
	}
	if err := checkParams[float64](seed); err != nil {
		return nil, err
	}

	s.FloatStream = newFloatStream(nil, "BBands", lookback, seed)
	s.OnUpdate(func(mid float64) {
		if math.IsNaN(mid) || s.state == nil {
			s.UpBand.PushAndEmit(math.NaN())
			s.DownBand.PushAndEmit(math.NaN())
			return
		}
		s.UpBand.PushAndEmit(s.state.Upper)
		s.DownBand.PushAndEmit(s.state.Lower)
	})

	if source != nil {
		s.Bind(source, s)
	}
	return s, nil
}
