package stream

import (
	"math"

	"github.com/techalysis/techalysis/pkg/indicator"
)

// MACDStream emits the MACD line, Signal and Histogram are fed in the same
// update.
type MACDStream struct {
	*FloatStream

	Signal, Histogram *Float64Series

	state *indicator.MACDState
}

func MACD(source Float64Source, fastPeriod, slowPeriod, signalPeriod int) (*MACDStream, error) {
	s := &MACDStream{
		Signal:    NewFloat64Series(),
		Histogram: NewFloat64Series(),
	}

	lookback, err := indicator.MACDLookback(fastPeriod, slowPeriod, signalPeriod)
	if err != nil {
		return nil, err
	}

	// the band series must subscribe before the source is bound
	s.FloatStream = newFloatStream(nil, "MACD", lookback, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.MACD(data, fastPeriod, slowPeriod, signalPeriod)
		if err != nil {
			return nil, err
		}
		s.state = &r.State
		return s.state, nil
	})

	s.OnUpdate(func(v float64) {
		if math.IsNaN(v) || s.state == nil {
			s.Signal.PushAndEmit(math.NaN())
			s.Histogram.PushAndEmit(math.NaN())
			return
		}
		s.Signal.PushAndEmit(s.state.Signal)
		s.Histogram.PushAndEmit(s.state.Histogram)
	})

	if source != nil {
		s.Bind(source, s)
	}
	return s, nil
}
