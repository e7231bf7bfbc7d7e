package binding

import (
	"encoding/json"
	"fmt"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
	"github.com/techalysis/techalysis/pkg/indicator"
)

func init() {
	register(&Indicator{
		Name:        "sma",
		Description: "simple moving average",
		Columns:     []string{"sma"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 30},
		lookback:    func(p Params) (int, error) { return indicator.SMALookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.SMA(data, p.Period)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.SMAState) []float64 { return []float64{s.SMA} }),
	})

	register(&Indicator{
		Name:        "ema",
		Description: "exponential moving average",
		Columns:     []string{"ema"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 30, Smoothing: indicator.DefaultSmoothing},
		lookback:    func(p Params) (int, error) { return indicator.EMALookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.EMA(data, p.Period, p.Smoothing)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.EMAState) []float64 { return []float64{s.EMA} }),
	})

	register(&Indicator{
		Name:        "rsi",
		Description: "relative strength index",
		Columns:     []string{"rsi"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 14},
		lookback:    func(p Params) (int, error) { return indicator.RSILookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.RSI(data, p.Period)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.RSIState) []float64 { return []float64{s.RSI} }),
	})

	register(&Indicator{
		Name:        "wma",
		Description: "weighted moving average",
		Columns:     []string{"wma"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 30},
		lookback:    func(p Params) (int, error) { return indicator.WMALookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.WMA(data, p.Period)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.WMAState) []float64 { return []float64{s.WMA} }),
	})

	register(&Indicator{
		Name:        "trima",
		Description: "triangular moving average",
		Columns:     []string{"trima"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 30},
		lookback:    func(p Params) (int, error) { return indicator.TRIMALookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.TRIMA(data, p.Period)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.TRIMAState) []float64 { return []float64{s.TRIMA} }),
	})

	register(&Indicator{
		Name:        "midpoint",
		Description: "midpoint of the highest and lowest value over the period",
		Columns:     []string{"midpoint"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 14},
		lookback:    func(p Params) (int, error) { return indicator.MidPointLookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.MidPoint(data, p.Period)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.MidPointState) []float64 { return []float64{s.MidPoint} }),
	})

	register(&Indicator{
		Name:        "midprice",
		Description: "midpoint of the highest high and lowest low over the period",
		Columns:     []string{"midprice"},
		Inputs:      []string{"high", "low"},
		Defaults:    Params{Period: 14},
		lookback:    func(p Params) (int, error) { return indicator.MidPriceLookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			high, low, err := in.highLow()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.MidPrice(high, low, p.Period)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: func(raw json.RawMessage, sample Sample) ([]float64, interface{}, error) {
			var s indicator.MidPriceState
			if err := decodeState(raw, &s); err != nil {
				return nil, nil, err
			}
			if err := s.Update(indicator.MidPriceSample{High: sample.High, Low: sample.Low}); err != nil {
				return nil, nil, err
			}
			return []float64{s.MidPrice}, &s, nil
		},
	})

	register(&Indicator{
		Name:        "macd",
		Description: "moving average convergence divergence",
		Columns:     []string{"macd", "signal", "histogram"},
		Inputs:      []string{"close"},
		Defaults:    Params{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9},
		lookback: func(p Params) (int, error) {
			return indicator.MACDLookback(p.FastPeriod, p.SlowPeriod, p.SignalPeriod)
		},
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.MACD(data, p.FastPeriod, p.SlowPeriod, p.SignalPeriod)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.MACD, r.Signal, r.Histogram}, r.State, nil
		},
		next: nextClose(func(s *indicator.MACDState) []float64 {
			return []float64{s.MACD, s.Signal, s.Histogram}
		}),
	})

	register(&Indicator{
		Name:        "bbands",
		Description: "bollinger bands",
		Columns:     []string{"upper", "middle", "lower"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 20, StdUp: 2, StdDown: 2, MA: "sma"},
		lookback:    func(p Params) (int, error) { return indicator.BBandsLookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			ma, err := p.movingAverage()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.BBands(data, p.Period, indicator.DeviationMultipliers{Up: p.StdUp, Down: p.StdDown}, ma)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Upper, r.Middle, r.Lower}, r.State, nil
		},
		next: nextClose(func(s *indicator.BBandsState) []float64 {
			return []float64{s.Upper, s.Middle, s.Lower}
		}),
	})

	register(&Indicator{
		Name:        "dema",
		Description: "double exponential moving average",
		Columns:     []string{"dema"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 30, Smoothing: indicator.DefaultSmoothing},
		lookback:    func(p Params) (int, error) { return indicator.DEMALookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.DEMA(data, p.Period, p.Smoothing)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.DEMAState) []float64 { return []float64{s.DEMA} }),
	})

	register(&Indicator{
		Name:        "tema",
		Description: "triple exponential moving average",
		Columns:     []string{"tema"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 30, Smoothing: indicator.DefaultSmoothing},
		lookback:    func(p Params) (int, error) { return indicator.TEMALookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.TEMA(data, p.Period, p.Smoothing)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.TEMAState) []float64 { return []float64{s.TEMA} }),
	})

	register(&Indicator{
		Name:        "t3",
		Description: "tillson T3 moving average",
		Columns:     []string{"t3"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 5, VolumeFactor: Float64(indicator.DefaultVolumeFactor), Smoothing: indicator.DefaultSmoothing},
		lookback:    func(p Params) (int, error) { return indicator.T3Lookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.T3(data, p.Period, p.volumeFactor(), p.Smoothing)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.T3State) []float64 { return []float64{s.T3} }),
	})

	register(&Indicator{
		Name:        "kama",
		Description: "kaufman adaptive moving average",
		Columns:     []string{"kama"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 30},
		lookback:    func(p Params) (int, error) { return indicator.KAMALookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.KAMA(data, p.Period)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.KAMAState) []float64 { return []float64{s.KAMA} }),
	})

	register(&Indicator{
		Name:        "roc",
		Description: "rate of change in percent",
		Columns:     []string{"roc"},
		Inputs:      []string{"close"},
		Defaults:    Params{Period: 10},
		lookback:    func(p Params) (int, error) { return indicator.ROCLookback(p.Period) },
		compute: func(in Input, p Params) ([]floats.Slice, interface{}, error) {
			data, err := in.close()
			if err != nil {
				return nil, nil, err
			}
			r, err := indicator.ROC(data, p.Period)
			if err != nil {
				return nil, nil, err
			}
			return []floats.Slice{r.Values}, r.State, nil
		},
		next: nextClose(func(s *indicator.ROCState) []float64 { return []float64{s.ROC} }),
	})
}

// nextClose builds the Next function of a state driven by close prices.
func nextClose[S any, P interface {
	*S
	Update(float64) error
}](values func(*S) []float64) nextFunc {
	return func(raw json.RawMessage, sample Sample) ([]float64, interface{}, error) {
		var s S
		if err := decodeState(raw, &s); err != nil {
			return nil, nil, err
		}
		if err := P(&s).Update(sample.Close); err != nil {
			return nil, nil, err
		}
		return values(&s), &s, nil
	}
}

func decodeState(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return &indicator.Error{Kind: indicator.BadParam, Message: "state is empty"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &indicator.Error{Kind: indicator.BadParam, Message: fmt.Sprintf("invalid state: %v", err)}
	}
	return nil
}

func (in Input) close() (floats.Slice, error) {
	if in.Close == nil {
		return nil, &indicator.Error{Kind: indicator.BadParam, Message: "close series is required"}
	}
	return in.Close, nil
}

func (in Input) highLow() (floats.Slice, floats.Slice, error) {
	if in.High == nil || in.Low == nil {
		return nil, nil, &indicator.Error{Kind: indicator.BadParam, Message: "high and low series are required"}
	}
	return in.High, in.Low, nil
}
