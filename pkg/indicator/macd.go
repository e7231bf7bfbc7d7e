package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type MACDResult struct {
	MACD      floats.Slice
	Signal    floats.Slice
	Histogram floats.Slice
	State     MACDState
}

// MACDState carries the two price EMAs and the signal EMA of their difference.
type MACDState struct {
	FastEMA      float64 `json:"fast_ema"`
	SlowEMA      float64 `json:"slow_ema"`
	MACD         float64 `json:"macd"`
	Signal       float64 `json:"signal"`
	Histogram    float64 `json:"histogram"`
	FastPeriod   int     `json:"fast_period"`
	SlowPeriod   int     `json:"slow_period"`
	SignalPeriod int     `json:"signal_period"`
}

func checkMACDPeriods(fastPeriod, slowPeriod, signalPeriod int) error {
	if err := checkPeriod("MACD fast", fastPeriod); err != nil {
		return err
	}
	if err := checkPeriod("MACD slow", slowPeriod); err != nil {
		return err
	}
	if err := checkPeriod("MACD signal", signalPeriod); err != nil {
		return err
	}
	if fastPeriod >= slowPeriod {
		return badParam("MACD fast period %d must be less than slow period %d", fastPeriod, slowPeriod)
	}
	return nil
}

func MACDLookback(fastPeriod, slowPeriod, signalPeriod int) (int, error) {
	if err := checkMACDPeriods(fastPeriod, slowPeriod, signalPeriod); err != nil {
		return 0, err
	}
	return slowPeriod - 1 + signalPeriod - 1, nil
}

// MACD computes the moving average convergence divergence. Both price EMAs
// become available at slowPeriod-1, the signal line is seeded with the mean
// of the first signalPeriod MACD values.
func MACD(data []float64, fastPeriod, slowPeriod, signalPeriod int) (*MACDResult, error) {
	lookback, err := MACDLookback(fastPeriod, slowPeriod, signalPeriod)
	if err != nil {
		return nil, err
	}
	if err := checkLength("MACD", len(data), lookback+1); err != nil {
		return nil, err
	}

	fastAlpha := PeriodToAlpha(fastPeriod, DefaultSmoothing)
	slowAlpha := PeriodToAlpha(slowPeriod, DefaultSmoothing)
	signalAlpha := PeriodToAlpha(signalPeriod, DefaultSmoothing)

	slowEMA, err := seedMean("MACD", data, 0, slowPeriod)
	if err != nil {
		return nil, err
	}
	fastEMA, err := seedMean("MACD", data, slowPeriod-fastPeriod, fastPeriod)
	if err != nil {
		return nil, err
	}

	macd := fastEMA - slowEMA
	if err := checkMACDOutput(slowPeriod-1, fastEMA, slowEMA, macd); err != nil {
		return nil, err
	}

	sumMACD := macd
	for i := slowPeriod; i <= lookback; i++ {
		if err := checkSample("MACD", i, data[i]); err != nil {
			return nil, err
		}

		fastEMA = emaNext(data[i], fastEMA, fastAlpha)
		slowEMA = emaNext(data[i], slowEMA, slowAlpha)
		macd = fastEMA - slowEMA
		sumMACD += macd
		if err := checkMACDOutput(i, fastEMA, slowEMA, macd, sumMACD); err != nil {
			return nil, err
		}
	}

	signal := sumMACD / float64(signalPeriod)
	histogram := macd - signal
	if err := checkMACDOutput(lookback, signal, histogram); err != nil {
		return nil, err
	}

	outMACD := newOutput(len(data), lookback)
	outSignal := newOutput(len(data), lookback)
	outHistogram := newOutput(len(data), lookback)
	outMACD[lookback], outSignal[lookback], outHistogram[lookback] = macd, signal, histogram

	for i := lookback + 1; i < len(data); i++ {
		if err := checkSample("MACD", i, data[i]); err != nil {
			return nil, err
		}

		fastEMA = emaNext(data[i], fastEMA, fastAlpha)
		slowEMA = emaNext(data[i], slowEMA, slowAlpha)
		macd = fastEMA - slowEMA
		signal = emaNext(macd, signal, signalAlpha)
		histogram = macd - signal
		if err := checkMACDOutput(i, fastEMA, slowEMA, macd, signal, histogram); err != nil {
			return nil, err
		}
		outMACD[i], outSignal[i], outHistogram[i] = macd, signal, histogram
	}

	return &MACDResult{
		MACD:      outMACD,
		Signal:    outSignal,
		Histogram: outHistogram,
		State: MACDState{
			FastEMA:      fastEMA,
			SlowEMA:      slowEMA,
			MACD:         macd,
			Signal:       signal,
			Histogram:    histogram,
			FastPeriod:   fastPeriod,
			SlowPeriod:   slowPeriod,
			SignalPeriod: signalPeriod,
		},
	}, nil
}

func checkMACDOutput(index int, values ...float64) error {
	for _, v := range values {
		if err := checkOutput("MACD", index, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *MACDState) Value() float64 { return s.MACD }

// Update advances the fast EMA, the slow EMA and then the signal EMA.
func (s *MACDState) Update(sample float64) error {
	if err := checkMACDPeriods(s.FastPeriod, s.SlowPeriod, s.SignalPeriod); err != nil {
		return err
	}
	if err := checkUpdateSample("MACD", sample); err != nil {
		return err
	}
	if err := checkStored("MACD", "fast_ema", s.FastEMA); err != nil {
		return err
	}
	if err := checkStored("MACD", "slow_ema", s.SlowEMA); err != nil {
		return err
	}
	if err := checkStored("MACD", "signal", s.Signal); err != nil {
		return err
	}

	fastEMA := emaNext(sample, s.FastEMA, PeriodToAlpha(s.FastPeriod, DefaultSmoothing))
	slowEMA := emaNext(sample, s.SlowEMA, PeriodToAlpha(s.SlowPeriod, DefaultSmoothing))
	macd := fastEMA - slowEMA
	signal := emaNext(macd, s.Signal, PeriodToAlpha(s.SignalPeriod, DefaultSmoothing))
	histogram := macd - signal
	if err := checkMACDOutput(UpdateIndex, fastEMA, slowEMA, macd, signal, histogram); err != nil {
		return err
	}

	s.FastEMA, s.SlowEMA = fastEMA, slowEMA
	s.MACD, s.Signal, s.Histogram = macd, signal, histogram
	return nil
}

func (s MACDState) Clone() MACDState { return s }
