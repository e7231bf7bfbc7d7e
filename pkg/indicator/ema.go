package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// DefaultSmoothing gives the conventional EMA weight 2/(period+1).
const DefaultSmoothing = 2.0

type EMAResult struct {
	Values floats.Slice
	State  EMAState
}

type EMAState struct {
	EMA    float64 `json:"ema"`
	Period int     `json:"period"`
	Alpha  float64 `json:"alpha"`
}

func EMALookback(period int) (int, error) {
	if err := checkPeriod("EMA", period); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// EMA computes the exponential moving average with alpha = smoothing/(period+1),
// seeded by the simple mean of the first period samples.
func EMA(data []float64, period int, smoothing float64) (*EMAResult, error) {
	lookback, err := EMALookback(period)
	if err != nil {
		return nil, err
	}
	if err := checkSmoothing("EMA", smoothing); err != nil {
		return nil, err
	}
	if err := checkLength("EMA", len(data), period); err != nil {
		return nil, err
	}

	out := newOutput(len(data), lookback)
	alpha := PeriodToAlpha(period, smoothing)

	ema, err := seedMean("EMA", data, 0, period)
	if err != nil {
		return nil, err
	}
	if err := checkOutput("EMA", lookback, ema); err != nil {
		return nil, err
	}
	out[lookback] = ema

	for i := period; i < len(data); i++ {
		if err := checkSample("EMA", i, data[i]); err != nil {
			return nil, err
		}

		ema = emaNext(data[i], ema, alpha)
		if err := checkOutput("EMA", i, ema); err != nil {
			return nil, err
		}
		out[i] = ema
	}

	return &EMAResult{
		Values: out,
		State:  EMAState{EMA: ema, Period: period, Alpha: alpha},
	}, nil
}

// seedMean returns the mean of data[from:from+period], checking every sample.
func seedMean(name string, data []float64, from, period int) (float64, error) {
	sum := 0.0
	for i := from; i < from+period; i++ {
		if err := checkSample(name, i, data[i]); err != nil {
			return 0, err
		}
		sum += data[i]
	}
	return sum * (1 / float64(period)), nil
}

func (s *EMAState) Value() float64 { return s.EMA }

func (s *EMAState) Update(sample float64) error {
	if err := checkPeriod("EMA", s.Period); err != nil {
		return err
	}
	if err := checkUpdateSample("EMA", sample); err != nil {
		return err
	}
	if err := checkStored("EMA", "ema", s.EMA); err != nil {
		return err
	}
	if err := checkAlpha("EMA", s.Alpha); err != nil {
		return err
	}

	ema := emaNext(sample, s.EMA, s.Alpha)
	if err := checkOutput("EMA", UpdateIndex, ema); err != nil {
		return err
	}

	s.EMA = ema
	return nil
}

func (s EMAState) Clone() EMAState { return s }
