package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// SMAResult is the output of SMA.
type SMAResult struct {
	Values floats.Slice
	State  SMAState
}

// SMAState extends an SMA by one sample at a time.
type SMAState struct {
	SMA    float64 `json:"sma"`
	Period int     `json:"period"`
	Window Ring    `json:"window"`
}

func SMALookback(period int) (int, error) {
	if err := checkPeriod("SMA", period); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// SMA computes the simple moving average of data over period samples.
func SMA(data []float64, period int) (*SMAResult, error) {
	lookback, err := SMALookback(period)
	if err != nil {
		return nil, err
	}
	if err := checkLength("SMA", len(data), period); err != nil {
		return nil, err
	}

	out := newOutput(len(data), lookback)
	invPeriod := 1 / float64(period)

	sum := 0.0
	for i := 0; i < period; i++ {
		if err := checkSample("SMA", i, data[i]); err != nil {
			return nil, err
		}
		sum += data[i]
	}

	sma := sum * invPeriod
	if err := checkOutput("SMA", lookback, sma); err != nil {
		return nil, err
	}
	out[lookback] = sma

	for i := period; i < len(data); i++ {
		if err := checkSample("SMA", i, data[i]); err != nil {
			return nil, err
		}

		sma = smaNext(data[i], data[i-period], sma, invPeriod)
		if err := checkOutput("SMA", i, sma); err != nil {
			return nil, err
		}
		out[i] = sma
	}

	return &SMAResult{
		Values: out,
		State: SMAState{
			SMA:    sma,
			Period: period,
			Window: RingOf(data[len(data)-period:]...),
		},
	}, nil
}

func (s *SMAState) Value() float64 { return s.SMA }

// Update feeds one sample. The state is unchanged when an error is returned.
func (s *SMAState) Update(sample float64) error {
	if err := checkPeriod("SMA", s.Period); err != nil {
		return err
	}
	if err := checkUpdateSample("SMA", sample); err != nil {
		return err
	}
	if err := checkStored("SMA", "sma", s.SMA); err != nil {
		return err
	}
	if err := checkWindow("SMA", &s.Window, s.Period); err != nil {
		return err
	}

	sma := smaNext(sample, s.Window.Oldest(), s.SMA, 1/float64(s.Period))
	if err := checkOutput("SMA", UpdateIndex, sma); err != nil {
		return err
	}

	s.Window.Push(sample)
	s.SMA = sma
	return nil
}

func (s SMAState) Clone() SMAState {
	s.Window = s.Window.Clone()
	return s
}
