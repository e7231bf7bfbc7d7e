package indicator

import (
	"math"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

const (
	kamaFastest = 2.0 / (2.0 + 1.0)
	kamaSlowest = 2.0 / (30.0 + 1.0)
)

type KAMAResult struct {
	Values floats.Slice
	State  KAMAState
}

// KAMAState keeps period+1 raw samples: the sum of absolute one-step changes
// needs the value that drops out of it.
type KAMAState struct {
	KAMA   float64 `json:"kama"`
	SumROC float64 `json:"sum_roc"`
	Period int     `json:"period"`
	Window Ring    `json:"window"`
}

func KAMALookback(period int) (int, error) {
	if err := checkPeriod("KAMA", period); err != nil {
		return 0, err
	}
	return period, nil
}

// kamaNext applies one adaptive smoothing step given the net change over the
// period and the sum of absolute changes within it.
func kamaNext(value, prev, periodROC, sumROC float64) float64 {
	er := 1.0
	if !(sumROC <= periodROC || math.Abs(sumROC) < 1e-8) {
		er = math.Abs(periodROC / sumROC)
	}

	sc := er*(kamaFastest-kamaSlowest) + kamaSlowest
	sc *= sc
	return (value-prev)*sc + prev
}

// KAMA computes Kaufman's adaptive moving average.
func KAMA(data []float64, period int) (*KAMAResult, error) {
	lookback, err := KAMALookback(period)
	if err != nil {
		return nil, err
	}
	if err := checkLength("KAMA", len(data), period+1); err != nil {
		return nil, err
	}
	for i := 0; i <= period; i++ {
		if err := checkSample("KAMA", i, data[i]); err != nil {
			return nil, err
		}
	}

	sumROC := 0.0
	for i := 0; i < period; i++ {
		sumROC += math.Abs(data[i] - data[i+1])
	}

	kama := kamaNext(data[period], data[period-1], data[period]-data[0], sumROC)
	if err := checkKAMAOutput(lookback, kama, sumROC); err != nil {
		return nil, err
	}

	out := newOutput(len(data), lookback)
	out[lookback] = kama

	for i := period + 1; i < len(data); i++ {
		if err := checkSample("KAMA", i, data[i]); err != nil {
			return nil, err
		}

		sumROC -= math.Abs(data[i-period-1] - data[i-period])
		sumROC += math.Abs(data[i] - data[i-1])
		kama = kamaNext(data[i], kama, data[i]-data[i-period], sumROC)
		if err := checkKAMAOutput(i, kama, sumROC); err != nil {
			return nil, err
		}
		out[i] = kama
	}

	return &KAMAResult{
		Values: out,
		State: KAMAState{
			KAMA:   kama,
			SumROC: sumROC,
			Period: period,
			Window: RingOf(data[len(data)-period-1:]...),
		},
	}, nil
}

func checkKAMAOutput(index int, kama, sumROC float64) error {
	if err := checkOutput("KAMA", index, sumROC); err != nil {
		return err
	}
	return checkOutput("KAMA", index, kama)
}

func (s *KAMAState) Value() float64 { return s.KAMA }

func (s *KAMAState) Update(sample float64) error {
	if err := checkPeriod("KAMA", s.Period); err != nil {
		return err
	}
	if err := checkUpdateSample("KAMA", sample); err != nil {
		return err
	}
	if err := checkStored("KAMA", "kama", s.KAMA); err != nil {
		return err
	}
	if err := checkStored("KAMA", "sum_roc", s.SumROC); err != nil {
		return err
	}
	if err := checkWindow("KAMA", &s.Window, s.Period+1); err != nil {
		return err
	}

	// the window holds x[i-period] .. x[i], sample is x[i+1]
	sumROC := s.SumROC
	sumROC -= math.Abs(s.Window.At(0) - s.Window.At(1))
	sumROC += math.Abs(sample - s.Window.Newest())
	kama := kamaNext(sample, s.KAMA, sample-s.Window.At(1), sumROC)
	if err := checkKAMAOutput(UpdateIndex, kama, sumROC); err != nil {
		return err
	}

	s.Window.Push(sample)
	s.SumROC = sumROC
	s.KAMA = kama
	return nil
}

func (s KAMAState) Clone() KAMAState {
	s.Window = s.Window.Clone()
	return s
}
