package indicator

import (
	"fmt"
	"strings"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type MovingAverageKind int

const (
	SMAKind MovingAverageKind = iota
	EMAKind
)

func (k MovingAverageKind) String() string {
	switch k {
	case SMAKind:
		return "sma"
	case EMAKind:
		return "ema"
	}
	return fmt.Sprintf("MovingAverageKind(%d)", int(k))
}

func ParseMovingAverageKind(s string) (MovingAverageKind, error) {
	switch strings.ToLower(s) {
	case "", "sma":
		return SMAKind, nil
	case "ema":
		return EMAKind, nil
	}
	return 0, badParam("unknown moving average kind %q", s)
}

func (k MovingAverageKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MovingAverageKind) UnmarshalText(text []byte) error {
	kind, err := ParseMovingAverageKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// MovingAverage selects the center line of the bands. For EMAKind an Alpha of 0
// means 2/(period+1).
type MovingAverage struct {
	Kind  MovingAverageKind `json:"kind"`
	Alpha float64           `json:"alpha,omitempty"`
}

func SimpleAverage() MovingAverage { return MovingAverage{Kind: SMAKind} }

func ExponentialAverage(alpha float64) MovingAverage {
	return MovingAverage{Kind: EMAKind, Alpha: alpha}
}

// resolve fills in the default alpha and validates the selection.
func (ma MovingAverage) resolve(period int) (MovingAverage, error) {
	switch ma.Kind {
	case SMAKind:
		return MovingAverage{Kind: SMAKind}, nil
	case EMAKind:
		if ma.Alpha == 0 {
			ma.Alpha = PeriodToAlpha(period, DefaultSmoothing)
		}
		if err := checkAlpha("BBands", ma.Alpha); err != nil {
			return ma, err
		}
		return ma, nil
	}
	return ma, badParam("BBands moving average kind %v is not supported", ma.Kind)
}

// DeviationMultipliers scale the standard deviation above and below the middle band.
type DeviationMultipliers struct {
	Up   float64 `json:"up"`
	Down float64 `json:"down"`
}

func (m DeviationMultipliers) check() error {
	if !(m.Up > 0) || !isFinite(m.Up) {
		return badParam("BBands upper multiplier must be a positive finite number, got %v", m.Up)
	}
	if !(m.Down > 0) || !isFinite(m.Down) {
		return badParam("BBands lower multiplier must be a positive finite number, got %v", m.Down)
	}
	return nil
}

type BBandsResult struct {
	Upper  floats.Slice
	Middle floats.Slice
	Lower  floats.Slice
	State  BBandsState
}

// BBandsState keeps the rolling mean and mean of squares of the raw window.
// With the EMA kind Middle follows the EMA recurrence while SMA keeps feeding
// the variance.
type BBandsState struct {
	Upper       float64              `json:"upper"`
	Middle      float64              `json:"middle"`
	Lower       float64              `json:"lower"`
	SMA         float64              `json:"sma"`
	MeanSquare  float64              `json:"mean_square"`
	Period      int                  `json:"period"`
	Multipliers DeviationMultipliers `json:"multipliers"`
	MA          MovingAverage        `json:"ma"`
	Window      Ring                 `json:"window"`
}

func BBandsLookback(period int) (int, error) {
	if err := checkPeriod("BBands", period); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// BBands computes Bollinger Bands over the population standard deviation of
// the last period samples.
func BBands(data []float64, period int, multipliers DeviationMultipliers, ma MovingAverage) (*BBandsResult, error) {
	lookback, err := BBandsLookback(period)
	if err != nil {
		return nil, err
	}
	if err := multipliers.check(); err != nil {
		return nil, err
	}
	ma, err = ma.resolve(period)
	if err != nil {
		return nil, err
	}
	if err := checkLength("BBands", len(data), period); err != nil {
		return nil, err
	}

	invPeriod := 1 / float64(period)
	sum, sumSquare := 0.0, 0.0
	for i := 0; i < period; i++ {
		if err := checkSample("BBands", i, data[i]); err != nil {
			return nil, err
		}
		sum += data[i]
		sumSquare += data[i] * data[i]
	}

	sma := sum * invPeriod
	meanSquare := sumSquare * invPeriod
	middle := sma
	upper, lower := bands(middle, sma, meanSquare, multipliers.Up, multipliers.Down)
	if err := checkBBandsOutput(lookback, sma, meanSquare, upper, middle, lower); err != nil {
		return nil, err
	}

	outUpper := newOutput(len(data), lookback)
	outMiddle := newOutput(len(data), lookback)
	outLower := newOutput(len(data), lookback)
	outUpper[lookback], outMiddle[lookback], outLower[lookback] = upper, middle, lower

	for i := period; i < len(data); i++ {
		if err := checkSample("BBands", i, data[i]); err != nil {
			return nil, err
		}

		sma, meanSquare, middle = bbandsNext(ma, data[i], data[i-period], sma, meanSquare, middle, invPeriod)
		upper, lower = bands(middle, sma, meanSquare, multipliers.Up, multipliers.Down)
		if err := checkBBandsOutput(i, sma, meanSquare, upper, middle, lower); err != nil {
			return nil, err
		}
		outUpper[i], outMiddle[i], outLower[i] = upper, middle, lower
	}

	return &BBandsResult{
		Upper:  outUpper,
		Middle: outMiddle,
		Lower:  outLower,
		State: BBandsState{
			Upper:       upper,
			Middle:      middle,
			Lower:       lower,
			SMA:         sma,
			MeanSquare:  meanSquare,
			Period:      period,
			Multipliers: multipliers,
			MA:          ma,
			Window:      RingOf(data[len(data)-period:]...),
		},
	}, nil
}

func bbandsNext(ma MovingAverage, newValue, oldValue, sma, meanSquare, middle, invPeriod float64) (nextSMA, nextMeanSquare, nextMiddle float64) {
	nextSMA = smaNext(newValue, oldValue, sma, invPeriod)
	nextMeanSquare = smaNext(newValue*newValue, oldValue*oldValue, meanSquare, invPeriod)
	if ma.Kind == EMAKind {
		nextMiddle = emaNext(newValue, middle, ma.Alpha)
	} else {
		nextMiddle = nextSMA
	}
	return nextSMA, nextMeanSquare, nextMiddle
}

func checkBBandsOutput(index int, values ...float64) error {
	for _, v := range values {
		if err := checkOutput("BBands", index, v); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the middle band.
func (s *BBandsState) Value() float64 { return s.Middle }

func (s *BBandsState) Update(sample float64) error {
	if err := checkPeriod("BBands", s.Period); err != nil {
		return err
	}
	if err := s.Multipliers.check(); err != nil {
		return err
	}
	ma, err := s.MA.resolve(s.Period)
	if err != nil {
		return err
	}
	if err := checkUpdateSample("BBands", sample); err != nil {
		return err
	}
	if err := checkStored("BBands", "sma", s.SMA); err != nil {
		return err
	}
	if err := checkStored("BBands", "mean_square", s.MeanSquare); err != nil {
		return err
	}
	if err := checkStored("BBands", "middle", s.Middle); err != nil {
		return err
	}
	if err := checkWindow("BBands", &s.Window, s.Period); err != nil {
		return err
	}

	sma, meanSquare, middle := bbandsNext(ma, sample, s.Window.Oldest(), s.SMA, s.MeanSquare, s.Middle, 1/float64(s.Period))
	upper, lower := bands(middle, sma, meanSquare, s.Multipliers.Up, s.Multipliers.Down)
	if err := checkBBandsOutput(UpdateIndex, sma, meanSquare, upper, middle, lower); err != nil {
		return err
	}

	s.Window.Push(sample)
	s.SMA, s.MeanSquare = sma, meanSquare
	s.Upper, s.Middle, s.Lower = upper, middle, lower
	s.MA = ma
	return nil
}

func (s BBandsState) Clone() BBandsState {
	s.Window = s.Window.Clone()
	return s
}
