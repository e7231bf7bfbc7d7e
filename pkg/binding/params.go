package binding

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
	"github.com/techalysis/techalysis/pkg/indicator"
)

// Params is the union of every indicator parameter. Zero fields take the
// indicator default, so a zero period never reaches an indicator. VolumeFactor
// is a pointer because zero is a valid T3 volume factor.
type Params struct {
	Period       int     `json:"period,omitempty" yaml:"period,omitempty"`
	FastPeriod   int     `json:"fastPeriod,omitempty" yaml:"fastPeriod,omitempty"`
	SlowPeriod   int     `json:"slowPeriod,omitempty" yaml:"slowPeriod,omitempty"`
	SignalPeriod int     `json:"signalPeriod,omitempty" yaml:"signalPeriod,omitempty"`
	Smoothing    float64 `json:"smoothing,omitempty" yaml:"smoothing,omitempty"`
	VolumeFactor *float64 `json:"vfactor,omitempty" yaml:"vfactor,omitempty"`
	StdUp        float64 `json:"stdUp,omitempty" yaml:"stdUp,omitempty"`
	StdDown      float64 `json:"stdDown,omitempty" yaml:"stdDown,omitempty"`

	// MA selects the BBands middle band, "sma" or "ema".
	MA    string  `json:"ma,omitempty" yaml:"ma,omitempty"`
	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
}

// Merge fills the zero fields of p from defaults.
func (p Params) Merge(defaults Params) Params {
	if p.Period == 0 {
		p.Period = defaults.Period
	}
	if p.FastPeriod == 0 {
		p.FastPeriod = defaults.FastPeriod
	}
	if p.SlowPeriod == 0 {
		p.SlowPeriod = defaults.SlowPeriod
	}
	if p.SignalPeriod == 0 {
		p.SignalPeriod = defaults.SignalPeriod
	}
	if p.Smoothing == 0 {
		p.Smoothing = defaults.Smoothing
	}
	if p.VolumeFactor == nil {
		p.VolumeFactor = defaults.VolumeFactor
	}
	if p.StdUp == 0 {
		p.StdUp = defaults.StdUp
	}
	if p.StdDown == 0 {
		p.StdDown = defaults.StdDown
	}
	if p.MA == "" {
		p.MA = defaults.MA
	}
	return p
}

// Float64 returns a pointer to v, for the optional fields of Params.
func Float64(v float64) *float64 {
	return &v
}

func (p Params) volumeFactor() float64 {
	if p.VolumeFactor == nil {
		return indicator.DefaultVolumeFactor
	}
	return *p.VolumeFactor
}

func (p Params) movingAverage() (indicator.MovingAverage, error) {
	kind, err := indicator.ParseMovingAverageKind(p.MA)
	if err != nil {
		return indicator.MovingAverage{}, err
	}
	if kind == indicator.EMAKind {
		return indicator.ExponentialAverage(p.Alpha), nil
	}
	return indicator.SimpleAverage(), nil
}

// Input holds the price series an indicator reads from.
type Input struct {
	Close floats.Slice `json:"close,omitempty"`
	High  floats.Slice `json:"high,omitempty"`
	Low   floats.Slice `json:"low,omitempty"`
}

// Sample is one bar fed to Next.
type Sample struct {
	Close float64 `json:"close"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
}
