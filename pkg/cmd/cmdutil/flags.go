package cmdutil

import (
	"github.com/spf13/pflag"

	"github.com/techalysis/techalysis/pkg/binding"
)

// InputFlags defines the flags that select the price series.
func InputFlags(flags *pflag.FlagSet) {
	flags.String("input", "", "csv file with the price series, - for stdin")
	flags.String("close-column", "close", "csv column read as close")
	flags.String("high-column", "high", "csv column read as high")
	flags.String("low-column", "low", "csv column read as low")
}

// ParamFlags defines one flag per indicator parameter. Zero means the
// indicator default.
func ParamFlags(flags *pflag.FlagSet) {
	flags.Int("period", 0, "period")
	flags.Int("fast-period", 0, "MACD fast period")
	flags.Int("slow-period", 0, "MACD slow period")
	flags.Int("signal-period", 0, "MACD signal period")
	flags.Float64("smoothing", 0, "EMA smoothing factor, alpha = smoothing / (period + 1)")
	flags.Float64("vfactor", 0, "T3 volume factor, used only when set")
	flags.Float64("std-up", 0, "BBands upper deviation multiplier")
	flags.Float64("std-down", 0, "BBands lower deviation multiplier")
	flags.String("ma", "", "BBands middle band: sma or ema")
	flags.Float64("alpha", 0, "BBands EMA alpha, 0 derives it from the period")
}

func ParamsFromFlags(flags *pflag.FlagSet) (p binding.Params, err error) {
	if p.Period, err = flags.GetInt("period"); err != nil {
		return p, err
	}
	if p.FastPeriod, err = flags.GetInt("fast-period"); err != nil {
		return p, err
	}
	if p.SlowPeriod, err = flags.GetInt("slow-period"); err != nil {
		return p, err
	}
	if p.SignalPeriod, err = flags.GetInt("signal-period"); err != nil {
		return p, err
	}
	if p.Smoothing, err = flags.GetFloat64("smoothing"); err != nil {
		return p, err
	}
	if flags.Changed("vfactor") {
		v, err := flags.GetFloat64("vfactor")
		if err != nil {
			return p, err
		}
		p.VolumeFactor = &v
	}
	if p.StdUp, err = flags.GetFloat64("std-up"); err != nil {
		return p, err
	}
	if p.StdDown, err = flags.GetFloat64("std-down"); err != nil {
		return p, err
	}
	if p.MA, err = flags.GetString("ma"); err != nil {
		return p, err
	}
	if p.Alpha, err = flags.GetFloat64("alpha"); err != nil {
		return p, err
	}
	return p, nil
}
