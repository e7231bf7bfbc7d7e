package stream

import (
	"github.com/pkg/errors"

	"github.com/techalysis/techalysis/pkg/indicator"
)

// checkParams runs seed without data. Parameters are validated before the
// input length, so a parameter problem surfaces as BadParam here.
func checkParams[T any](seed SeedFunc[T]) error {
	if _, err := seed(nil); errors.Is(err, indicator.ErrBadParam) {
		return err
	}
	return nil
}

func newIndicatorStream(source Float64Source, name string, lookback int, lookbackErr error, seed SeedFunc[float64]) (*FloatStream, error) {
	if lookbackErr != nil {
		return nil, lookbackErr
	}
	if err := checkParams(seed); err != nil {
		return nil, err
	}
	return newFloatStream(source, name, lookback, seed), nil
}

func SMA(source Float64Source, period int) (*FloatStream, error) {
	lookback, err := indicator.SMALookback(period)
	return newIndicatorStream(source, "SMA", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.SMA(data, period)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func EMA(source Float64Source, period int, smoothing float64) (*FloatStream, error) {
	lookback, err := indicator.EMALookback(period)
	return newIndicatorStream(source, "EMA", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.EMA(data, period, smoothing)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func RSI(source Float64Source, period int) (*FloatStream, error) {
	lookback, err := indicator.RSILookback(period)
	return newIndicatorStream(source, "RSI", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.RSI(data, period)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func WMA(source Float64Source, period int) (*FloatStream, error) {
	lookback, err := indicator.WMALookback(period)
	return newIndicatorStream(source, "WMA", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.WMA(data, period)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func TRIMA(source Float64Source, period int) (*FloatStream, error) {
	lookback, err := indicator.TRIMALookback(period)
	return newIndicatorStream(source, "TRIMA", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.TRIMA(data, period)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func MidPoint(source Float64Source, period int) (*FloatStream, error) {
	lookback, err := indicator.MidPointLookback(period)
	return newIndicatorStream(source, "MidPoint", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.MidPoint(data, period)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func DEMA(source Float64Source, period int, smoothing float64) (*FloatStream, error) {
	lookback, err := indicator.DEMALookback(period)
	return newIndicatorStream(source, "DEMA", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.DEMA(data, period, smoothing)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func TEMA(source Float64Source, period int, smoothing float64) (*FloatStream, error) {
	lookback, err := indicator.TEMALookback(period)
	return newIndicatorStream(source, "TEMA", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.TEMA(data, period, smoothing)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func T3(source Float64Source, period int, vFactor, smoothing float64) (*FloatStream, error) {
	lookback, err := indicator.T3Lookback(period)
	return newIndicatorStream(source, "T3", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.T3(data, period, vFactor, smoothing)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func KAMA(source Float64Source, period int) (*FloatStream, error) {
	lookback, err := indicator.KAMALookback(period)
	return newIndicatorStream(source, "KAMA", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.KAMA(data, period)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}

func ROC(source Float64Source, period int) (*FloatStream, error) {
	lookback, err := indicator.ROCLookback(period)
	return newIndicatorStream(source, "ROC", lookback, err, func(data []float64) (indicator.Updater[float64], error) {
		r, err := indicator.ROC(data, period)
		if err != nil {
			return nil, err
		}
		return &r.State, nil
	})
}
