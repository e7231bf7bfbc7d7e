package indicator

import (
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/require"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// go-talib leaves the lookback as zeros, compare from the first valid index on.
func assertMatchesTalib(t *testing.T, want []float64, got floats.Slice, lookback int) {
	t.Helper()
	require.Equal(t, lookback, got.FirstValid())
	assertSeriesInDelta(t, want[lookback:], got[lookback:], 1e-9)
}

func TestTalibReference(t *testing.T) {
	closes, highs, lows := loadPrices(t)

	t.Run("SMA", func(t *testing.T) {
		for _, period := range []int{2, 5, 30} {
			r, err := SMA(closes, period)
			require.NoError(t, err)
			assertMatchesTalib(t, talib.Sma(closes, period), r.Values, period-1)
		}
	})

	t.Run("EMA", func(t *testing.T) {
		for _, period := range []int{2, 10, 26} {
			r, err := EMA(closes, period, DefaultSmoothing)
			require.NoError(t, err)
			assertMatchesTalib(t, talib.Ema(closes, period), r.Values, period-1)
		}
	})

	t.Run("WMA", func(t *testing.T) {
		for _, period := range []int{2, 9, 20} {
			r, err := WMA(closes, period)
			require.NoError(t, err)
			assertMatchesTalib(t, talib.Wma(closes, period), r.Values, period-1)
		}
	})

	t.Run("RSI", func(t *testing.T) {
		for _, period := range []int{2, 14} {
			r, err := RSI(closes, period)
			require.NoError(t, err)
			assertMatchesTalib(t, talib.Rsi(closes, period), r.Values, period)
		}
	})

	t.Run("DEMA", func(t *testing.T) {
		for _, period := range []int{3, 10} {
			r, err := DEMA(closes, period, DefaultSmoothing)
			require.NoError(t, err)
			assertMatchesTalib(t, talib.Dema(closes, period), r.Values, 2*(period-1))
		}
	})

	t.Run("TEMA", func(t *testing.T) {
		for _, period := range []int{3, 10} {
			r, err := TEMA(closes, period, DefaultSmoothing)
			require.NoError(t, err)
			assertMatchesTalib(t, talib.Tema(closes, period), r.Values, 3*(period-1))
		}
	})

	t.Run("ROC", func(t *testing.T) {
		for _, period := range []int{1, 10} {
			r, err := ROC(closes, period)
			require.NoError(t, err)
			assertMatchesTalib(t, talib.Roc(closes, period), r.Values, period)
		}
	})

	t.Run("MidPoint", func(t *testing.T) {
		r, err := MidPoint(closes, 14)
		require.NoError(t, err)
		assertMatchesTalib(t, talib.MidPoint(closes, 14), r.Values, 13)
	})

	t.Run("MidPrice", func(t *testing.T) {
		r, err := MidPrice(highs, lows, 14)
		require.NoError(t, err)
		assertMatchesTalib(t, talib.MidPrice(highs, lows, 14), r.Values, 13)
	})
}
