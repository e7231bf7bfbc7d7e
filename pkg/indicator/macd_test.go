package indicator

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// macdOracle composes MACD from independent EMA runs: the fast EMA starts on
// data[slow-fast:] so that both price EMAs become available at slow-1.
func macdOracle(t *testing.T, data []float64, fast, slow, signal int) (macd, sig, hist floats.Slice) {
	slowEMA, err := EMA(data, slow, DefaultSmoothing)
	require.NoError(t, err)
	fastEMA, err := EMA(data[slow-fast:], fast, DefaultSmoothing)
	require.NoError(t, err)

	macd = floats.NaNs(len(data))
	for i := slow - 1; i < len(data); i++ {
		macd[i] = fastEMA.Values[i-(slow-fast)] - slowEMA.Values[i]
	}

	signalEMA, err := EMA(macd[slow-1:], signal, DefaultSmoothing)
	require.NoError(t, err)

	lookback := slow - 1 + signal - 1
	sig = floats.NaNs(len(data))
	for i := lookback; i < len(data); i++ {
		sig[i] = signalEMA.Values[i-(slow-1)]
	}
	for i := 0; i < lookback; i++ {
		macd[i] = math.NaN()
	}
	return macd, sig, macd.Sub(sig)
}

func TestMACD_Oracle(t *testing.T) {
	closes, _, _ := loadPrices(t)

	for _, p := range [][3]int{{12, 26, 9}, {3, 5, 2}, {2, 3, 4}} {
		r, err := MACD(closes, p[0], p[1], p[2])
		require.NoError(t, err)

		macd, sig, hist := macdOracle(t, closes, p[0], p[1], p[2])
		assertSeriesInDelta(t, macd, r.MACD, 1e-9, "macd %v", p)
		assertSeriesInDelta(t, sig, r.Signal, 1e-9, "signal %v", p)
		assertSeriesInDelta(t, hist, r.Histogram, 1e-9, "histogram %v", p)

		lookback, err := MACDLookback(p[0], p[1], p[2])
		require.NoError(t, err)
		assert.Equal(t, lookback, r.MACD.FirstValid())
	}
}

func TestMACD_MinimalLength(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}

	r, err := MACD(data, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, r.MACD.FirstValid())

	_, err = MACD(data[:5], 2, 3, 4)
	assert.True(t, errors.Is(err, ErrInsufficientData), "got %v", err)
}

func TestMACD_Errors(t *testing.T) {
	data := make([]float64, 50)
	for i := range data {
		data[i] = float64(i)
	}

	for _, p := range [][3]int{{26, 12, 9}, {12, 12, 9}, {1, 26, 9}, {12, 26, 1}, {0, 0, 0}} {
		_, err := MACD(data, p[0], p[1], p[2])
		assert.True(t, errors.Is(err, ErrBadParam), "%v: got %v", p, err)
	}

	data[40] = math.Inf(1)
	_, err := MACD(data, 12, 26, 9)
	assert.True(t, errors.Is(err, ErrDataNonFinite), "got %v", err)

	s := MACDState{FastEMA: 1, SlowEMA: 1, Signal: math.NaN(), FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}
	assert.True(t, errors.Is(s.Update(1), ErrDataNonFinite))

	s = MACDState{FastEMA: 1, SlowEMA: 1, FastPeriod: 26, SlowPeriod: 12, SignalPeriod: 9}
	assert.True(t, errors.Is(s.Update(1), ErrBadParam))
}
