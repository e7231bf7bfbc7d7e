package indicator

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// kamaOracle recomputes the efficiency ratio from scratch at every index.
func kamaOracle(data []float64, period int) floats.Slice {
	out := floats.NaNs(len(data))
	kama := data[period-1]
	for i := period; i < len(data); i++ {
		volatility := 0.0
		for j := i - period + 1; j <= i; j++ {
			volatility += math.Abs(data[j] - data[j-1])
		}

		er := 1.0
		if volatility > 1e-8 {
			er = math.Abs(data[i]-data[i-period]) / volatility
		}

		sc := er*(2.0/3-2.0/31) + 2.0/31
		kama += (data[i] - kama) * sc * sc
		out[i] = kama
	}
	return out
}

func TestKAMA_Oracle(t *testing.T) {
	closes, _, _ := loadPrices(t)
	for _, period := range []int{2, 10, 30} {
		r, err := KAMA(closes, period)
		require.NoError(t, err)
		assertSeriesInDelta(t, kamaOracle(closes, period), r.Values, 1e-9, "period %d", period)
	}
}

func TestKAMA_Trend(t *testing.T) {
	// a straight line has efficiency 1, the fastest constant applies
	data := []float64{1, 2, 3, 4, 5}
	r, err := KAMA(data, 3)
	require.NoError(t, err)

	sc := (2.0 / 3) * (2.0 / 3)
	want := 3 + (4-3)*sc
	assert.InDelta(t, want, r.Values[3], Delta)
	assert.InDelta(t, want+(5-want)*sc, r.Values[4], Delta)
	assert.Equal(t, []float64{2, 3, 4, 5}, r.State.Window.Values())
}

func TestKAMA_Errors(t *testing.T) {
	_, err := KAMA([]float64{1, 2, 3}, 1)
	assert.True(t, errors.Is(err, ErrBadParam), "got %v", err)

	_, err = KAMA([]float64{1, 2, 3}, 3)
	assert.True(t, errors.Is(err, ErrInsufficientData), "got %v", err)

	_, err = KAMA([]float64{1, 2, math.NaN(), 4}, 3)
	assert.True(t, errors.Is(err, ErrDataNonFinite), "got %v", err)

	r, err := KAMA([]float64{1, 2, 3, 4}, 3)
	require.NoError(t, err)
	r.State.Window = RingOf(1, 2, 3)
	assert.True(t, errors.Is(r.State.Update(5), ErrBadParam))
}
