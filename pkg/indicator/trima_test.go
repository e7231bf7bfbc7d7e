package indicator

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

func TestTRIMA(t *testing.T) {
	nan := math.NaN()
	data := []float64{1, 2, 3, 4, 5, 3, 4, 2}

	tests := []struct {
		name   string
		period int
		want   floats.Slice
	}{
		{name: "even", period: 4, want: floats.Slice{nan, nan, nan, 2.5, 3.5, 4, 4, 3.5}},
		{name: "odd", period: 5, want: floats.Slice{nan, nan, nan, nan, 3, 11.0 / 3, 4, 11.0 / 3}},
		{name: "period 2", period: 2, want: floats.Slice{nan, 1.5, 2.5, 3.5, 4.5, 4, 3.5, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := TRIMA(data, tt.period)
			require.NoError(t, err)
			assertSeriesInDelta(t, tt.want, r.Values, Delta)
		})
	}
}

// TRIMA is an SMA of an SMA, the window sizes split the period in two.
func TestTRIMA_WindowOracle(t *testing.T) {
	closes, _, _ := loadPrices(t)
	for _, period := range []int{4, 5, 30} {
		first, second := (period+1)/2, (period+1)/2
		if period%2 == 0 {
			first, second = period/2, period/2+1
		}
		want := floats.Rolling(floats.Rolling(closes, first, floats.Average), second, floats.Average)

		r, err := TRIMA(closes, period)
		require.NoError(t, err)
		assertSeriesInDelta(t, want, r.Values, 1e-9)
	}
}

func TestTRIMA_Sequential(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	r, err := TRIMA(data[:5], 5)
	require.NoError(t, err)
	assert.Equal(t, 27.0, r.State.Sum)
	assert.Equal(t, 6.0, r.State.TrailingSum)
	assert.Equal(t, 9.0, r.State.HeadingSum)

	require.NoError(t, r.State.Update(6))
	assert.Equal(t, 36.0, r.State.Sum)
	assert.Equal(t, 9.0, r.State.TrailingSum)
	assert.Equal(t, 11.0, r.State.HeadingSum)
	assert.InDelta(t, 4.0, r.State.TRIMA, Delta)

	r, err = TRIMA(data[:6], 6)
	require.NoError(t, err)
	require.NoError(t, r.State.Update(7))
	assert.Equal(t, 54.0, r.State.Sum)
	assert.InDelta(t, 4.5, r.State.TRIMA, Delta)
}

func TestTRIMA_Errors(t *testing.T) {
	_, err := TRIMA([]float64{1, 2, 3}, 0)
	assert.True(t, errors.Is(err, ErrBadParam), "got %v", err)

	_, err = TRIMA([]float64{1, 2, 3}, 4)
	assert.True(t, errors.Is(err, ErrInsufficientData), "got %v", err)

	_, err = TRIMA([]float64{1, 2, math.NaN(), 4}, 3)
	assert.True(t, errors.Is(err, ErrDataNonFinite), "got %v", err)

	r, err := TRIMA([]float64{1, 2, 3, 4}, 4)
	require.NoError(t, err)
	r.State.Period = 5
	assert.True(t, errors.Is(r.State.Update(1), ErrBadParam))
}
