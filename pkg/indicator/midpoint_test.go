package indicator

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

func TestMidPoint(t *testing.T) {
	nan := math.NaN()
	data := []float64{1, 2, 3, 4, 5, 3, 4, 2}

	r, err := MidPoint(data, 3)
	require.NoError(t, err)
	assertSeriesInDelta(t, floats.Slice{nan, nan, 2, 3, 4, 4, 4, 3}, r.Values, Delta)

	require.NoError(t, r.State.Update(10))
	assert.Equal(t, 6.0, r.State.MidPoint)
	assert.Equal(t, []float64{4, 2, 10}, r.State.Window.Values())
}

func TestMidPoint_MinMaxOracle(t *testing.T) {
	closes, _, _ := loadPrices(t)
	r, err := MidPoint(closes, 14)
	require.NoError(t, err)

	outMin, outMax := floats.MinMax(closes, 14)
	for i := 13; i < len(closes); i++ {
		assert.InDelta(t, (outMin[i]+outMax[i])/2, r.Values[i], Delta, "index %d", i)
	}
}

func TestMidPrice(t *testing.T) {
	nan := math.NaN()
	high := []float64{3, 4, 5, 6, 5}
	low := []float64{1, 2, 2, 4, 3}

	r, err := MidPrice(high, low, 2)
	require.NoError(t, err)
	assertSeriesInDelta(t, floats.Slice{nan, 2.5, 3.5, 4, 4.5}, r.Values, Delta)

	require.NoError(t, r.State.Update(MidPriceSample{High: 8, Low: 0}))
	assert.Equal(t, 4.0, r.State.MidPrice)

	err = r.State.Update(MidPriceSample{High: 1, Low: math.NaN()})
	assert.True(t, errors.Is(err, ErrDataNonFinite), "got %v", err)
	assert.Equal(t, 4.0, r.State.MidPrice)
}

func TestMidPrice_Errors(t *testing.T) {
	_, err := MidPrice([]float64{1, 2, 3}, []float64{1, 2}, 2)
	assert.True(t, errors.Is(err, ErrBadParam), "got %v", err)

	_, err = MidPrice([]float64{1, 2, 3}, []float64{1, 2, 3}, 1)
	assert.True(t, errors.Is(err, ErrBadParam), "got %v", err)

	_, err = MidPrice([]float64{1}, []float64{1}, 2)
	assert.True(t, errors.Is(err, ErrInsufficientData), "got %v", err)

	_, err = MidPrice([]float64{1, 2}, []float64{math.Inf(-1), 1}, 2)
	assert.True(t, errors.Is(err, ErrDataNonFinite), "got %v", err)
}
