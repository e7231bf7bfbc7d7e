package floats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverage(t *testing.T) {
	assert.Equal(t, 3.0, Average([]float64{1, 2, 3, 4, 5}))
	assert.True(t, math.IsNaN(Average(nil)))
}

func TestRolling(t *testing.T) {
	out := Rolling([]float64{1, 2, 3, 4, 5}, 3, Average)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, Slice{2, 3, 4}, out[2:])
}

func TestMinMax(t *testing.T) {
	in := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	outMin, outMax := MinMax(in, 3)
	assert.Equal(t, 8, len(outMin))
	assert.True(t, math.IsNaN(outMin[0]))
	assert.True(t, math.IsNaN(outMax[1]))
	assert.Equal(t, []float64{1, 1, 1, 1, 2, 2}, outMin[2:])
	assert.Equal(t, []float64{4, 4, 5, 9, 9, 9}, outMax[2:])
}

func TestAllFinite(t *testing.T) {
	assert.Equal(t, -1, AllFinite([]float64{1, 2, 3}))
	assert.Equal(t, 1, AllFinite([]float64{1, math.NaN(), 3}))
	assert.Equal(t, 2, AllFinite([]float64{1, 2, math.Inf(-1)}))
}
