package chart

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

func TestCanvas_PlotSeries(t *testing.T) {
	canvas := NewCanvas("sma")
	canvas.PlotSeries("sma", floats.New(math.NaN(), math.NaN(), 1, 2, 3))
	canvas.PlotSeries("empty", floats.New(math.NaN()))

	require.Len(t, canvas.Series, 1)
	series, ok := canvas.Series[0].(chart.ContinuousSeries)
	require.True(t, ok)
	assert.Equal(t, []float64{2, 3, 4}, series.XValues)
	assert.Equal(t, []float64{1, 2, 3}, series.YValues)
}

func TestAnnotations(t *testing.T) {
	values := floats.New(math.NaN(), 1.25, 2.5, math.NaN())

	last := LastValue{Precision: 1}.GetAnnotations(values)
	require.Len(t, last, 1)
	assert.Equal(t, chart.Value2{XValue: 2, YValue: 2.5, Label: "2.5"}, last[0])

	first := FirstValid{}.GetAnnotations(values)
	require.Len(t, first, 1)
	assert.Equal(t, "lookback 1", first[0].Label)

	assert.Nil(t, FirstValid{}.GetAnnotations(floats.New(math.NaN())))
}

func TestCanvas_Render(t *testing.T) {
	canvas := NewCanvas("close")
	canvas.PlotSeries("close", floats.New(1, 3, 2, 5, 4))
	canvas.Annotate("last", floats.New(1, 3, 2, 5, 4), LastValue{Precision: 2})

	var buf bytes.Buffer
	require.NoError(t, canvas.Render(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	require.NoError(t, canvas.SaveFile(filepath.Join(t.TempDir(), "close.png")))
}
