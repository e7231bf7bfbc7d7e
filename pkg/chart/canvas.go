package chart

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type Canvas struct {
	chart.Chart
}

func NewCanvas(title string) *Canvas {
	out := &Canvas{
		Chart: chart.Chart{
			Title: title,
			XAxis: chart.XAxis{
				ValueFormatter: chart.IntValueFormatter,
			},
			YAxis: chart.YAxis{
				ValueFormatter: func(v interface{}) string {
					if vf, isFloat := v.(float64); isFloat {
						return fmt.Sprintf("%.4f", vf)
					}
					return ""
				},
			},
		},
	}
	out.Chart.Elements = []chart.Renderable{
		chart.LegendLeft(&out.Chart),
	}
	return out
}

// PlotSeries adds values as a line indexed by sample position. NaN values,
// the lookback included, are left out.
func (canvas *Canvas) PlotSeries(tag string, values floats.Slice) {
	var x, y []float64
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		x = append(x, float64(i))
		y = append(y, v)
	}
	if len(y) == 0 {
		return
	}

	canvas.Series = append(canvas.Series, chart.ContinuousSeries{
		Name:    tag,
		XValues: x,
		YValues: y,
	})
}

// Annotate adds the labels produced by provider for values.
func (canvas *Canvas) Annotate(tag string, values floats.Slice, provider AnnotationProvider) {
	annotations := provider.GetAnnotations(values)
	if len(annotations) == 0 {
		return
	}

	canvas.Series = append(canvas.Series, chart.AnnotationSeries{
		Name:        tag,
		Annotations: annotations,
	})
}

func (canvas *Canvas) Render(w io.Writer) error {
	return canvas.Chart.Render(chart.PNG, w)
}

func (canvas *Canvas) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := canvas.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("cannot render chart %s: %w", canvas.Title, err)
	}
	return f.Close()
}
