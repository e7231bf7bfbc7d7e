package chart

import (
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type AnnotationProvider interface {
	GetAnnotations(values floats.Slice) []chart.Value2
}

// LastValue labels the newest finite value.
type LastValue struct {
	Precision int
}

func (a LastValue) GetAnnotations(values floats.Slice) []chart.Value2 {
	for i := len(values) - 1; i >= 0; i-- {
		if v := values[i]; !math.IsNaN(v) {
			return []chart.Value2{{
				XValue: float64(i),
				YValue: v,
				Label:  strconv.FormatFloat(v, 'f', a.Precision, 64),
			}}
		}
	}
	return nil
}

// FirstValid marks where the series leaves its lookback.
type FirstValid struct{}

func (FirstValid) GetAnnotations(values floats.Slice) []chart.Value2 {
	i := values.FirstValid()
	if i < 0 {
		return nil
	}
	return []chart.Value2{{
		XValue: float64(i),
		YValue: values[i],
		Label:  "lookback " + strconv.Itoa(i),
	}}
}
