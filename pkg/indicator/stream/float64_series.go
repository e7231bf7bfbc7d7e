package stream

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// MaxNumOfValues bounds how many values a series keeps in memory.
const MaxNumOfValues = 5_000

type Float64Source interface {
	Last(i int) float64
	Index(i int) float64
	Length() int
	OnUpdate(f func(v float64))
}

type Float64Subscription interface {
	Float64Source
	AddSubscriber(f func(v float64))
}

type Float64Calculator interface {
	Calculate(x float64) float64
	PushAndEmit(x float64)
}

//go:generate callbackgen -type Float64Series
type Float64Series struct {
	Slice floats.Slice

	updateCallbacks []func(v float64)
}

func NewFloat64Series(v ...float64) *Float64Series {
	s := &Float64Series{}
	s.Slice = v
	return s
}

func (f *Float64Series) Last(i int) float64 {
	return f.Slice.Last(i)
}

func (f *Float64Series) Index(i int) float64 {
	return f.Last(i)
}

func (f *Float64Series) Length() int {
	return len(f.Slice)
}

func (f *Float64Series) Push(x float64) {
	f.Slice.Push(x)
	if len(f.Slice) > 2*MaxNumOfValues {
		f.Slice = f.Slice.Truncate(MaxNumOfValues)
	}
}

func (f *Float64Series) PushAndEmit(x float64) {
	f.Push(x)
	f.EmitUpdate(x)
}

// AddSubscriber is an alias of OnUpdate so a series can feed other series.
func (f *Float64Series) AddSubscriber(c func(v float64)) {
	f.OnUpdate(c)
}

// Bind subscribes target to source: every source update is calculated and
// pushed into target.
func (f *Float64Series) Bind(source Float64Source, target Float64Calculator) {
	c := func(x float64) {
		y := target.Calculate(x)
		target.PushAndEmit(y)
	}

	if sub, ok := source.(Float64Subscription); ok {
		sub.AddSubscriber(c)
	} else {
		source.OnUpdate(c)
	}
}
