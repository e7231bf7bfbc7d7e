package stream

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/techalysis/techalysis/pkg/indicator"
)

var log = logrus.WithField("component", "stream")

// DefaultRejectLimit is how many rejected samples per minute a stream warns about.
const DefaultRejectLimit = 5

// SeedFunc runs the batch computation over the warm-up samples and returns
// the resulting state.
type SeedFunc[T any] func(samples []T) (indicator.Updater[T], error)

// StateStream drives an indicator state sample by sample. It buffers the
// first lookback+1 samples, seeds the state from the batch computation and
// then advances it with Update. Samples before warm-up produce NaN.
//
//go:generate callbackgen -type StateStream
type StateStream[T any] struct {
	*Float64Series

	name     string
	lookback int
	seed     SeedFunc[T]
	check    func(sample T) error

	warmUp []T
	state  indicator.Updater[T]

	rejectLogger *RejectLogger

	errorCallbacks []func(err error)
}

func NewStateStream[T any](name string, lookback int, seed SeedFunc[T], check func(sample T) error) *StateStream[T] {
	return &StateStream[T]{
		Float64Series: NewFloat64Series(),
		name:          name,
		lookback:      lookback,
		seed:          seed,
		check:         check,
		warmUp:        make([]T, 0, lookback+1),
		rejectLogger:  NewRejectLogger(DefaultRejectLimit, time.Minute, log.WithField("indicator", name)),
	}
}

func (s *StateStream[T]) Name() string { return s.name }

func (s *StateStream[T]) Lookback() int { return s.lookback }

// State returns the live indicator state, nil before warm-up completes.
func (s *StateStream[T]) State() indicator.Updater[T] { return s.state }

func (s *StateStream[T]) Ready() bool { return s.state != nil }

// Calculate feeds one sample and returns the indicator value for it.
func (s *StateStream[T]) Calculate(sample T) float64 {
	if s.state != nil {
		if err := s.state.Update(sample); err != nil {
			s.fail(err)
			return math.NaN()
		}
		return s.state.Value()
	}

	// the batch rejects the whole warm-up buffer on one bad sample, reject it here instead
	if s.check != nil {
		if err := s.check(sample); err != nil {
			s.fail(err)
			return math.NaN()
		}
	}

	s.warmUp = append(s.warmUp, sample)
	if len(s.warmUp) <= s.lookback {
		return math.NaN()
	}

	state, err := s.seed(s.warmUp)
	if err != nil {
		s.warmUp = s.warmUp[:0]
		s.fail(err)
		return math.NaN()
	}

	s.state = state
	s.warmUp = nil
	return state.Value()
}

func (s *StateStream[T]) fail(err error) {
	s.rejectLogger.Reject(err, "%s: sample rejected", s.name)
	s.EmitError(err)
}

// FloatStream is a single input stream that can be bound to a Float64Source.
type FloatStream struct {
	*StateStream[float64]
}

func newFloatStream(source Float64Source, name string, lookback int, seed SeedFunc[float64]) *FloatStream {
	s := &FloatStream{
		StateStream: NewStateStream(name, lookback, seed, checkFinite(name)),
	}
	if source != nil {
		s.Bind(source, s)
	}
	return s
}

func checkFinite(name string) func(v float64) error {
	return func(v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &indicator.Error{
				Kind:    indicator.DataNonFinite,
				Message: fmt.Sprintf("%s sample is %v", name, v),
			}
		}
		return nil
	}
}
