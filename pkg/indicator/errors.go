package indicator

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ErrorKind is the closed set of failures an indicator call can report.
type ErrorKind int

const (
	// BadParam means the parameters are structurally invalid: a period below the
	// minimum, a non-positive smoothing or multiplier, fast >= slow, or a state
	// whose window no longer matches its period.
	BadParam ErrorKind = iota + 1

	// InsufficientData means the input is shorter than the lookback allows.
	InsufficientData

	// DataNonFinite means a NaN or Inf was found in the input or in a stored state.
	DataNonFinite

	// Overflow means a computed value is not finite although every input was.
	Overflow

	// NotImplementedYet is returned for indicators that are defined but not built.
	NotImplementedYet
)

func (k ErrorKind) String() string {
	switch k {
	case BadParam:
		return "BadParam"
	case InsufficientData:
		return "InsufficientData"
	case DataNonFinite:
		return "DataNonFinite"
	case Overflow:
		return "Overflow"
	case NotImplementedYet:
		return "NotImplementedYet"
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// UpdateIndex is the Index carried by an Overflow raised from a State.Update call.
const UpdateIndex = -1

type Error struct {
	Kind    ErrorKind
	Message string

	// Index and Value are set for Overflow only.
	Index int
	Value float64
}

func (e *Error) Error() string {
	if e.Kind == Overflow {
		if e.Index == UpdateIndex {
			return fmt.Sprintf("%s: %s (value %v at update)", e.Kind, e.Message, e.Value)
		}
		return fmt.Sprintf("%s: %s (value %v at index %d)", e.Kind, e.Message, e.Value, e.Index)
	}

	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrBadParam) works
// through wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrBadParam          = &Error{Kind: BadParam}
	ErrInsufficientData  = &Error{Kind: InsufficientData}
	ErrDataNonFinite     = &Error{Kind: DataNonFinite}
	ErrOverflow          = &Error{Kind: Overflow}
	ErrNotImplementedYet = &Error{Kind: NotImplementedYet}
)

// KindOf returns the kind of an indicator error, or 0 when err is not one.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func badParam(format string, args ...interface{}) *Error {
	return &Error{Kind: BadParam, Message: fmt.Sprintf(format, args...)}
}

func insufficientData(name string, need, got int) *Error {
	return &Error{
		Kind:    InsufficientData,
		Message: fmt.Sprintf("%s requires at least %d samples, got %d", name, need, got),
	}
}

func nonFinite(format string, args ...interface{}) *Error {
	return &Error{Kind: DataNonFinite, Message: fmt.Sprintf(format, args...)}
}

func overflow(name string, index int, value float64) *Error {
	return &Error{
		Kind:    Overflow,
		Message: name + " produced a non-finite value",
		Index:   index,
		Value:   value,
	}
}

// NotImplemented reports an indicator that is registered but has no implementation.
func NotImplemented(name string) *Error {
	return &Error{Kind: NotImplementedYet, Message: name + " is not implemented yet"}
}
