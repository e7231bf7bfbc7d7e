package binding

import (
	"github.com/pkg/errors"

	"github.com/techalysis/techalysis/pkg/indicator"
)

// Description is the host facing form of an error.
type Description struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Index   *int     `json:"index,omitempty"`
	Value   *float64 `json:"value,omitempty"`
}

// Describe maps any error to its kind discriminant. Errors that do not come
// from the indicator core are reported with the Internal kind.
func Describe(err error) Description {
	if err == nil {
		return Description{}
	}

	var e *indicator.Error
	if !errors.As(err, &e) {
		return Description{Kind: "Internal", Message: err.Error()}
	}

	d := Description{Kind: e.Kind.String(), Message: e.Message}
	if e.Kind == indicator.Overflow {
		index, value := e.Index, e.Value
		d.Index, d.Value = &index, &value
	}
	return d
}
