package csvsource

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotEnoughColumns is returned when a CSV record is shorter than the header.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrMissingColumn is returned when a requested column is not in the header.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidValueFormat is returned when a CSV field is not a float.
	ErrInvalidValueFormat = errors.New("value must be in valid float format")
)

// CSVValueDecoder is an extension point for CSVColumnReader to support custom value formats.
type CSVValueDecoder func(field string) (float64, error)

// FloatValueDecoder parses a plain float. Empty fields and "nan" decode to NaN so
// that expected-output columns can carry the lookback prefix.
func FloatValueDecoder(field string) (float64, error) {
	field = strings.TrimSpace(field)
	switch strings.ToLower(field) {
	case "", "nan":
		return math.NaN(), nil
	}

	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidValueFormat, "field %q", field)
	}
	return v, nil
}
