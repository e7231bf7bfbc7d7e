package style

import (
	"math"
	"strconv"

	"github.com/fatih/color"
)

var (
	positive = color.New(color.FgGreen).SprintFunc()
	negative = color.New(color.FgRed).SprintFunc()
	missing  = color.New(color.FgHiBlack).SprintFunc()
)

// FormatValue formats v with precision digits, NaN prints as "NaN".
func FormatValue(v float64, precision int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// SignString prefixes positive values with "+".
func SignString(v float64, precision int) string {
	if v > 0 {
		return "+" + FormatValue(v, precision)
	}
	return FormatValue(v, precision)
}

// ColorValue formats v and colors it by sign. Colors are dropped when
// color.NoColor is set, e.g. when the output is not a terminal.
func ColorValue(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return missing("NaN")
	case v > 0:
		return positive(SignString(v, precision))
	case v < 0:
		return negative(SignString(v, precision))
	}
	return SignString(v, precision)
}
