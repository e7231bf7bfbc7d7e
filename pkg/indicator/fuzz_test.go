package indicator

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/pkg/errors"
)

// decodeSeries turns fuzz bytes into float64 samples, 8 bytes each.
func decodeSeries(raw []byte) []float64 {
	out := make([]float64, 0, len(raw)/8)
	for len(raw) >= 8 {
		out = append(out, math.Float64frombits(binary.LittleEndian.Uint64(raw[:8])))
		raw = raw[8:]
	}
	return out
}

func encodeSeries(values ...float64) []byte {
	raw := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}
	return raw
}

func isKnownKind(err error) bool {
	switch KindOf(err) {
	case BadParam, InsufficientData, DataNonFinite, Overflow:
		return true
	}
	return false
}

func FuzzIndicators(f *testing.F) {
	f.Add(encodeSeries(1, 2, 3, 4, 5, 3, 4, 2, 1, 0, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34), 10.0)
	f.Add(encodeSeries(math.MaxFloat64, -math.MaxFloat64, math.MaxFloat64, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36), 1.0)
	f.Add(encodeSeries(math.SmallestNonzeroFloat64, 0, -math.SmallestNonzeroFloat64), math.NaN())

	f.Fuzz(func(t *testing.T, raw []byte, next float64) {
		data := decodeSeries(raw)
		for _, tc := range indicatorCases() {
			outputs, state, err := tc.batch(data)
			if err != nil {
				if !isKnownKind(err) {
					t.Fatalf("%s: unexpected error %v", tc.name, err)
				}
				continue
			}

			for _, out := range outputs {
				for i := tc.lookback; i < len(out); i++ {
					if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
						t.Fatalf("%s: non-finite output %v at %d", tc.name, out[i], i)
					}
				}
			}

			if err := state.update(next); err != nil {
				if !errors.Is(err, ErrOverflow) && !errors.Is(err, ErrDataNonFinite) {
					t.Fatalf("%s: unexpected update error %v", tc.name, err)
				}
			}
		}
	})
}
