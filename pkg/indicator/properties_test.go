package indicator

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

func TestLookbackFill(t *testing.T) {
	closes, _, _ := loadPrices(t)
	for _, tc := range indicatorCases() {
		t.Run(tc.name, func(t *testing.T) {
			outputs, _, err := tc.batch(closes)
			require.NoError(t, err)

			for _, out := range outputs {
				require.Equal(t, len(closes), len(out))
				for i := 0; i < tc.lookback; i++ {
					assert.True(t, math.IsNaN(out[i]), "index %d should be NaN, got %v", i, out[i])
				}
				for i := tc.lookback; i < len(out); i++ {
					assert.False(t, math.IsNaN(out[i]) || math.IsInf(out[i], 0), "index %d should be finite, got %v", i, out[i])
				}
			}
		})
	}
}

func TestInsufficientDataAtLookback(t *testing.T) {
	closes, _, _ := loadPrices(t)
	for _, tc := range indicatorCases() {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.batch(closes[:tc.lookback])
			assert.True(t, errors.Is(err, ErrInsufficientData), "got %v", err)

			_, _, err = tc.batch(closes[:tc.lookback+1])
			assert.NoError(t, err)
		})
	}
}

func TestNoLookahead(t *testing.T) {
	closes, _, _ := loadPrices(t)
	for _, tc := range indicatorCases() {
		t.Run(tc.name, func(t *testing.T) {
			full, _, err := tc.batch(closes)
			require.NoError(t, err)

			for k := tc.lookback + 1; k <= len(closes); k++ {
				prefix, _, err := tc.batch(closes[:k])
				require.NoError(t, err)
				for j := range full {
					if !floats.EqualNaN(full[j][:k], prefix[j]) {
						assertSeriesInDelta(t, full[j][:k], prefix[j], Delta, "prefix %d output %d", k, j)
					}
				}
			}
		})
	}
}

func TestStreamingConsistency(t *testing.T) {
	closes, _, _ := loadPrices(t)
	for _, tc := range indicatorCases() {
		t.Run(tc.name, func(t *testing.T) {
			full, _, err := tc.batch(closes)
			require.NoError(t, err)

			// one update from every prefix
			for k := tc.lookback + 1; k < len(closes); k++ {
				_, state, err := tc.batch(closes[:k])
				require.NoError(t, err)
				require.NoError(t, state.update(closes[k]))
				assertSeriesInDelta(t, lastValues(full, k), state.values(), Delta, "update at %d", k)
			}

			// a single state driven through the rest of the series
			_, state, err := tc.batch(closes[:tc.lookback+1])
			require.NoError(t, err)
			for k := tc.lookback + 1; k < len(closes); k++ {
				require.NoError(t, state.update(closes[k]))
				if !assertSeriesInDelta(t, lastValues(full, k), state.values(), Delta, "stream at %d", k) {
					return
				}
			}
		})
	}
}

func TestStateSnapshotRoundTrip(t *testing.T) {
	closes, _, _ := loadPrices(t)
	split := len(closes) / 2
	for _, tc := range indicatorCases() {
		t.Run(tc.name, func(t *testing.T) {
			_, state, err := tc.batch(closes[:split])
			require.NoError(t, err)

			data, err := state.marshal()
			require.NoError(t, err)

			restored, err := state.restore(data)
			require.NoError(t, err)
			assert.Equal(t, state.values(), restored.values())

			for _, v := range closes[split:] {
				require.NoError(t, state.update(v))
				require.NoError(t, restored.update(v))
				assert.Equal(t, state.values(), restored.values())
			}
		})
	}
}

func TestUpdateRejectsNonFiniteAndKeepsState(t *testing.T) {
	closes, _, _ := loadPrices(t)
	for _, tc := range indicatorCases() {
		t.Run(tc.name, func(t *testing.T) {
			_, state, err := tc.batch(closes[:len(closes)-1])
			require.NoError(t, err)

			before, err := state.marshal()
			require.NoError(t, err)

			for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				err := state.update(bad)
				assert.True(t, errors.Is(err, ErrDataNonFinite), "got %v", err)
			}

			after, err := state.marshal()
			require.NoError(t, err)
			assert.JSONEq(t, string(before), string(after))

			full, _, err := tc.batch(closes)
			require.NoError(t, err)
			require.NoError(t, state.update(closes[len(closes)-1]))
			assertSeriesInDelta(t, lastValues(full, len(closes)-1), state.values(), Delta)
		})
	}
}

func TestBatchRejectsNonFinite(t *testing.T) {
	closes, _, _ := loadPrices(t)
	for _, tc := range indicatorCases() {
		t.Run(tc.name, func(t *testing.T) {
			for _, at := range []int{0, tc.lookback, len(closes) - 1} {
				data := closes.Clone()
				data[at] = math.NaN()
				_, _, err := tc.batch(data)
				assert.True(t, errors.Is(err, ErrDataNonFinite), "NaN at %d: got %v", at, err)
			}
		})
	}
}

// extreme magnitudes either stay finite or report Overflow, never anything else
func TestExtremeMagnitudes(t *testing.T) {
	inputs := map[string][]float64{
		"max":          repeatPattern([]float64{math.MaxFloat64, -math.MaxFloat64}, 80),
		"near max":     repeatPattern([]float64{math.MaxFloat64 / 2, math.MaxFloat64 / 3, -math.MaxFloat64 / 4}, 80),
		"smallest":     repeatPattern([]float64{math.SmallestNonzeroFloat64, -math.SmallestNonzeroFloat64, 0}, 80),
		"max constant": repeatPattern([]float64{math.MaxFloat64}, 80),
	}

	for name, data := range inputs {
		for _, tc := range indicatorCases() {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				assert.NotPanics(t, func() {
					outputs, state, err := tc.batch(data[:len(data)-1])
					if err != nil {
						assert.True(t, errors.Is(err, ErrOverflow), "got %v", err)
						return
					}

					for _, out := range outputs {
						for _, v := range out[tc.lookback:] {
							assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
						}
					}

					if err := state.update(data[len(data)-1]); err != nil {
						assert.True(t, errors.Is(err, ErrOverflow), "got %v", err)
					}
				})
			})
		}
	}
}

func repeatPattern(pattern []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}
	return out
}
