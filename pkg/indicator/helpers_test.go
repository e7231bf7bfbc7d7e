package indicator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techalysis/techalysis/pkg/datasource/csvsource"
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

const Delta = 1e-9

func loadPrices(t testing.TB) (closes, highs, lows floats.Slice) {
	cols, err := csvsource.ReadColumnsFile("testdata/prices.csv")
	require.NoError(t, err)

	closes, err = cols.Column("close")
	require.NoError(t, err)
	highs, err = cols.Column("high")
	require.NoError(t, err)
	lows, err = cols.Column("low")
	require.NoError(t, err)
	return closes, highs, lows
}

// assertSeriesInDelta compares two series, NaN positions must match and the
// other values must agree within delta relative to their magnitude.
func assertSeriesInDelta(t *testing.T, want, got []float64, delta float64, msgAndArgs ...interface{}) bool {
	t.Helper()
	if !assert.Equal(t, len(want), len(got), msgAndArgs...) {
		return false
	}

	for i := range want {
		if math.IsNaN(want[i]) || math.IsNaN(got[i]) {
			if !assert.True(t, math.IsNaN(want[i]) && math.IsNaN(got[i]), "index %d: want %v, got %v", i, want[i], got[i]) {
				return false
			}
			continue
		}

		scale := math.Max(1, math.Abs(want[i]))
		if !assert.InDelta(t, want[i], got[i], delta*scale, "index %d", i) {
			return false
		}
	}
	return true
}

// adapter gives the property tests one shape for every indicator state.
type adapter struct {
	update  func(sample float64) error
	values  func() []float64
	marshal func() ([]byte, error)
	restore func(data []byte) (*adapter, error)
}

func newAdapter[S any, P interface {
	*S
	Update(float64) error
}](state *S, values func(*S) []float64) *adapter {
	a := &adapter{
		update:  func(v float64) error { return P(state).Update(v) },
		values:  func() []float64 { return values(state) },
		marshal: func() ([]byte, error) { return json.Marshal(state) },
	}
	a.restore = func(data []byte) (*adapter, error) {
		var s S
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return newAdapter[S, P](&s, values), nil
	}
	return a
}

// midPriceAdapter drives MidPrice with a synthetic low series: low = sample * lowRatio.
const lowRatio = 0.99

func newMidPriceAdapter(state *MidPriceState) *adapter {
	a := &adapter{
		update: func(v float64) error {
			return state.Update(MidPriceSample{High: v, Low: v * lowRatio})
		},
		values:  func() []float64 { return []float64{state.MidPrice} },
		marshal: func() ([]byte, error) { return json.Marshal(state) },
	}
	a.restore = func(data []byte) (*adapter, error) {
		var s MidPriceState
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return newMidPriceAdapter(&s), nil
	}
	return a
}

type indicatorCase struct {
	name     string
	lookback int
	batch    func(data []float64) ([]floats.Slice, *adapter, error)
}

func syntheticLows(data []float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v * lowRatio
	}
	return out
}

func indicatorCases() []indicatorCase {
	return []indicatorCase{
		{
			name: "SMA", lookback: 4,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := SMA(data, 5)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *SMAState) []float64 {
					return []float64{s.SMA}
				}), nil
			},
		},
		{
			name: "EMA", lookback: 9,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := EMA(data, 10, DefaultSmoothing)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *EMAState) []float64 {
					return []float64{s.EMA}
				}), nil
			},
		},
		{
			name: "RSI", lookback: 14,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := RSI(data, 14)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *RSIState) []float64 {
					return []float64{s.RSI}
				}), nil
			},
		},
		{
			name: "WMA", lookback: 6,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := WMA(data, 7)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *WMAState) []float64 {
					return []float64{s.WMA}
				}), nil
			},
		},
		{
			name: "TRIMA/odd", lookback: 6,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := TRIMA(data, 7)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *TRIMAState) []float64 {
					return []float64{s.TRIMA}
				}), nil
			},
		},
		{
			name: "TRIMA/even", lookback: 7,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := TRIMA(data, 8)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *TRIMAState) []float64 {
					return []float64{s.TRIMA}
				}), nil
			},
		},
		{
			name: "MidPoint", lookback: 5,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := MidPoint(data, 6)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *MidPointState) []float64 {
					return []float64{s.MidPoint}
				}), nil
			},
		},
		{
			name: "MidPrice", lookback: 5,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := MidPrice(data, syntheticLows(data), 6)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newMidPriceAdapter(&r.State), nil
			},
		},
		{
			name: "MACD", lookback: 33,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := MACD(data, 12, 26, 9)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.MACD, r.Signal, r.Histogram}, newAdapter(&r.State, func(s *MACDState) []float64 {
					return []float64{s.MACD, s.Signal, s.Histogram}
				}), nil
			},
		},
		{
			name: "BBands/SMA", lookback: 19,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := BBands(data, 20, DeviationMultipliers{Up: 2, Down: 2}, SimpleAverage())
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Upper, r.Middle, r.Lower}, newAdapter(&r.State, func(s *BBandsState) []float64 {
					return []float64{s.Upper, s.Middle, s.Lower}
				}), nil
			},
		},
		{
			name: "BBands/EMA", lookback: 9,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := BBands(data, 10, DeviationMultipliers{Up: 1.5, Down: 2.5}, ExponentialAverage(0))
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Upper, r.Middle, r.Lower}, newAdapter(&r.State, func(s *BBandsState) []float64 {
					return []float64{s.Upper, s.Middle, s.Lower}
				}), nil
			},
		},
		{
			name: "DEMA", lookback: 18,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := DEMA(data, 10, DefaultSmoothing)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *DEMAState) []float64 {
					return []float64{s.DEMA}
				}), nil
			},
		},
		{
			name: "TEMA", lookback: 27,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := TEMA(data, 10, DefaultSmoothing)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *TEMAState) []float64 {
					return []float64{s.TEMA}
				}), nil
			},
		},
		{
			name: "T3", lookback: 24,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := T3(data, 5, DefaultVolumeFactor, DefaultSmoothing)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *T3State) []float64 {
					return []float64{s.T3}
				}), nil
			},
		},
		{
			name: "KAMA", lookback: 10,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := KAMA(data, 10)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *KAMAState) []float64 {
					return []float64{s.KAMA}
				}), nil
			},
		},
		{
			name: "ROC", lookback: 10,
			batch: func(data []float64) ([]floats.Slice, *adapter, error) {
				r, err := ROC(data, 10)
				if err != nil {
					return nil, nil, err
				}
				return []floats.Slice{r.Values}, newAdapter(&r.State, func(s *ROCState) []float64 {
					return []float64{s.ROC}
				}), nil
			},
		},
	}
}

// lastValues picks index i of every output series.
func lastValues(outputs []floats.Slice, i int) []float64 {
	values := make([]float64, len(outputs))
	for j, out := range outputs {
		values[j] = out[i]
	}
	return values
}
