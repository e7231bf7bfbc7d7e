package indicator

import (
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

type RSIResult struct {
	Values floats.Slice
	State  RSIState
}

// RSIState keeps the previous sample because the recurrence works on deltas.
type RSIState struct {
	RSI       float64 `json:"rsi"`
	PrevValue float64 `json:"prev_value"`
	AvgGain   float64 `json:"avg_gain"`
	AvgLoss   float64 `json:"avg_loss"`
	Period    int     `json:"period"`
}

func RSILookback(period int) (int, error) {
	if err := checkPeriod("RSI", period); err != nil {
		return 0, err
	}
	return period, nil
}

// RSI computes the relative strength index with Wilder smoothing.
func RSI(data []float64, period int) (*RSIResult, error) {
	lookback, err := RSILookback(period)
	if err != nil {
		return nil, err
	}
	if err := checkLength("RSI", len(data), period+1); err != nil {
		return nil, err
	}
	if err := checkSample("RSI", 0, data[0]); err != nil {
		return nil, err
	}

	out := newOutput(len(data), lookback)

	gain, loss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		delta, err := rsiDelta(data, i)
		if err != nil {
			return nil, err
		}

		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}

	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	rsi, err := rsiCheckedValue(lookback, avgGain, avgLoss)
	if err != nil {
		return nil, err
	}
	out[lookback] = rsi

	k := 1 / float64(period)
	for i := period + 1; i < len(data); i++ {
		delta, err := rsiDelta(data, i)
		if err != nil {
			return nil, err
		}

		avgGain, avgLoss = wilderNext(delta, avgGain, avgLoss, k)
		if rsi, err = rsiCheckedValue(i, avgGain, avgLoss); err != nil {
			return nil, err
		}
		out[i] = rsi
	}

	return &RSIResult{
		Values: out,
		State: RSIState{
			RSI:       rsi,
			PrevValue: data[len(data)-1],
			AvgGain:   avgGain,
			AvgLoss:   avgLoss,
			Period:    period,
		},
	}, nil
}

func rsiDelta(data []float64, i int) (float64, error) {
	if err := checkSample("RSI", i, data[i]); err != nil {
		return 0, err
	}

	delta := data[i] - data[i-1]
	if err := checkOutput("RSI", i, delta); err != nil {
		return 0, err
	}
	return delta, nil
}

// rsiCheckedValue rejects averages that left the finite range even when the
// ratio itself would still be representable.
func rsiCheckedValue(index int, avgGain, avgLoss float64) (float64, error) {
	if err := checkOutput("RSI", index, avgGain); err != nil {
		return 0, err
	}
	if err := checkOutput("RSI", index, avgLoss); err != nil {
		return 0, err
	}

	rsi := rsiValue(avgGain, avgLoss)
	if err := checkOutput("RSI", index, rsi); err != nil {
		return 0, err
	}
	return rsi, nil
}

func (s *RSIState) Value() float64 { return s.RSI }

func (s *RSIState) Update(sample float64) error {
	if err := checkPeriod("RSI", s.Period); err != nil {
		return err
	}
	if err := checkUpdateSample("RSI", sample); err != nil {
		return err
	}
	if err := checkStored("RSI", "prev_value", s.PrevValue); err != nil {
		return err
	}
	if err := checkStored("RSI", "avg_gain", s.AvgGain); err != nil {
		return err
	}
	if err := checkStored("RSI", "avg_loss", s.AvgLoss); err != nil {
		return err
	}

	delta := sample - s.PrevValue
	if err := checkOutput("RSI", UpdateIndex, delta); err != nil {
		return err
	}

	avgGain, avgLoss := wilderNext(delta, s.AvgGain, s.AvgLoss, 1/float64(s.Period))
	rsi, err := rsiCheckedValue(UpdateIndex, avgGain, avgLoss)
	if err != nil {
		return err
	}

	s.RSI = rsi
	s.PrevValue = sample
	s.AvgGain = avgGain
	s.AvgLoss = avgLoss
	return nil
}

func (s RSIState) Clone() RSIState { return s }
