package indicator

// An EMA chain feeds every level with the output of the level below it:
// level 0 smooths the input, level k smooths level k-1. DEMA, TEMA and T3 are
// linear combinations of chain levels.

// emaChainLookback is the index of the first sample where all depth levels exist.
func emaChainLookback(period, depth int) int {
	return depth * (period - 1)
}

// seedEMAChain warms up depth levels over data[:depth*(period-1)+1].
// Level 0 starts as the mean of the first period samples. Each further level
// starts as the mean of the first period values of the level below it, which
// takes period-1 more steps of every lower level.
func seedEMAChain(name string, data []float64, period, depth int, alpha float64) ([]float64, error) {
	levels := make([]float64, depth)

	first, err := seedMean(name, data, 0, period)
	if err != nil {
		return nil, err
	}
	if err := checkOutput(name, period-1, first); err != nil {
		return nil, err
	}
	levels[0] = first

	invPeriod := 1 / float64(period)
	i := period
	for k := 1; k < depth; k++ {
		sum := levels[k-1]
		for step := 1; step < period; step++ {
			if err := checkSample(name, i, data[i]); err != nil {
				return nil, err
			}

			stepEMAChain(levels[:k], data[i], alpha)
			sum += levels[k-1]
			if err := checkChain(name, i, levels[:k]); err != nil {
				return nil, err
			}
			i++
		}

		levels[k] = sum * invPeriod
		if err := checkOutput(name, i-1, levels[k]); err != nil {
			return nil, err
		}
	}

	return levels, nil
}

// stepEMAChain advances every level in order, in place.
func stepEMAChain(levels []float64, sample, alpha float64) {
	input := sample
	for k := range levels {
		levels[k] = emaNext(input, levels[k], alpha)
		input = levels[k]
	}
}

func checkChain(name string, index int, levels []float64) error {
	for _, v := range levels {
		if err := checkOutput(name, index, v); err != nil {
			return err
		}
	}
	return nil
}

func checkStoredChain(name string, levels []float64) error {
	for k, v := range levels {
		if !isFinite(v) {
			return nonFinite("%s state ema level %d is %v", name, k+1, v)
		}
	}
	return nil
}

// runEMAChain computes a chain-based indicator over data. combine maps the
// chain levels to the output value. It returns the output and the final levels.
func runEMAChain(name string, data []float64, period, depth int, alpha float64, combine func(levels []float64) float64) ([]float64, []float64, error) {
	lookback := emaChainLookback(period, depth)
	if err := checkLength(name, len(data), lookback+1); err != nil {
		return nil, nil, err
	}

	levels, err := seedEMAChain(name, data, period, depth, alpha)
	if err != nil {
		return nil, nil, err
	}

	out := newOutput(len(data), lookback)
	value := combine(levels)
	if err := checkOutput(name, lookback, value); err != nil {
		return nil, nil, err
	}
	out[lookback] = value

	for i := lookback + 1; i < len(data); i++ {
		if err := checkSample(name, i, data[i]); err != nil {
			return nil, nil, err
		}

		stepEMAChain(levels, data[i], alpha)
		if err := checkChain(name, i, levels); err != nil {
			return nil, nil, err
		}

		value = combine(levels)
		if err := checkOutput(name, i, value); err != nil {
			return nil, nil, err
		}
		out[i] = value
	}

	return out, levels, nil
}

// updateEMAChain advances a copy of levels by one sample and returns the new
// levels and output. The caller commits them only when err is nil.
func updateEMAChain(name string, levels []float64, sample, alpha float64, combine func(levels []float64) float64) ([]float64, float64, error) {
	if err := checkUpdateSample(name, sample); err != nil {
		return nil, 0, err
	}
	if err := checkStoredChain(name, levels); err != nil {
		return nil, 0, err
	}
	if err := checkAlpha(name, alpha); err != nil {
		return nil, 0, err
	}

	next := make([]float64, len(levels))
	copy(next, levels)
	stepEMAChain(next, sample, alpha)
	if err := checkChain(name, UpdateIndex, next); err != nil {
		return nil, 0, err
	}

	value := combine(next)
	if err := checkOutput(name, UpdateIndex, value); err != nil {
		return nil, 0, err
	}
	return next, value, nil
}
