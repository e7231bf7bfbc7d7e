package floats

import "math"

func Average(arr []float64) float64 {
	s := 0.0
	for _, a := range arr {
		s += a
	}
	return s / float64(len(arr))
}

// Rolling applies fn to every complete window of the given size, the output
// is NaN-filled for the first size-1 positions.
func Rolling(inReal []float64, size int, fn func(window []float64) float64) Slice {
	out := NaNs(len(inReal))
	if size <= 0 {
		return out
	}

	for i := size - 1; i < len(inReal); i++ {
		out[i] = fn(inReal[i-size+1 : i+1])
	}
	return out
}

// MinMax - Lowest and highest values over a specified period, NaN for the first
// inTimePeriod-1 positions.
// ported from https://github.com/markcheno/go-talib/blob/master/talib.go
func MinMax(inReal []float64, inTimePeriod int) (outMin []float64, outMax []float64) {
	outMin = NaNs(len(inReal))
	outMax = NaNs(len(inReal))
	if inTimePeriod <= 0 {
		return outMin, outMax
	}

	nbInitialElementNeeded := inTimePeriod - 1
	today := nbInitialElementNeeded
	trailingIdx := 0
	highestIdx, lowestIdx := -1, -1
	highest, lowest := 0.0, 0.0
	for today < len(inReal) {
		tmp := inReal[today]
		if highestIdx < trailingIdx {
			highestIdx = trailingIdx
			highest = inReal[highestIdx]
			for i := highestIdx + 1; i <= today; i++ {
				if inReal[i] > highest {
					highestIdx = i
					highest = inReal[i]
				}
			}
		} else if tmp >= highest {
			highestIdx = today
			highest = tmp
		}

		if lowestIdx < trailingIdx {
			lowestIdx = trailingIdx
			lowest = inReal[lowestIdx]
			for i := lowestIdx + 1; i <= today; i++ {
				if inReal[i] < lowest {
					lowestIdx = i
					lowest = inReal[i]
				}
			}
		} else if tmp <= lowest {
			lowestIdx = today
			lowest = tmp
		}

		outMax[today] = highest
		outMin[today] = lowest
		trailingIdx++
		today++
	}
	return outMin, outMax
}

// AllFinite returns the index of the first NaN or Inf value, or -1 when every value is finite.
func AllFinite(arr []float64) int {
	for i, v := range arr {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}
	return -1
}
