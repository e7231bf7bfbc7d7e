package indicator

import "math"

// Window bookkeeping shared by the indicators. Every helper is pure: previous
// statistics in, next statistics out.

// smaNext advances a rolling mean by replacing old with new.
func smaNext(newValue, oldValue, prev, invPeriod float64) float64 {
	return prev + (newValue-oldValue)*invPeriod
}

func emaNext(newValue, prev, alpha float64) float64 {
	return newValue*alpha + prev*(1-alpha)
}

// wmaWeights returns 1 / (period*(period+1)/2).
func wmaInvWeightSum(period int) float64 {
	p := float64(period)
	return 2 / (p * (p + 1))
}

// wmaNext advances the linearly weighted sum. periodSub is the plain sum of the
// window and periodSum the weighted sum without the newest term. It returns the
// output and the two sums for the following step.
func wmaNext(newValue, oldValue float64, period int, periodSub, periodSum, invWeightSum float64) (wma, nextSub, nextSum float64) {
	nextSub = periodSub - oldValue + newValue
	weighted := periodSum + newValue*float64(period)
	wma = weighted * invWeightSum
	nextSum = weighted - nextSub
	return wma, nextSub, nextSum
}

// trimaMiddle is the window position that ends the trailing half.
func trimaMiddle(period int) int {
	if period%2 == 0 {
		return period/2 - 1
	}
	return period / 2
}

func trimaInvWeightSum(period int) float64 {
	m := float64(period / 2)
	if period%2 == 0 {
		return 1 / (m * (m + 1))
	}
	return 1 / ((m + 1) * (m + 1))
}

// trimaSums computes the triangular sum of a full window together with its
// trailing (ascending weights) and heading (descending weights) partial sums.
func trimaSums(window []float64) (sum, trailing, heading float64) {
	period := len(window)
	middle := trimaMiddle(period)
	for i := 0; i <= middle; i++ {
		trailing += window[i]
		sum += window[i] * float64(i+1)
	}
	for i := middle + 1; i < period; i++ {
		heading += window[i]
		sum += window[i] * float64(period-i)
	}
	return sum, trailing, heading
}

// trimaNext slides the triangular sum by one: oldValue leaves the window,
// middleValue crosses from the heading half to the trailing half and newValue
// enters.
func trimaNext(newValue, middleValue, oldValue float64, oddPeriod bool, sum, trailing, heading float64) (nextSum, nextTrailing, nextHeading float64) {
	nextTrailing = trailing - oldValue + middleValue
	nextHeading = heading - middleValue + newValue
	nextSum = sum - trailing + nextHeading
	if oddPeriod {
		nextSum += middleValue
	}
	return nextSum, nextTrailing, nextHeading
}

// wilderNext applies one step of Wilder smoothing to the average gain and loss.
func wilderNext(delta, avgGain, avgLoss, k float64) (float64, float64) {
	decay := 1 - k
	switch {
	case delta > 0:
		return avgGain*decay + delta*k, avgLoss * decay
	case delta < 0:
		return avgGain * decay, avgLoss*decay - delta*k
	}
	return avgGain * decay, avgLoss * decay
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

// bands returns the upper and lower band around middle using the variance
// mean(x²) - mean(x)².
func bands(middle, mean, meanSquare, up, down float64) (upper, lower float64) {
	std := math.Sqrt(math.Abs(meanSquare - mean*mean))
	return middle + up*std, middle - down*std
}
