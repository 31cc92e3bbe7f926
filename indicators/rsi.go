package indicators

import "math"

// RSI computes the Relative Strength Index with Wilder smoothing. The
// first period positions are NaN (the first delta consumes one bar).
func RSI(closes []float64, period int) ([]float64, error) {
	if err := checkPeriod("rsi", len(closes), period+1); err != nil {
		return nil, err
	}
	out := nanSlice(len(closes))

	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}

		switch {
		case i < period:
			avgGain += gain
			avgLoss += loss
		case i == period:
			avgGain = (avgGain + gain) / float64(period)
			avgLoss = (avgLoss + loss) / float64(period)
		default:
			avgGain = (avgGain*float64(period-1) + gain) / float64(period)
			avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		}

		if i >= period {
			if avgLoss == 0 {
				out[i] = 100
				if avgGain == 0 {
					out[i] = 50
				}
				continue
			}
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out, nil
}

// Crossed reports a strict threshold cross between the previous and
// current value: prev on or beyond the level, cur across it. Both values
// must be real numbers. This is what keeps oscillator strategies from
// re-firing on every bar that stays past the threshold.
func Crossed(prev, cur, level float64, upward bool) bool {
	if math.IsNaN(prev) || math.IsNaN(cur) {
		return false
	}
	if upward {
		return prev <= level && cur > level
	}
	return prev >= level && cur < level
}
