package indicators

import "math"

// CCI computes the Commodity Channel Index over typical prices
// (high+low+close)/3 with the standard 0.015 scaling constant. The first
// period-1 positions are NaN.
func CCI(highs, lows, closes []float64, period int) ([]float64, error) {
	if err := checkPeriod("cci", len(closes), period); err != nil {
		return nil, err
	}

	tp := make([]float64, len(closes))
	for i := range closes {
		tp[i] = (highs[i] + lows[i] + closes[i]) / 3
	}

	out := nanSlice(len(closes))
	for i := period - 1; i < len(tp); i++ {
		window := tp[i-period+1 : i+1]
		var mean float64
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)

		var mad float64
		for _, v := range window {
			mad += math.Abs(v - mean)
		}
		mad /= float64(period)

		if mad == 0 {
			out[i] = 0
			continue
		}
		out[i] = (tp[i] - mean) / (0.015 * mad)
	}
	return out, nil
}
