package indicators

import "math"

// ATR computes the Average True Range as a simple moving average of true
// ranges. The very first bar has no previous close, so its true range is
// just high-low. The first period-1 positions are NaN.
func ATR(highs, lows, closes []float64, period int) ([]float64, error) {
	if err := checkPeriod("atr", len(closes), period); err != nil {
		return nil, err
	}

	tr := make([]float64, len(closes))
	tr[0] = highs[0] - lows[0]
	for i := 1; i < len(closes); i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return SMA(tr, period), nil
}
