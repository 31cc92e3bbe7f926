package indicators

// Bollinger computes Bollinger Bands: an SMA midline with upper and lower
// bands k sample standard deviations away. All three slices are
// NaN-padded for the first period-1 positions.
func Bollinger(closes []float64, period int, k float64) (mid, upper, lower []float64, err error) {
	if err := checkPeriod("bollinger", len(closes), period); err != nil {
		return nil, nil, nil, err
	}

	mid = SMA(closes, period)
	std := sampleStdev(closes, period)
	upper = nanSlice(len(closes))
	lower = nanSlice(len(closes))
	for i := period - 1; i < len(closes); i++ {
		upper[i] = mid[i] + k*std[i]
		lower[i] = mid[i] - k*std[i]
	}
	return mid, upper, lower, nil
}
