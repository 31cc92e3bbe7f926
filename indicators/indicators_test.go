package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2, out[2], 1e-9)
	assert.InDelta(t, 3, out[3], 1e-9)
	assert.InDelta(t, 4, out[4], 1e-9)
}

func TestSMAShortInput(t *testing.T) {
	out := SMA([]float64{1, 2}, 5)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRollingMaxMin(t *testing.T) {
	vals := []float64{3, 1, 4, 1, 5}
	max := RollingMax(vals, 3)
	min := RollingMin(vals, 3)
	assert.InDelta(t, 4, max[2], 1e-9)
	assert.InDelta(t, 4, max[3], 1e-9)
	assert.InDelta(t, 5, max[4], 1e-9)
	assert.InDelta(t, 1, min[2], 1e-9)
	assert.InDelta(t, 1, min[4], 1e-9)
	assert.True(t, math.IsNaN(max[1]))
}

func TestRSIAllGainsIsHundred(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, err := RSI(closes, 14)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(rsi[13]))
	assert.InDelta(t, 100, rsi[14], 1e-9)
	assert.InDelta(t, 100, rsi[29], 1e-9)
}

func TestRSIAllLossesIsZero(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	rsi, err := RSI(closes, 14)
	require.NoError(t, err)
	assert.InDelta(t, 0, rsi[29], 1e-9)
}

func TestRSIBounded(t *testing.T) {
	closes := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4, 45.4,
		45.9, 46.1, 45.9, 46.2, 46.3, 46.3, 46.0, 46.0, 46.4, 46.2, 45.6}
	rsi, err := RSI(closes, 14)
	require.NoError(t, err)
	for i := 14; i < len(rsi); i++ {
		assert.GreaterOrEqual(t, rsi[i], 0.0)
		assert.LessOrEqual(t, rsi[i], 100.0)
	}
}

func TestRSINotEnoughData(t *testing.T) {
	_, err := RSI([]float64{1, 2, 3}, 14)
	assert.Error(t, err)
}

func TestCrossed(t *testing.T) {
	// RSI path 25 -> 32 -> 35 over the oversold line at 30: fires once.
	assert.True(t, Crossed(25, 32, 30, true))
	assert.False(t, Crossed(32, 35, 30, true))
	// Downward cross of the overbought line.
	assert.True(t, Crossed(75, 68, 70, false))
	assert.False(t, Crossed(68, 65, 70, false))
	// Sitting exactly on the level counts as "not yet across".
	assert.True(t, Crossed(30, 31, 30, true))
	assert.False(t, Crossed(math.NaN(), 31, 30, true))
}

func TestCCICenteredSeries(t *testing.T) {
	// A constant series has zero deviation; CCI is defined as 0 there.
	highs := make([]float64, 25)
	lows := make([]float64, 25)
	closes := make([]float64, 25)
	for i := range closes {
		highs[i], lows[i], closes[i] = 10, 10, 10
	}
	cci, err := CCI(highs, lows, closes, 20)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(cci[18]))
	assert.InDelta(t, 0, cci[20], 1e-9)
}

func TestCCIExtremeOnSpike(t *testing.T) {
	highs := make([]float64, 25)
	lows := make([]float64, 25)
	closes := make([]float64, 25)
	for i := range closes {
		highs[i], lows[i], closes[i] = 101, 99, 100
	}
	// Sharp drop at the end drives CCI deeply negative.
	highs[24], lows[24], closes[24] = 95, 90, 90
	cci, err := CCI(highs, lows, closes, 20)
	require.NoError(t, err)
	assert.Less(t, cci[24], -100.0)
}

func TestOBV(t *testing.T) {
	closes := []float64{10, 11, 11, 10, 12}
	volumes := []float64{100, 200, 300, 400, 500}
	obv := OBV(closes, volumes)
	assert.Equal(t, []float64{0, 200, 200, -200, 300}, obv)
}

func TestBollinger(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	mid, upper, lower, err := Bollinger(closes, 3, 2)
	require.NoError(t, err)

	// Window {3,4,5}: mean 4, sample stdev 1.
	assert.InDelta(t, 4, mid[4], 1e-9)
	assert.InDelta(t, 6, upper[4], 1e-9)
	assert.InDelta(t, 2, lower[4], 1e-9)
	assert.True(t, math.IsNaN(mid[1]))
}

func TestATR(t *testing.T) {
	highs := []float64{12, 13, 14}
	lows := []float64{10, 11, 12}
	closes := []float64{11, 12, 13}
	atr, err := ATR(highs, lows, closes, 2)
	require.NoError(t, err)

	// TR: [2, 2, 2] (ranges dominate the close gaps here).
	assert.True(t, math.IsNaN(atr[0]))
	assert.InDelta(t, 2, atr[1], 1e-9)
	assert.InDelta(t, 2, atr[2], 1e-9)
}

func TestATRGapDominates(t *testing.T) {
	// Gap up: true range must use the previous close.
	highs := []float64{12, 20}
	lows := []float64{10, 19}
	closes := []float64{11, 20}
	atr, err := ATR(highs, lows, closes, 1)
	require.NoError(t, err)
	assert.InDelta(t, 9, atr[1], 1e-9) // |20 - 11|
}
