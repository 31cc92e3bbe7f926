// Package filters derives directional bias from higher-timeframe candles.
//
// A filter looks only at the last fully closed candle of its timeframe;
// callers are expected to strip the in-progress candle first (see
// market.ClosedOnly).
package filters

import "github.com/dryrunbot/dryrun/market"

// Direction is a higher-timeframe permission bias.
type Direction int

const (
	Bearish Direction = -1
	Neutral Direction = 0
	Bullish Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	}
	return "neutral"
}

// Bias returns the direction of the most recent candle in the series:
// bullish if it closed above its open, bearish below, neutral on a doji
// or an empty series.
func Bias(candles []market.Candle) Direction {
	if len(candles) == 0 {
		return Neutral
	}
	latest := candles[len(candles)-1]
	switch {
	case latest.Bullish():
		return Bullish
	case latest.Bearish():
		return Bearish
	}
	return Neutral
}

// Allows reports whether the bias permits an entry in the given direction
// under lenient gating: the opposite bias blocks, neutral does not.
func (d Direction) Allows(dir Direction) bool {
	if dir == Bullish {
		return d >= Neutral
	}
	if dir == Bearish {
		return d <= Neutral
	}
	return false
}

// Confirms reports whether the bias actively agrees with the direction.
// Strict gating: neutral blocks too.
func (d Direction) Confirms(dir Direction) bool {
	return dir != Neutral && d == dir
}
