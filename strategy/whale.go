package strategy

import (
	"math"

	"github.com/dryrunbot/dryrun/filters"
	"github.com/dryrunbot/dryrun/indicators"
	"github.com/dryrunbot/dryrun/market"
)

// whaleCandle follows conviction candles: a completed bar whose body
// dwarfs recent ATR on a volume spike, with most of its range being
// body. Entries follow the candle's direction when the H4 bias agrees.
//
// The trigger is defined on a completed bar, so the last element of
// the primary series (still forming) is skipped and the bar before it
// is evaluated against indicator values from before that bar.
type whaleCandle struct {
	fixedExit
	params       Params
	lookback     int
	atrMult      float64
	volMult      float64
	bodyRatioMin float64
}

// NewWhaleCandle builds a whale-candle follow strategy.
func NewWhaleCandle(params Params) Strategy {
	return &whaleCandle{
		params:       params,
		lookback:     20,
		atrMult:      2.5,
		volMult:      2.0,
		bodyRatioMin: 0.7,
	}
}

func (s *whaleCandle) Params() Params { return s.params }

func (s *whaleCandle) CheckSignal(primary, h4, daily []market.Candle) Signal {
	if len(primary) < s.lookback+5 {
		return SignalNone
	}

	highs := market.Highs(primary)
	lows := market.Lows(primary)
	closes := market.Closes(primary)
	vols := market.Volumes(primary)

	atr, err := indicators.ATR(highs, lows, closes, s.lookback)
	if err != nil {
		return SignalNone
	}
	volAvg := indicators.SMA(vols, s.lookback)

	n := len(primary)
	bar := primary[n-2]
	priorATR := atr[n-3]
	priorVolAvg := volAvg[n-3]

	if math.IsNaN(priorATR) || math.IsNaN(priorVolAvg) || priorVolAvg == 0 {
		return SignalNone
	}

	body := math.Abs(bar.Close - bar.Open)
	rng := bar.High - bar.Low
	if rng == 0 {
		return SignalNone
	}

	if body <= priorATR*s.atrMult ||
		bar.Volume <= priorVolAvg*s.volMult ||
		body/rng <= s.bodyRatioMin {
		return SignalNone
	}

	if bar.Bullish() {
		if permitted(s.params, true, filters.Bullish, h4, daily) {
			return SignalLong
		}
		return SignalNone
	}
	if !s.params.LongOnly && permitted(s.params, true, filters.Bearish, h4, daily) {
		return SignalShort
	}
	return SignalNone
}

var _ Strategy = (*whaleCandle)(nil)
