package strategy

import (
	"math"

	"github.com/dryrunbot/dryrun/filters"
	"github.com/dryrunbot/dryrun/indicators"
	"github.com/dryrunbot/dryrun/market"
)

// volBreakout trades range breaks on volume: the current close beyond
// the prior 20-bar extreme with volume above a multiple of its prior
// average. The breakout levels come from the window ending one bar
// back so the breaking bar never lifts its own ceiling. Both filters
// must actively agree with the direction.
type volBreakout struct {
	fixedExit
	params     Params
	lookback   int
	volumeMult float64
}

// NewVolBreakout builds a volume-confirmed breakout strategy.
func NewVolBreakout(params Params) Strategy {
	return &volBreakout{params: params, lookback: 20, volumeMult: 1.5}
}

func (s *volBreakout) Params() Params { return s.params }

func (s *volBreakout) CheckSignal(primary, h4, daily []market.Candle) Signal {
	if len(primary) < s.lookback+5 {
		return SignalNone
	}

	highs := market.Highs(primary)
	lows := market.Lows(primary)
	vols := market.Volumes(primary)

	n := len(primary)
	high20 := indicators.RollingMax(highs, s.lookback)[n-2]
	low20 := indicators.RollingMin(lows, s.lookback)[n-2]
	avgVol := indicators.SMA(vols, s.lookback)[n-2]
	if math.IsNaN(high20) || math.IsNaN(avgVol) {
		return SignalNone
	}

	cur := primary[n-1]
	if cur.Volume <= avgVol*s.volumeMult {
		return SignalNone
	}

	if cur.Close > high20 && permitted(s.params, true, filters.Bullish, h4, daily) {
		return SignalLong
	}
	if !s.params.LongOnly && cur.Close < low20 &&
		permitted(s.params, true, filters.Bearish, h4, daily) {
		return SignalShort
	}
	return SignalNone
}

var _ Strategy = (*volBreakout)(nil)
