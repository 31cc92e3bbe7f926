package strategy

import (
	"math"

	"github.com/dryrunbot/dryrun/filters"
	"github.com/dryrunbot/dryrun/indicators"
	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/market"
)

// bbMeanRev is a mean-reversion scalp: enter when price pierces a
// Bollinger band while a short RSI confirms the extreme, then walk the
// take-profit to the band midline every cycle (dynamic exit).
type bbMeanRev struct {
	params        Params
	rsiPeriod     int
	rsiOversold   float64
	rsiOverbought float64
	bbPeriod      int
	bbStd         float64
}

// NewBBMeanRev builds a Bollinger band + RSI mean-reversion strategy
// with a dynamic midline take-profit.
func NewBBMeanRev(params Params) Strategy {
	return &bbMeanRev{
		params:        params,
		rsiPeriod:     6,
		rsiOversold:   30,
		rsiOverbought: 70,
		bbPeriod:      20,
		bbStd:         2,
	}
}

func (s *bbMeanRev) Params() Params { return s.params }

func (s *bbMeanRev) CheckSignal(primary, h4, daily []market.Candle) Signal {
	if len(primary) < s.bbPeriod+10 {
		return SignalNone
	}

	closes := market.Closes(primary)
	rsi, err := indicators.RSI(closes, s.rsiPeriod)
	if err != nil {
		return SignalNone
	}
	_, upper, lower, err := indicators.Bollinger(closes, s.bbPeriod, s.bbStd)
	if err != nil {
		return SignalNone
	}

	n := len(closes)
	curClose, curRSI := closes[n-1], rsi[n-1]
	if math.IsNaN(curRSI) || math.IsNaN(upper[n-1]) {
		return SignalNone
	}

	if curClose < lower[n-1] && curRSI < s.rsiOversold &&
		permitted(s.params, false, filters.Bullish, h4, daily) {
		return SignalLong
	}

	if !s.params.LongOnly &&
		curClose > upper[n-1] && curRSI > s.rsiOverbought &&
		permitted(s.params, false, filters.Bearish, h4, daily) {
		return SignalShort
	}

	return SignalNone
}

// UpdateTakeProfit moves the target to the current band midline. The
// position converges on the mean instead of holding out for the fixed
// target.
func (s *bbMeanRev) UpdateTakeProfit(primary []market.Candle, pos ledger.Position) (float64, bool) {
	if len(primary) < s.bbPeriod {
		return 0, false
	}
	mid, _, _, err := indicators.Bollinger(market.Closes(primary), s.bbPeriod, s.bbStd)
	if err != nil {
		return 0, false
	}
	v := mid[len(mid)-1]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

var _ Strategy = (*bbMeanRev)(nil)
