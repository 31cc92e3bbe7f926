package strategy

import (
	"github.com/dryrunbot/dryrun/filters"
	"github.com/dryrunbot/dryrun/indicators"
	"github.com/dryrunbot/dryrun/market"
)

// rsiCross fires a long when RSI crosses back above the oversold level.
// Long-only; the H4 filter blocks entries while the higher timeframe is
// bearish.
type rsiCross struct {
	fixedExit
	params   Params
	period   int
	oversold float64
}

// NewRSICross builds an RSI oversold-recovery scalp on the given symbol.
func NewRSICross(params Params) Strategy {
	return &rsiCross{params: params, period: 14, oversold: 30}
}

func (s *rsiCross) Params() Params { return s.params }

func (s *rsiCross) CheckSignal(primary, h4, daily []market.Candle) Signal {
	if len(primary) < s.period+6 {
		return SignalNone
	}
	rsi, err := indicators.RSI(market.Closes(primary), s.period)
	if err != nil {
		return SignalNone
	}

	if !permitted(s.params, false, filters.Bullish, h4, daily) {
		return SignalNone
	}

	n := len(rsi)
	if indicators.Crossed(rsi[n-2], rsi[n-1], s.oversold, true) {
		return SignalLong
	}
	return SignalNone
}

var _ Strategy = (*rsiCross)(nil)
