package strategy

import (
	"github.com/dryrunbot/dryrun/filters"
	"github.com/dryrunbot/dryrun/indicators"
	"github.com/dryrunbot/dryrun/market"
)

// cciCross trades CCI reversals: long when CCI crosses back above the
// oversold level, short when it crosses back below the overbought one.
// Filter strictness is per variant; the daily-only configurations leave
// UseH4Filter off.
type cciCross struct {
	fixedExit
	params     Params
	period     int
	oversold   float64
	overbought float64
	strict     bool
}

// NewCCICross builds a lenient-filtered CCI reversal strategy.
func NewCCICross(params Params) Strategy {
	return &cciCross{params: params, period: 20, oversold: -100, overbought: 100}
}

// NewCCICrossStrict builds a CCI reversal strategy whose filters must
// actively agree with the trade direction.
func NewCCICrossStrict(params Params) Strategy {
	return &cciCross{params: params, period: 20, oversold: -100, overbought: 100, strict: true}
}

func (s *cciCross) Params() Params { return s.params }

func (s *cciCross) CheckSignal(primary, h4, daily []market.Candle) Signal {
	if len(primary) < s.period+5 {
		return SignalNone
	}
	cci, err := indicators.CCI(market.Highs(primary), market.Lows(primary), market.Closes(primary), s.period)
	if err != nil {
		return SignalNone
	}

	n := len(cci)
	prev, cur := cci[n-2], cci[n-1]

	if indicators.Crossed(prev, cur, s.oversold, true) &&
		permitted(s.params, s.strict, filters.Bullish, h4, daily) {
		return SignalLong
	}

	if !s.params.LongOnly &&
		indicators.Crossed(prev, cur, s.overbought, false) &&
		permitted(s.params, s.strict, filters.Bearish, h4, daily) {
		return SignalShort
	}

	return SignalNone
}

var _ Strategy = (*cciCross)(nil)
