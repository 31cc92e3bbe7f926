package strategy

import (
	"github.com/dryrunbot/dryrun/indicators"
	"github.com/dryrunbot/dryrun/market"
)

// obvDivergence is a long-only accumulation play: price lower than it
// was lookback bars ago while On-Balance Volume is higher. Volume
// flowing in against a falling price suggests quiet buying.
type obvDivergence struct {
	fixedExit
	params   Params
	lookback int
}

// NewOBVDivergence builds a daily OBV divergence strategy.
func NewOBVDivergence(params Params) Strategy {
	return &obvDivergence{params: params, lookback: 10}
}

func (s *obvDivergence) Params() Params { return s.params }

func (s *obvDivergence) CheckSignal(primary, h4, daily []market.Candle) Signal {
	if len(primary) < s.lookback+2 {
		return SignalNone
	}

	closes := market.Closes(primary)
	obv := indicators.OBV(closes, market.Volumes(primary))

	n := len(closes)
	priceDown := closes[n-1] < closes[n-1-s.lookback]
	obvUp := obv[n-1] > obv[n-1-s.lookback]

	if priceDown && obvUp {
		return SignalLong
	}
	return SignalNone
}

var _ Strategy = (*obvDivergence)(nil)
