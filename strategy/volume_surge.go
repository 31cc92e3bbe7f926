package strategy

import (
	"math"

	"github.com/dryrunbot/dryrun/indicators"
	"github.com/dryrunbot/dryrun/market"
)

// volumeSurge is a long-only daily swing entry: volume above a multiple
// of its 20-bar average while price jumps more than a threshold in one
// bar. No higher-timeframe filters; the daily chart is the filter.
type volumeSurge struct {
	fixedExit
	params         Params
	period         int
	volumeMult     float64
	priceChangePct float64
}

// NewVolumeSurge builds a daily volume-surge breakout strategy.
func NewVolumeSurge(params Params) Strategy {
	return &volumeSurge{params: params, period: 20, volumeMult: 2.0, priceChangePct: 0.02}
}

func (s *volumeSurge) Params() Params { return s.params }

func (s *volumeSurge) CheckSignal(primary, h4, daily []market.Candle) Signal {
	if len(primary) < s.period+1 {
		return SignalNone
	}

	vols := market.Volumes(primary)
	closes := market.Closes(primary)
	volMA := indicators.SMA(vols, s.period)

	n := len(primary)
	avg := volMA[n-1]
	if math.IsNaN(avg) || closes[n-2] == 0 {
		return SignalNone
	}
	priceChange := closes[n-1]/closes[n-2] - 1

	if vols[n-1] > avg*s.volumeMult && priceChange > s.priceChangePct {
		return SignalLong
	}
	return SignalNone
}

var _ Strategy = (*volumeSurge)(nil)
