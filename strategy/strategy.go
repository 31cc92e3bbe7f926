// Package strategy defines the signal-generation contract and the
// built-in strategy roster. Strategies are pure: they read candle
// series and return a signal, never touching capital or positions.
package strategy

import (
	"fmt"
	"strings"

	"github.com/dryrunbot/dryrun/filters"
	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/market"
)

// Signal is a strategy's verdict for the current cycle.
type Signal int

const (
	SignalNone  Signal = 0
	SignalLong  Signal = 1
	SignalShort Signal = -1
)

func (s Signal) String() string {
	switch s {
	case SignalLong:
		return "long"
	case SignalShort:
		return "short"
	}
	return "none"
}

// Side maps a non-zero signal to a ledger side.
func (s Signal) Side() ledger.Side {
	if s == SignalShort {
		return ledger.Short
	}
	return ledger.Long
}

// Params is the static configuration of a strategy: identity, risk
// numbers and filter wiring. Every built-in strategy exposes one.
type Params struct {
	Name        string
	DisplayName string
	Symbol      string
	Timeframe   market.Timeframe
	Enabled     bool

	Capital       float64
	RiskPerTrade  float64
	StopLossPct   float64
	TakeProfitPct float64
	TimeStopHours int // 0 disables the time stop
	Leverage      float64

	LongOnly       bool
	UseH4Filter    bool
	UseDailyFilter bool
	DynamicExit    bool
}

// Validate checks the fields a broken strategy definition would get wrong.
func (p Params) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("strategy: missing name")
	}
	if strings.HasPrefix(p.Name, "_") {
		// Underscore keys are reserved in the state file.
		return fmt.Errorf("strategy: name %q must not start with underscore", p.Name)
	}
	if p.Symbol == "" {
		return fmt.Errorf("strategy %s: missing symbol", p.Name)
	}
	if !p.Timeframe.Valid() {
		return fmt.Errorf("strategy %s: invalid timeframe %q", p.Name, p.Timeframe)
	}
	if p.StopLossPct <= 0 {
		return fmt.Errorf("strategy %s: stop loss must be positive", p.Name)
	}
	if p.TakeProfitPct <= 0 {
		return fmt.Errorf("strategy %s: take profit must be positive", p.Name)
	}
	if p.RiskPerTrade <= 0 {
		return fmt.Errorf("strategy %s: risk per trade must be positive", p.Name)
	}
	return nil
}

// Strategy is the contract every trading strategy implements.
//
// CheckSignal receives the primary series as fetched, most recent bar
// last, plus higher-timeframe filter series already trimmed to fully
// closed candles. UpdateTakeProfit returns a replacement take-profit
// for the open position; the bool is false when the strategy has no
// dynamic exit or no value is available yet.
type Strategy interface {
	Params() Params
	CheckSignal(primary, h4, daily []market.Candle) Signal
	UpdateTakeProfit(primary []market.Candle, pos ledger.Position) (float64, bool)
}

// fixedExit is embedded by strategies whose take-profit never moves.
type fixedExit struct{}

func (fixedExit) UpdateTakeProfit([]market.Candle, ledger.Position) (float64, bool) {
	return 0, false
}

// permitted applies the strategy's higher-timeframe filters to a
// candidate direction. Lenient gating blocks only the opposite bias;
// strict gating requires active agreement.
func permitted(p Params, strict bool, dir filters.Direction, h4, daily []market.Candle) bool {
	if p.UseH4Filter {
		b := filters.Bias(h4)
		if strict && !b.Confirms(dir) {
			return false
		}
		if !strict && !b.Allows(dir) {
			return false
		}
	}
	if p.UseDailyFilter {
		b := filters.Bias(daily)
		if strict && !b.Confirms(dir) {
			return false
		}
		if !strict && !b.Allows(dir) {
			return false
		}
	}
	return true
}
