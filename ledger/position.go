// Package ledger is the authoritative record of each strategy's capital,
// open position and trade history. It owns every money-affecting mutation.
package ledger

import "time"

// Side is the direction of a position.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// ExitReason explains why a position was closed. The values are part of
// the persisted state schema.
type ExitReason string

const (
	ExitStopLoss   ExitReason = "stop_loss"
	ExitTakeProfit ExitReason = "take_profit"
	ExitTimeStop   ExitReason = "time_stop"
)

// Position is a single simulated position. At most one exists per
// strategy at any time.
type Position struct {
	Side       Side      `json:"side"`
	EntryPrice float64   `json:"entry_price"`
	EntryTime  time.Time `json:"entry_time"`
	Size       float64   `json:"size"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
	Status     string    `json:"status"`
}

// UnrealizedPnL marks the position to the given price.
func (p Position) UnrealizedPnL(price float64) float64 {
	if p.Side == Long {
		return (price - p.EntryPrice) * p.Size
	}
	return (p.EntryPrice - price) * p.Size
}

func (p Position) hitStopLoss(price float64) bool {
	if p.Side == Long {
		return price <= p.StopLoss
	}
	return price >= p.StopLoss
}

func (p Position) hitTakeProfit(price float64) bool {
	if p.Side == Long {
		return price >= p.TakeProfit
	}
	return price <= p.TakeProfit
}

// CheckExit evaluates exit conditions in fixed priority: stop-loss, then
// take-profit, then time-stop. timeStopHours <= 0 disables the time stop.
// The returned bool reports whether any condition fired.
func CheckExit(p Position, price float64, now time.Time, timeStopHours int) (ExitReason, bool) {
	if p.hitStopLoss(price) {
		return ExitStopLoss, true
	}
	if p.hitTakeProfit(price) {
		return ExitTakeProfit, true
	}
	if timeStopHours > 0 {
		if now.Sub(p.EntryTime) >= time.Duration(timeStopHours)*time.Hour {
			return ExitTimeStop, true
		}
	}
	return "", false
}
