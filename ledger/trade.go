package ledger

import "time"

// ClosedTrade is an immutable, append-only trade history record.
type ClosedTrade struct {
	EntryTime  time.Time  `json:"entry_time"`
	ExitTime   time.Time  `json:"exit_time"`
	Side       Side       `json:"side"`
	EntryPrice float64    `json:"entry_price"`
	ExitPrice  float64    `json:"exit_price"`
	Size       float64    `json:"size"`
	PnL        float64    `json:"pnl"`
	PnLPct     float64    `json:"pnl_pct"`
	ExitReason ExitReason `json:"exit_reason"`
}

// Win reports whether the trade realized a profit.
func (t ClosedTrade) Win() bool { return t.PnL > 0 }
