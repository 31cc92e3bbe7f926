package ledger

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPositionOpen is returned when an entry is attempted while a
	// position already exists. One position per strategy, always.
	ErrPositionOpen = errors.New("ledger: position already open")

	// ErrNoPosition is returned when a close is attempted with no open
	// position. Reaching it indicates a logic bug in the caller.
	ErrNoPosition = errors.New("ledger: no open position")
)

// Entry is one strategy's persisted ledger state. Positions holds zero or
// one element; it stays a slice for state-file compatibility.
type Entry struct {
	Capital      float64       `json:"capital"`
	Positions    []Position    `json:"positions"`
	ClosedTrades []ClosedTrade `json:"closed_trades"`
}

// NewEntry returns a fresh entry at the given capital. The slices are
// non-nil so a never-traded entry serializes as empty arrays, which the
// state file's external readers iterate.
func NewEntry(capital float64) *Entry {
	return &Entry{
		Capital:      capital,
		Positions:    []Position{},
		ClosedTrades: []ClosedTrade{},
	}
}

// Open returns the entry's open position, or nil when flat.
func (e *Entry) Open() *Position {
	if len(e.Positions) == 0 {
		return nil
	}
	return &e.Positions[0]
}

// TotalPnL sums realized PnL over all closed trades.
func (e *Entry) TotalPnL() float64 {
	var total float64
	for _, t := range e.ClosedTrades {
		total += t.PnL
	}
	return total
}

// WinRate returns the fraction of closed trades that were profitable,
// or 0 with no trades.
func (e *Entry) WinRate() float64 {
	if len(e.ClosedTrades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range e.ClosedTrades {
		if t.Win() {
			wins++
		}
	}
	return float64(wins) / float64(len(e.ClosedTrades))
}

// OpenRequest carries everything needed to size and place a position.
type OpenRequest struct {
	Side          Side
	Price         float64
	Time          time.Time
	RiskPerTrade  float64
	StopLossPct   float64
	TakeProfitPct float64
	Leverage      float64
}

// Book holds the ledger entries for all strategies. It is owned by the
// trading loop; everything else sees read-only snapshots.
type Book struct {
	entries map[string]*Entry
}

// NewBook wraps an existing entry map (typically the one loaded from the
// state document). A nil map starts an empty book.
func NewBook(entries map[string]*Entry) *Book {
	if entries == nil {
		entries = make(map[string]*Entry)
	}
	return &Book{entries: entries}
}

// Entries exposes the live entry map for persistence. Callers other than
// the state layer should use Snapshot.
func (b *Book) Entries() map[string]*Entry { return b.entries }

// Ensure returns the entry for a strategy, creating it with the given
// initial capital on first sight.
func (b *Book) Ensure(name string, initialCapital float64) *Entry {
	e, ok := b.entries[name]
	if !ok {
		e = NewEntry(initialCapital)
		b.entries[name] = e
	}
	return e
}

// PositionSize converts a risk budget into instrument quantity. The
// dollar amount lost at the stop equals capital*riskPerTrade*leverage;
// leverage scales the position, and therefore gains and losses, beyond
// the nominal risk budget.
func PositionSize(capital, riskPerTrade, stopLossPct, leverage, price float64) float64 {
	if stopLossPct <= 0 || price <= 0 {
		return 0
	}
	notional := capital * riskPerTrade / stopLossPct * leverage
	return notional / price
}

// OpenPosition opens a position for the named strategy. It is rejected
// with ErrPositionOpen when one already exists.
func (b *Book) OpenPosition(name string, req OpenRequest) (Position, error) {
	e, ok := b.entries[name]
	if !ok {
		return Position{}, fmt.Errorf("ledger: unknown strategy %q", name)
	}
	if e.Open() != nil {
		return Position{}, ErrPositionOpen
	}

	leverage := req.Leverage
	if leverage <= 0 {
		leverage = 1
	}

	var stop, target float64
	if req.Side == Long {
		stop = req.Price * (1 - req.StopLossPct)
		target = req.Price * (1 + req.TakeProfitPct)
	} else {
		stop = req.Price * (1 + req.StopLossPct)
		target = req.Price * (1 - req.TakeProfitPct)
	}

	pos := Position{
		Side:       req.Side,
		EntryPrice: req.Price,
		EntryTime:  req.Time,
		Size:       PositionSize(e.Capital, req.RiskPerTrade, req.StopLossPct, leverage, req.Price),
		StopLoss:   stop,
		TakeProfit: target,
		Status:     "open",
	}
	e.Positions = append(e.Positions, pos)
	return pos, nil
}

// SetTakeProfit replaces the open position's take-profit target. Used by
// dynamic-exit strategies; the ledger applies the value, the strategy
// never mutates the position itself.
func (b *Book) SetTakeProfit(name string, price float64) error {
	e, ok := b.entries[name]
	if !ok {
		return fmt.Errorf("ledger: unknown strategy %q", name)
	}
	pos := e.Open()
	if pos == nil {
		return ErrNoPosition
	}
	pos.TakeProfit = price
	return nil
}

// ClosePosition realizes the open position at exitPrice: computes PnL,
// mutates capital, appends the trade record and removes the position.
// The caller guarantees single invocation per position.
func (b *Book) ClosePosition(name string, exitPrice float64, reason ExitReason, now time.Time) (ClosedTrade, error) {
	e, ok := b.entries[name]
	if !ok {
		return ClosedTrade{}, fmt.Errorf("ledger: unknown strategy %q", name)
	}
	pos := e.Open()
	if pos == nil {
		return ClosedTrade{}, ErrNoPosition
	}

	pnl := pos.UnrealizedPnL(exitPrice)
	pnlPct := 0.0
	if e.Capital != 0 {
		pnlPct = pnl / e.Capital * 100
	}

	trade := ClosedTrade{
		EntryTime:  pos.EntryTime,
		ExitTime:   now,
		Side:       pos.Side,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  exitPrice,
		Size:       pos.Size,
		PnL:        pnl,
		PnLPct:     pnlPct,
		ExitReason: reason,
	}

	e.Capital += pnl
	e.ClosedTrades = append(e.ClosedTrades, trade)
	e.Positions = e.Positions[:0]
	return trade, nil
}

// Snapshot deep-copies the book for read-only consumers (dashboard,
// status/report commands). The live structures are never shared.
func (b *Book) Snapshot() map[string]Entry {
	out := make(map[string]Entry, len(b.entries))
	for name, e := range b.entries {
		cp := Entry{Capital: e.Capital}
		cp.Positions = append([]Position(nil), e.Positions...)
		cp.ClosedTrades = append([]ClosedTrade(nil), e.ClosedTrades...)
		out[name] = cp
	}
	return out
}
