// Package journal records closed trades in a durable side store. The
// JSON state file holds the authoritative book; the journal exists for
// querying history after state resets.
package journal

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/dryrunbot/dryrun/ledger"
)

// TradeRecord is one closed trade as written to the journal.
type TradeRecord struct {
	ID         string
	Strategy   string
	Symbol     string
	Side       string
	Size       float64
	EntryPrice float64
	ExitPrice  float64
	OpenTime   time.Time
	CloseTime  time.Time
	PnL        float64
	PnLPct     float64
	Reason     string
}

// NewTradeRecord assembles a record from a ledger trade, minting a ULID.
func NewTradeRecord(strategy, symbol string, t ledger.ClosedTrade) TradeRecord {
	return TradeRecord{
		ID:         ulid.Make().String(),
		Strategy:   strategy,
		Symbol:     symbol,
		Side:       string(t.Side),
		Size:       t.Size,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		OpenTime:   t.EntryTime,
		CloseTime:  t.ExitTime,
		PnL:        t.PnL,
		PnLPct:     t.PnLPct,
		Reason:     string(t.ExitReason),
	}
}

type Journal interface {
	RecordTrade(TradeRecord) error
	Trades(strategy string) ([]TradeRecord, error)
	Close() error
}

// Memory keeps records in a slice. Used in tests and when journaling
// is disabled.
type Memory struct {
	records []TradeRecord
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) RecordTrade(t TradeRecord) error {
	m.records = append(m.records, t)
	return nil
}

func (m *Memory) Trades(strategy string) ([]TradeRecord, error) {
	if strategy == "" {
		return append([]TradeRecord(nil), m.records...), nil
	}
	var out []TradeRecord
	for _, t := range m.records {
		if t.Strategy == strategy {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
