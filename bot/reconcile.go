package bot

import (
	"context"

	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/logger"
)

// Reconcile closes positions whose exit conditions were crossed while
// no process was running. It runs once before the first cycle, using
// the live ticker price: a stop blown through during downtime is
// realized at today's price, not at the level it breached.
//
// Every registered strategy is checked, disabled ones included: a
// position opened before a strategy was retired must still be closed
// out rather than left frozen.
func (l *Loop) Reconcile(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for _, strat := range l.registry.All() {
		p := strat.Params()
		entry := l.book.Ensure(p.Name, p.Capital)
		pos := entry.Open()
		if pos == nil {
			continue
		}

		price, err := l.data.Price(ctx, p.Symbol)
		if err != nil {
			l.log.Warn("reconcile price fetch failed",
				logger.String("strategy", p.Name),
				logger.String("symbol", p.Symbol),
				logger.Err(err))
			continue
		}

		reason, fired := ledger.CheckExit(*pos, price, now, p.TimeStopHours)
		if !fired {
			l.log.Info("open position carried over",
				logger.String("strategy", p.Name),
				logger.String("side", string(pos.Side)),
				logger.Float64("entry_price", pos.EntryPrice))
			continue
		}

		l.log.Info("reconciling stale position",
			logger.String("strategy", p.Name),
			logger.String("reason", string(reason)))
		l.closeAt(ctx, p, price, reason, now)
	}

	// Entries persisted under names no longer in the roster have no
	// params or symbol to price against; carry them untouched.
	for name, entry := range l.book.Entries() {
		if l.registry.Get(name) != nil {
			continue
		}
		if pos := entry.Open(); pos != nil {
			l.log.Warn("open position for unregistered strategy carried over",
				logger.String("strategy", name),
				logger.String("side", string(pos.Side)),
				logger.Float64("entry_price", pos.EntryPrice))
		}
	}

	l.persist()
	return nil
}
