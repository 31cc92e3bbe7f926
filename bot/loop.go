// Package bot runs the trading loop: fetch candles, manage exits,
// evaluate signals, persist state and fan out notifications.
package bot

import (
	"context"
	"sync"
	"time"

	"github.com/dryrunbot/dryrun/journal"
	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/logger"
	"github.com/dryrunbot/dryrun/market"
	"github.com/dryrunbot/dryrun/metrics"
	"github.com/dryrunbot/dryrun/notify"
	"github.com/dryrunbot/dryrun/state"
	"github.com/dryrunbot/dryrun/strategy"
)

// MarketData is the slice of the exchange client the loop needs.
type MarketData interface {
	Klines(ctx context.Context, symbol string, interval market.Timeframe, limit int) ([]market.Candle, error)
	Price(ctx context.Context, symbol string) (float64, error)
}

// Options wires a Loop together.
type Options struct {
	Registry    *strategy.Registry
	Store       *state.Store
	Doc         *state.Document
	Data        MarketData
	Journal     journal.Journal
	Notifier    notify.Notifier
	Log         logger.Logger
	Interval    time.Duration
	CandleLimit int
	Now         func() time.Time
}

// Loop owns the trading state. All mutations happen on its goroutine;
// Snapshot serves concurrent readers.
type Loop struct {
	registry    *strategy.Registry
	store       *state.Store
	doc         *state.Document
	book        *ledger.Book
	data        MarketData
	journal     journal.Journal
	notifier    notify.Notifier
	log         logger.Logger
	interval    time.Duration
	candleLimit int
	now         func() time.Time

	mu sync.Mutex
}

func New(opts Options) *Loop {
	l := &Loop{
		registry:    opts.Registry,
		store:       opts.Store,
		doc:         opts.Doc,
		book:        ledger.NewBook(opts.Doc.Strategies),
		data:        opts.Data,
		journal:     opts.Journal,
		notifier:    opts.Notifier,
		log:         opts.Log,
		interval:    opts.Interval,
		candleLimit: opts.CandleLimit,
		now:         opts.Now,
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.notifier == nil {
		l.notifier = notify.Noop{}
	}
	if l.journal == nil {
		l.journal = journal.NewMemory()
	}
	if l.candleLimit <= 0 {
		l.candleLimit = 500
	}
	return l
}

// Snapshot returns a detached copy of every strategy's book.
func (l *Loop) Snapshot() map[string]ledger.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Snapshot()
}

// Run reconciles any state left over from a previous process, then
// cycles until the context is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Reconcile(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.Cycle(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Cycle processes every enabled strategy once, then refreshes the
// state file timestamp even when nothing traded.
func (l *Loop) Cycle(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, strat := range l.registry.Enabled() {
		if ctx.Err() != nil {
			return
		}
		l.step(ctx, strat)
	}

	metrics.CyclesTotal.Inc()
	l.persist()
	l.logCapitalSplit()
}

// logCapitalSplit writes the per-cycle capital summary, split between
// scalp (15m) and swing (4h/1d) strategies.
func (l *Loop) logCapitalSplit() {
	var scalp, swing float64
	for _, strat := range l.registry.All() {
		p := strat.Params()
		entry, ok := l.book.Entries()[p.Name]
		if !ok {
			continue
		}
		if p.Timeframe == market.M15 {
			scalp += entry.Capital
		} else {
			swing += entry.Capital
		}
	}
	l.log.Info("cycle complete",
		logger.Float64("scalp_capital", scalp),
		logger.Float64("swing_capital", swing),
		logger.Float64("total_capital", scalp+swing))
}

// step runs one strategy through exit management and signal checks.
// A fetch failure skips this strategy only.
func (l *Loop) step(ctx context.Context, strat strategy.Strategy) {
	p := strat.Params()
	entry := l.book.Ensure(p.Name, p.Capital)
	now := l.now()

	candles, err := l.data.Klines(ctx, p.Symbol, p.Timeframe, l.candleLimit)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(p.Name).Inc()
		l.log.Warn("candle fetch failed",
			logger.String("strategy", p.Name),
			logger.String("symbol", p.Symbol),
			logger.Err(err))
		return
	}
	if len(candles) < 2 {
		l.log.Warn("not enough candles",
			logger.String("strategy", p.Name),
			logger.Int("count", len(candles)))
		return
	}

	price := candles[len(candles)-1].Close
	h4, daily := l.filterSeries(p, candles, now)

	if pos := entry.Open(); pos != nil {
		l.manageExit(ctx, strat, p, pos, candles, price, now)
	} else {
		l.checkEntry(ctx, strat, p, candles, h4, daily, price, now)
	}

	l.updateGauges(p.Name, entry)
}

// filterSeries derives the higher-timeframe series a strategy's
// filters read. They are resampled from the primary series, never
// fetched separately, and trimmed to fully closed candles.
func (l *Loop) filterSeries(p strategy.Params, candles []market.Candle, now time.Time) (h4, daily []market.Candle) {
	if p.UseH4Filter {
		h4 = market.ClosedOnly(market.Resample(candles, market.H4), market.H4, now)
	}
	if p.UseDailyFilter {
		daily = market.ClosedOnly(market.Resample(candles, market.D1), market.D1, now)
	}
	return h4, daily
}

func (l *Loop) manageExit(ctx context.Context, strat strategy.Strategy, p strategy.Params, pos *ledger.Position, candles []market.Candle, price float64, now time.Time) {
	if p.DynamicExit {
		if tp, ok := strat.UpdateTakeProfit(candles, *pos); ok && tp != pos.TakeProfit {
			if err := l.book.SetTakeProfit(p.Name, tp); err == nil {
				l.log.Info("take profit updated",
					logger.String("strategy", p.Name),
					logger.Float64("take_profit", tp))
				l.persist()
			}
		}
	}

	reason, fired := ledger.CheckExit(*pos, price, now, p.TimeStopHours)
	if !fired {
		return
	}
	l.closeAt(ctx, p, price, reason, now)
}

// closeAt realizes the open position at the observed market price.
// Stops and targets are detected against the level but filled at the
// price seen at detection time, so polling slippage shows up in PnL.
func (l *Loop) closeAt(ctx context.Context, p strategy.Params, price float64, reason ledger.ExitReason, now time.Time) {
	trade, err := l.book.ClosePosition(p.Name, price, reason, now)
	if err != nil {
		l.log.Error("close failed", logger.String("strategy", p.Name), logger.Err(err))
		return
	}
	l.persist()

	entry := l.book.Ensure(p.Name, p.Capital)
	metrics.TradesClosed.WithLabelValues(p.Name, string(reason)).Inc()
	l.log.Info("position closed",
		logger.String("strategy", p.Name),
		logger.String("side", string(trade.Side)),
		logger.String("reason", string(reason)),
		logger.Float64("exit_price", price),
		logger.Float64("pnl", trade.PnL),
		logger.Float64("capital", entry.Capital))

	if err := l.journal.RecordTrade(journal.NewTradeRecord(p.Name, p.Symbol, trade)); err != nil {
		l.log.Warn("journal write failed", logger.String("strategy", p.Name), logger.Err(err))
	}
	l.notifier.Alert(ctx, notify.ClosedMessage(p.Name, trade, entry.Capital))
}

func (l *Loop) checkEntry(ctx context.Context, strat strategy.Strategy, p strategy.Params, candles, h4, daily []market.Candle, price float64, now time.Time) {
	sig := strat.CheckSignal(candles, h4, daily)
	if sig == strategy.SignalNone {
		return
	}

	// Long-only is enforced here, not just inside strategies, so a
	// misbehaving strategy cannot short its way around its config.
	if sig == strategy.SignalShort && p.LongOnly {
		l.log.Warn("short signal suppressed on long-only strategy",
			logger.String("strategy", p.Name))
		return
	}

	pos, err := l.book.OpenPosition(p.Name, ledger.OpenRequest{
		Side:          sig.Side(),
		Price:         price,
		Time:          now,
		RiskPerTrade:  p.RiskPerTrade,
		StopLossPct:   p.StopLossPct,
		TakeProfitPct: p.TakeProfitPct,
		Leverage:      p.Leverage,
	})
	if err != nil {
		l.log.Error("open failed", logger.String("strategy", p.Name), logger.Err(err))
		return
	}
	l.persist()

	l.log.Info("position opened",
		logger.String("strategy", p.Name),
		logger.String("side", string(pos.Side)),
		logger.Float64("entry_price", pos.EntryPrice),
		logger.Float64("size", pos.Size),
		logger.Float64("stop_loss", pos.StopLoss),
		logger.Float64("take_profit", pos.TakeProfit))
	l.notifier.Alert(ctx, notify.OpenedMessage(p.Name, pos))
}

func (l *Loop) updateGauges(name string, entry *ledger.Entry) {
	metrics.Capital.WithLabelValues(name).Set(entry.Capital)
	open := 0.0
	if entry.Open() != nil {
		open = 1
	}
	metrics.PositionsOpen.WithLabelValues(name).Set(open)
}

// persist writes the state file. Failures are logged, not fatal: the
// book lives in memory and the next save retries.
func (l *Loop) persist() {
	if err := l.store.Save(l.doc, l.now()); err != nil {
		l.log.Error("state save failed", logger.Err(err))
	}
}
