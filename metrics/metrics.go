// Package metrics exposes the bot's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dryrun_cycles_total",
			Help: "Trading loop cycles completed.",
		},
	)

	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dryrun_fetch_errors_total",
			Help: "Market data fetch failures (by strategy).",
		},
		[]string{"strategy"},
	)

	PositionsOpen = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dryrun_positions_open",
			Help: "Open positions per strategy (0 or 1).",
		},
		[]string{"strategy"},
	)

	Capital = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dryrun_capital",
			Help: "Current simulated capital per strategy.",
		},
		[]string{"strategy"},
	)

	TradesClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dryrun_trades_closed_total",
			Help: "Closed trades by strategy and exit reason.",
		},
		[]string{"strategy", "reason"},
	)
)

func init() {
	prometheus.MustRegister(CyclesTotal, FetchErrors, PositionsOpen, Capital, TradesClosed)
}
