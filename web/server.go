// Package web serves the read-only dashboard API and Prometheus
// metrics. It never mutates trading state.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/logger"
)

// SnapshotFunc returns a detached copy of the current book.
type SnapshotFunc func() map[string]ledger.Entry

type Server struct {
	srv *http.Server
	log logger.Logger
}

func NewServer(addr string, snapshot SnapshotFunc, log logger.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		snap := snapshot()

		type stratView struct {
			Capital      float64              `json:"capital"`
			TotalPnL     float64              `json:"total_pnl"`
			WinRate      float64              `json:"win_rate"`
			Position     *ledger.Position     `json:"position,omitempty"`
			ClosedTrades []ledger.ClosedTrade `json:"closed_trades"`
		}

		out := make(map[string]stratView, len(snap))
		for name, entry := range snap {
			v := stratView{
				Capital:      entry.Capital,
				TotalPnL:     entry.TotalPnL(),
				WinRate:      entry.WinRate(),
				ClosedTrades: entry.ClosedTrades,
			}
			if v.ClosedTrades == nil {
				v.ClosedTrades = []ledger.ClosedTrade{}
			}
			if p := entry.Open(); p != nil {
				v.Position = p
			}
			out[name] = v
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})

	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("dashboard listening", logger.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
