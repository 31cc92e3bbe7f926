package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/logger"
)

func testSnapshot() map[string]ledger.Entry {
	return map[string]ledger.Entry{
		"BTC_RSI": {
			Capital: 1040,
			ClosedTrades: []ledger.ClosedTrade{{
				Side: ledger.Long, EntryPrice: 50000, ExitPrice: 51000,
				Size: 0.04, PnL: 40, PnLPct: 4,
				ExitReason: ledger.ExitTakeProfit,
			}},
		},
		"ETH_CCI": {
			Capital: 1000,
			Positions: []ledger.Position{{
				Side: ledger.Long, EntryPrice: 2000,
				EntryTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
				Size:      1, StopLoss: 1980, TakeProfit: 2040, Status: "open",
			}},
		},
	}
}

func TestStateEndpoint(t *testing.T) {
	srv := NewServer(":0", testSnapshot, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var out map[string]struct {
		Capital  float64          `json:"capital"`
		TotalPnL float64          `json:"total_pnl"`
		WinRate  float64          `json:"win_rate"`
		Position *ledger.Position `json:"position"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	btc := out["BTC_RSI"]
	assert.InDelta(t, 1040, btc.Capital, 1e-9)
	assert.InDelta(t, 40, btc.TotalPnL, 1e-9)
	assert.InDelta(t, 1, btc.WinRate, 1e-9)
	assert.Nil(t, btc.Position)

	eth := out["ETH_CCI"]
	require.NotNil(t, eth.Position)
	assert.InDelta(t, 2000, eth.Position.EntryPrice, 1e-9)
}

func TestPingEndpoint(t *testing.T) {
	srv := NewServer(":0", testSnapshot, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := NewServer(":0", testSnapshot, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
