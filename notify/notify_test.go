package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/logger"
)

func TestTelegramSendsFormPost(t *testing.T) {
	var gotPath, gotChat, gotText, gotMode string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotChat = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		gotMode = r.PostForm.Get("parse_mode")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tg := NewTelegramWithBaseURL(srv.URL, "TOKEN123", "42", logger.NewNop())
	tg.Alert(context.Background(), "hello")

	assert.Equal(t, "/botTOKEN123/sendMessage", gotPath)
	assert.Equal(t, "42", gotChat)
	assert.Equal(t, "hello", gotText)
	assert.Equal(t, "HTML", gotMode)
}

func TestTelegramFailureDoesNotPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	tg := NewTelegramWithBaseURL(srv.URL, "TOKEN", "42", logger.NewNop())
	tg.Alert(context.Background(), "dropped")

	// Dead server: send error, still no panic.
	srv.Close()
	tg.Alert(context.Background(), "also dropped")
}

func TestMessages(t *testing.T) {
	pos := ledger.Position{
		Side:       ledger.Long,
		EntryPrice: 50000,
		Size:       0.04,
		StopLoss:   49500,
		TakeProfit: 51000,
	}
	opened := OpenedMessage("BTC_RSI", pos)
	assert.Contains(t, opened, "POSITION OPENED")
	assert.Contains(t, opened, "BTC_RSI")
	assert.Contains(t, opened, "$50000.00")

	trade := ledger.ClosedTrade{
		Side:       ledger.Long,
		EntryPrice: 50000,
		ExitPrice:  51000,
		PnL:        40,
		PnLPct:     4,
		ExitReason: ledger.ExitTakeProfit,
	}
	closed := ClosedMessage("BTC_RSI", trade, 1040)
	assert.Contains(t, closed, "✅")
	assert.Contains(t, closed, "take_profit")
	assert.Contains(t, closed, "$+40.00")

	trade.PnL = -10
	assert.Contains(t, ClosedMessage("BTC_RSI", trade, 990), "❌")
}
