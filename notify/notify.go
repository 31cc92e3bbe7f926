// Package notify delivers trade alerts. Delivery is best-effort: a
// failed alert is logged and dropped, never allowed to stall trading.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/logger"
)

type Notifier interface {
	Alert(ctx context.Context, message string)
}

// Noop drops every alert. Used when alerting is disabled.
type Noop struct{}

func (Noop) Alert(context.Context, string) {}

// Telegram sends alerts through the Bot API as HTML messages.
type Telegram struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
	log        logger.Logger
}

func NewTelegram(token, chatID string, log logger.Logger) *Telegram {
	return &Telegram{
		baseURL:    "https://api.telegram.org",
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// NewTelegramWithBaseURL is used by tests to point at a local server.
func NewTelegramWithBaseURL(baseURL, token, chatID string, log logger.Logger) *Telegram {
	tg := NewTelegram(token, chatID, log)
	tg.baseURL = baseURL
	return tg
}

func (t *Telegram) Alert(ctx context.Context, message string) {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	form := url.Values{
		"chat_id":    {t.chatID},
		"text":       {message},
		"parse_mode": {"HTML"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		t.log.Warn("telegram request build failed", logger.Err(err))
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.log.Warn("telegram send failed", logger.Err(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.log.Warn("telegram rejected alert", logger.Int("status", resp.StatusCode))
	}
}

// OpenedMessage formats the position-opened alert.
func OpenedMessage(strategy string, pos ledger.Position) string {
	return fmt.Sprintf(
		"🟢 <b>POSITION OPENED</b>\n\n"+
			"<b>Strategy:</b> %s\n"+
			"<b>Direction:</b> %s\n"+
			"<b>Entry:</b> $%.2f\n"+
			"<b>Size:</b> %.6f\n"+
			"<b>Stop Loss:</b> $%.2f\n"+
			"<b>Take Profit:</b> $%.2f",
		strategy, pos.Side, pos.EntryPrice, pos.Size, pos.StopLoss, pos.TakeProfit)
}

// ClosedMessage formats the position-closed alert.
func ClosedMessage(strategy string, trade ledger.ClosedTrade, capital float64) string {
	emoji := "✅"
	if trade.PnL <= 0 {
		emoji = "❌"
	}
	return fmt.Sprintf(
		"%s <b>POSITION CLOSED</b>\n\n"+
			"<b>Strategy:</b> %s\n"+
			"<b>Direction:</b> %s\n"+
			"<b>Entry:</b> $%.2f\n"+
			"<b>Exit:</b> $%.2f\n"+
			"<b>PnL:</b> $%+.2f (%+.2f%%)\n"+
			"<b>Reason:</b> %s\n"+
			"<b>New Capital:</b> $%.2f",
		emoji, strategy, trade.Side, trade.EntryPrice, trade.ExitPrice,
		trade.PnL, trade.PnLPct, trade.ExitReason, capital)
}
