// Package binance fetches public market data from the Binance spot
// REST API. No credentials are needed; the bot never places orders.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dryrunbot/dryrun/market"
)

const SpotBaseURL = "https://api.binance.com"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client against the public spot API.
func NewClient() *Client {
	return &Client{
		baseURL:    SpotBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// Klines fetches up to limit candles for the symbol and interval, most
// recent last. The final candle is usually still forming.
//
// Binance returns each kline as a mixed-type array:
// [ openTime, open, high, low, close, volume, closeTime, ... ]
// with timestamps as numbers and prices as strings.
func (c *Client) Klines(ctx context.Context, symbol string, interval market.Timeframe, limit int) ([]market.Candle, error) {
	url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		c.baseURL, symbol, interval, limit)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var raw [][]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("binance: decode klines: %w", err)
	}

	candles := make([]market.Candle, 0, len(raw))
	for i, k := range raw {
		if len(k) < 6 {
			return nil, fmt.Errorf("binance: kline %d: want 6 fields, got %d", i, len(k))
		}
		var openMs int64
		if err := json.Unmarshal(k[0], &openMs); err != nil {
			return nil, fmt.Errorf("binance: kline %d open time: %w", i, err)
		}

		var candle market.Candle
		candle.Time = time.UnixMilli(openMs).UTC()
		fields := []*float64{&candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume}
		for j, dst := range fields {
			v, err := parseNumString(k[j+1])
			if err != nil {
				return nil, fmt.Errorf("binance: kline %d field %d: %w", i, j+1, err)
			}
			*dst = v
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// Price fetches the latest traded price for the symbol.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", c.baseURL, symbol)

	body, err := c.get(ctx, url)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("binance: decode price: %w", err)
	}
	price, err := strconv.ParseFloat(resp.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("binance: parse price %q: %w", resp.Price, err)
	}
	return price, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("binance: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// parseNumString handles Binance's string-encoded decimal fields.
func parseNumString(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// Some mirrors return plain numbers.
		var f float64
		if err2 := json.Unmarshal(raw, &f); err2 == nil {
			return f, nil
		}
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}
