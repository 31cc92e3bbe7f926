package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dryrunbot/dryrun/market"
)

func TestKlines(t *testing.T) {
	payload := `[
		[1740000000000, "50000.00", "50500.00", "49800.00", "50200.00", "123.45", 1740000899999, "0", 0, "0", "0", "0"],
		[1740000900000, "50200.00", "50300.00", "50100.00", "50250.00", "67.89", 1740001799999, "0", 0, "0", "0", "0"]
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "15m", r.URL.Query().Get("interval"))
		assert.Equal(t, "500", r.URL.Query().Get("limit"))
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	candles, err := c.Klines(context.Background(), "BTCUSDT", market.M15, 500)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	first := candles[0]
	assert.Equal(t, time.UnixMilli(1740000000000).UTC(), first.Time)
	assert.InDelta(t, 50000, first.Open, 1e-9)
	assert.InDelta(t, 50500, first.High, 1e-9)
	assert.InDelta(t, 49800, first.Low, 1e-9)
	assert.InDelta(t, 50200, first.Close, 1e-9)
	assert.InDelta(t, 123.45, first.Volume, 1e-9)

	assert.InDelta(t, 50250, candles[1].Close, 1e-9)
}

func TestKlinesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	_, err := c.Klines(context.Background(), "NOPEUSDT", market.M15, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid symbol")
}

func TestKlinesMalformedRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[1740000000000, "50000.00"]]`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	_, err := c.Klines(context.Background(), "BTCUSDT", market.M15, 10)
	assert.Error(t, err)
}

func TestPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		assert.Equal(t, "ETHUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbol":"ETHUSDT","price":"2043.55000000"}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	price, err := c.Price(context.Background(), "ETHUSDT")
	require.NoError(t, err)
	assert.InDelta(t, 2043.55, price, 1e-9)
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClientWithBaseURL(srv.URL)
	_, err := c.Price(ctx, "BTCUSDT")
	assert.Error(t, err)
}
