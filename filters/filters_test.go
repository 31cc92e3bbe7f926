package filters

import (
	"testing"

	"github.com/dryrunbot/dryrun/market"
	"github.com/stretchr/testify/assert"
)

func TestBias(t *testing.T) {
	bull := market.Candle{Open: 100, Close: 105}
	bear := market.Candle{Open: 100, Close: 95}
	doji := market.Candle{Open: 100, Close: 100}

	assert.Equal(t, Bullish, Bias([]market.Candle{bear, bull}))
	assert.Equal(t, Bearish, Bias([]market.Candle{bull, bear}))
	assert.Equal(t, Neutral, Bias([]market.Candle{bull, doji}))
	assert.Equal(t, Neutral, Bias(nil))
}

func TestAllows(t *testing.T) {
	assert.True(t, Bullish.Allows(Bullish))
	assert.True(t, Neutral.Allows(Bullish))
	assert.False(t, Bearish.Allows(Bullish))

	assert.True(t, Bearish.Allows(Bearish))
	assert.True(t, Neutral.Allows(Bearish))
	assert.False(t, Bullish.Allows(Bearish))

	assert.False(t, Bullish.Allows(Neutral))
}

func TestConfirms(t *testing.T) {
	assert.True(t, Bullish.Confirms(Bullish))
	assert.False(t, Neutral.Confirms(Bullish))
	assert.False(t, Bearish.Confirms(Bullish))

	assert.True(t, Bearish.Confirms(Bearish))
	assert.False(t, Neutral.Confirms(Bearish))
	assert.False(t, Neutral.Confirms(Neutral))
}
