package market

import "time"

// Resample aggregates candles into a higher timeframe: open is the first
// bar's open, high the max, low the min, close the last bar's close and
// volume the sum. Buckets are aligned to UTC boundaries of the target
// timeframe, matching how the exchange cuts its own candles.
//
// Higher-timeframe series are always derived from the primary series
// rather than fetched separately so that entry decisions and filters see
// a consistent view of the market.
func Resample(candles []Candle, tf Timeframe) []Candle {
	if len(candles) == 0 {
		return nil
	}

	var out []Candle
	var cur *Candle
	for _, c := range candles {
		bucket := c.Time.UTC().Truncate(tf.Duration())
		if cur == nil || !cur.Time.Equal(bucket) {
			if cur != nil {
				out = append(out, *cur)
			}
			cc := c
			cc.Time = bucket
			cur = &cc
			continue
		}
		if c.High > cur.High {
			cur.High = c.High
		}
		if c.Low < cur.Low {
			cur.Low = c.Low
		}
		cur.Close = c.Close
		cur.Volume += c.Volume
	}
	out = append(out, *cur)
	return out
}

// ClosedOnly trims trailing candles whose period has not fully elapsed.
// Filters that require the last fully closed higher-timeframe candle must
// never look at the in-progress bucket.
func ClosedOnly(candles []Candle, tf Timeframe, now time.Time) []Candle {
	n := len(candles)
	for n > 0 && !candles[n-1].Closed(tf, now) {
		n--
	}
	return candles[:n]
}
