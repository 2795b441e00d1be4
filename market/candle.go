package market

import (
	"math"
	"time"
)

// Candle represents one OHLCV price bar for a fixed interval.
//
// Candles are produced externally (live ticker or synthetic feed) and are
// never mutated by the simulation core. Prices are quote-currency floats;
// high >= max(open,close) and low <= min(open,close) is expected from any
// sane source but not enforced here.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// NewCandle builds a candle from an epoch-millisecond timestamp, the wire
// format used by exchange kline feeds.
func NewCandle(millis int64, o, h, l, c, v float64) Candle {
	return Candle{
		Time:   time.UnixMilli(millis).UTC(),
		Open:   o,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: v,
	}
}

// Millis returns the bar open time as epoch milliseconds.
func (c Candle) Millis() int64 { return c.Time.UnixMilli() }

// Body returns the absolute size of the candle body.
func (c Candle) Body() float64 { return math.Abs(c.Close - c.Open) }

// Valid reports whether every price field is finite. A single bad tick must
// never crash the simulation loop, so callers drop invalid candles instead
// of propagating an error.
func (c Candle) Valid() bool {
	for _, x := range []float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
