package market

// Series is a rolling chronological candle history, oldest first.
//
// The run coordinator appends one candle per tick and hands the full window
// to the signal generator. When maxLen is exceeded the oldest candles are
// dropped; maxLen <= 0 means unbounded.
type Series struct {
	candles []Candle
	maxLen  int
}

func NewSeries(maxLen int) *Series {
	return &Series{maxLen: maxLen}
}

func (s *Series) Len() int { return len(s.candles) }

// Append adds c to the end of the history, trimming from the front when the
// window is full.
func (s *Series) Append(c Candle) {
	s.candles = append(s.candles, c)
	if s.maxLen > 0 && len(s.candles) > s.maxLen {
		drop := len(s.candles) - s.maxLen
		s.candles = append(s.candles[:0], s.candles[drop:]...)
	}
}

// Candles returns a copy of the history so callers can't alias the
// coordinator's window.
func (s *Series) Candles() []Candle {
	out := make([]Candle, len(s.candles))
	copy(out, s.candles)
	return out
}

// Closes returns the closing prices, oldest first.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.candles))
	for i, c := range s.candles {
		out[i] = c.Close
	}
	return out
}

// Last returns the newest candle, or false if the series is empty.
func (s *Series) Last() (Candle, bool) {
	if len(s.candles) == 0 {
		return Candle{}, false
	}
	return s.candles[len(s.candles)-1], true
}

func (s *Series) Reset() {
	s.candles = s.candles[:0]
}
