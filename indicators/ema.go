// indicators/ema.go
package indicators

// EMASeries computes an Exponential Moving Average over a full slice of
// closes, oldest first, with alpha = 2/(period+1).
//
// Seeding: the first min(period, len) values are all set to the simple
// average of the first min(period, len) closes, then the usual recurrence
// ema[i] = alpha*close[i] + (1-alpha)*ema[i-1] applies. The flat seed makes
// fast and slow series comparable from index 0; they converge to the true
// EMA after roughly one period. Changing the seed changes crossover timing,
// so both series must use this exact scheme.
func EMASeries(closes []float64, period int) []float64 {
	n := len(closes)
	if n == 0 || period <= 0 {
		return nil
	}

	out := make([]float64, n)
	seedLen := period
	if seedLen > n {
		seedLen = n
	}

	seed := SMA(closes[:seedLen])
	for i := 0; i < seedLen; i++ {
		out[i] = seed
	}

	alpha := 2.0 / float64(period+1)
	for i := seedLen; i < n; i++ {
		out[i] = alpha*closes[i] + (1.0-alpha)*out[i-1]
	}
	return out
}

// SMA returns the simple average of xs, or 0 for an empty slice.
func SMA(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
