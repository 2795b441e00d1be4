package risk

import "math"

// PositionSize converts a currency risk amount into a base-asset quantity
// given entry and stop prices: size = riskAmount / |entry - stop|.
//
// Returns 0 whenever the inputs can't produce a sane positive quantity
// (entry == stop, non-finite result, non-positive risk). Callers treat 0 as
// "do not open". No minimum-lot clamping: exchange lot constraints are not
// modeled.
func PositionSize(riskAmount, entryPrice, stopPrice float64) float64 {
	dist := math.Abs(entryPrice - stopPrice)
	if dist <= 0 {
		return 0
	}
	size := riskAmount / dist
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return 0
	}
	return size
}
