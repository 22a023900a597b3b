package utils

import (
	"math"

	"github.com/handegar/retroopl/base"
)

// Converts a tick count at 'srcRate' into a unit count at 'tgtRate',
// rounding down. Successive conversions of a growing tick count never
// go backwards since the result is always floored, never rounded.
// Checking that the result actually moved forward is up to the caller.
func ConvertRate(ticks int32, srcRate int32, tgtRate int32) (int32, error) {
	if srcRate < 1 || tgtRate < 1 {
		return 0, base.Errorf(base.RangeError, "invalid conversion rates %d -> %d", srcRate, tgtRate)
	}

	f := math.Floor((float64(ticks) * float64(tgtRate)) / float64(srcRate))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, base.Errorf(base.NumericError, "numeric problem computing offset")
	}
	if !(f >= 0.0 && f <= float64(math.MaxInt32)) {
		return 0, base.Errorf(base.NumericError, "offset %.0f out of range", f)
	}

	return int32(f), nil
}

// Adds two non-negative counters, failing instead of wrapping.
func AddChecked(a int32, b int32, what string) (int32, error) {
	if b < 0 || a > math.MaxInt32-b {
		return 0, base.Errorf(base.OverflowError, "%s overflow", what)
	}
	return a + b, nil
}
