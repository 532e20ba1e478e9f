package textfmt

import "math"

// sparkLevels runs from the lowest to the highest value.
const sparkLevels = " .:-=+*#%@"

// Sparkline draws one character per value, scaled between the smallest and
// largest value. A flat series sits on the middle level.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := bounds(values)
	top := len(sparkLevels) - 1
	span := hi - lo

	out := make([]byte, len(values))
	for i, v := range values {
		level := top / 2
		if span > 1e-9 {
			level = int(math.Round((v - lo) / span * float64(top)))
		}
		out[i] = sparkLevels[min(max(level, 0), top)]
	}
	return string(out)
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
