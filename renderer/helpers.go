package renderer

import "strings"

// levels are the eight block characters a sparkline is drawn with.
var levels = []rune("▁▂▃▄▅▆▇█")

// sparkline draws values as a single line of block characters, resampling to
// at most width columns.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	values = resample(values, width)
	low, high := bounds(values)

	var b strings.Builder
	for _, v := range values {
		i := 0
		if high > low {
			i = int((v - low) / (high - low) * float64(len(levels)-1))
		}
		b.WriteRune(levels[i])
	}
	return b.String()
}

// resample reduces values to at most width points by keeping the last value
// of each bucket, so the most recent point is always drawn.
func resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i := range width {
		// end of the i-th of width equal buckets
		j := (i+1)*len(values)/width - 1
		out[i] = values[j]
	}
	return out
}

// bounds returns the minimum and maximum of values.
func bounds(values []float64) (low, high float64) {
	low, high = values[0], values[0]
	for _, v := range values {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	return low, high
}
