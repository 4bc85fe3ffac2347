package util

import (
	"golang.org/x/exp/constraints"
)

// Coerce returns a value that is at least min and at most max, otherwise value
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// MapRange re-maps value from [inMin, inMax] to [outMin, outMax] using integer
// arithmetic. The division truncates toward zero and values outside
// [inMin, inMax] are extrapolated, not clamped.
// Make sure that:
// inMax - inMin != 0
func MapRange(value, inMin, inMax, outMin, outMax int) int {
	return (value-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}
