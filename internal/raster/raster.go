// Package raster implements the grid algorithms the editing operations
// depend on: line rasterization, region fill, and color quantization.
// All functions are pure and never fail on valid numeric input.
package raster

import "math"

// Point is an integer grid coordinate.
type Point struct {
	X int
	Y int
}

func round(v float64) int {
	return int(math.Round(v))
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
