// Package stats holds the small numeric helpers shared by the metric, chart
// and spatial builders.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean, or 0 for an empty or non-finite input
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := stat.Mean(values, nil)
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0
	}
	return mean
}

// Min returns the smallest value, 0 when empty
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Min(values)
}

// Max returns the largest value, 0 when empty
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values)
}

// Normalize rescales values onto [0, 1]. A single distinct non-zero value
// maps to 1.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		if hi != 0 {
			for i := range out {
				out[i] = 1
			}
		}
		return out
	}

	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out
}
