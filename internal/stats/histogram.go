package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin represents one histogram bucket [Min, Max)
// The last bin of a histogram is closed on both ends.
type Bin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Histogram splits values into n equal-width bins spanning [min, max]
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return []Bin{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []Bin{{Min: lo, Max: hi, Count: len(values)}}
	}

	dividers := floats.Span(make([]float64, n+1), lo, hi)
	// close the last bin so the maximum lands in it
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Min: dividers[i], Max: dividers[i+1], Count: int(counts[i])}
	}
	bins[n-1].Max = hi
	return bins
}
