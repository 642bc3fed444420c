package charts

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Lowess parameters matching the common defaults of statistical packages
const (
	LowessFrac       = 2.0 / 3.0
	LowessIterations = 3
	lowessMaxEval    = 60
)

// Lowess fits a locally weighted linear regression (tricube kernel with
// bisquare robustness iterations) and returns the smoothed curve ordered by x.
// Fits are evaluated on at most lowessMaxEval x positions; residuals between
// them are linearly interpolated.
func Lowess(x, y []float64, frac float64, iterations int) []XY {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, idx := range order {
		xs[i], ys[i] = x[idx], y[idx]
	}

	if n == 1 {
		return []XY{{X: xs[0], Y: ys[0]}}
	}

	r := int(math.Ceil(frac * float64(n)))
	if r < 2 {
		r = 2
	}
	if r > n {
		r = n
	}

	evalX := evaluationPoints(xs)
	fitted := make([]float64, len(evalX))
	robust := make([]float64, n)
	for i := range robust {
		robust[i] = 1
	}

	weights := make([]float64, n)
	for it := 0; it <= iterations; it++ {
		for k, x0 := range evalX {
			fitted[k] = localFit(xs, ys, robust, weights, x0, r)
		}
		if it == iterations {
			break
		}

		residuals := make([]float64, n)
		abs := make([]float64, n)
		for i := range xs {
			residuals[i] = ys[i] - interpolate(evalX, fitted, xs[i])
			abs[i] = math.Abs(residuals[i])
		}
		sort.Float64s(abs)
		s := stat.Quantile(0.5, stat.Empirical, abs, nil)
		if s == 0 {
			break
		}
		for i, e := range residuals {
			u := e / (6 * s)
			if math.Abs(u) >= 1 {
				robust[i] = 0
			} else {
				robust[i] = (1 - u*u) * (1 - u*u)
			}
		}
	}

	curve := make([]XY, len(evalX))
	for k := range evalX {
		curve[k] = XY{X: evalX[k], Y: fitted[k]}
	}
	return curve
}

// evaluationPoints returns the distinct x positions, thinned to an even
// spread when there are too many. xs must be sorted.
func evaluationPoints(xs []float64) []float64 {
	distinct := []float64{xs[0]}
	for _, v := range xs[1:] {
		if v != distinct[len(distinct)-1] {
			distinct = append(distinct, v)
		}
	}
	if len(distinct) <= lowessMaxEval {
		return distinct
	}

	out := make([]float64, lowessMaxEval)
	step := float64(len(distinct)-1) / float64(lowessMaxEval-1)
	for i := range out {
		out[i] = distinct[int(math.Round(float64(i)*step))]
	}
	return out
}

// localFit performs the weighted linear fit at x0 over its r nearest neighbours
// (more when x values tie at the window edge).
// weights is scratch space of len(xs).
func localFit(xs, ys, robust, weights []float64, x0 float64, r int) float64 {
	n := len(xs)
	lo := sort.SearchFloat64s(xs, x0)
	hi := lo
	for hi-lo < r {
		switch {
		case lo == 0:
			hi++
		case hi == n:
			lo--
		case x0-xs[lo-1] <= xs[hi]-x0:
			lo--
		default:
			hi++
		}
	}
	// Points tied with the window edges share their distance and join the fit
	for lo > 0 && xs[lo-1] == xs[lo] {
		lo--
	}
	for hi < n && xs[hi] == xs[hi-1] {
		hi++
	}

	h := math.Max(x0-xs[lo], xs[hi-1]-x0)
	w := weights[lo:hi]
	var sumW float64
	for i := lo; i < hi; i++ {
		d := math.Abs(xs[i] - x0)
		var k float64
		switch {
		case h == 0:
			k = 1
		case d < h:
			u := d / h
			k = math.Pow(1-u*u*u, 3)
		}
		w[i-lo] = k * robust[i]
		sumW += w[i-lo]
	}

	if sumW == 0 {
		return stat.Mean(ys[lo:hi], nil)
	}

	alpha, beta := stat.LinearRegression(xs[lo:hi], ys[lo:hi], w, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return stat.Mean(ys[lo:hi], w)
	}
	return alpha + beta*x0
}

// interpolate evaluates the piecewise-linear curve (ex, ey) at x.
// ex must be sorted; x outside the range takes the nearest end value.
func interpolate(ex, ey []float64, x float64) float64 {
	if x <= ex[0] {
		return ey[0]
	}
	last := len(ex) - 1
	if x >= ex[last] {
		return ey[last]
	}
	i := sort.SearchFloat64s(ex, x)
	if ex[i] == x {
		return ey[i]
	}
	t := (x - ex[i-1]) / (ex[i] - ex[i-1])
	return ey[i-1] + t*(ey[i]-ey[i-1])
}
