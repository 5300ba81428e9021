package pipeline

import "math"

// varianceEpsilon guards the Pearson denominator. A near-constant series
// has a denominator dominated by floating-point noise, which would
// otherwise report a spurious correlation near ±1; below this threshold
// the statistic is treated as undefined.
const varianceEpsilon = 1e-12

// Pearson computes the correlation coefficient of two equal-length
// series. ok is false when the statistic is undefined: fewer than two
// points, mismatched lengths, or (near-)zero variance in either series.
// The caller enforces the minimum-pair policy on top of this.
func Pearson(xs, ys []float64) (corr float64, ok bool) {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return 0, false
	}

	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX < varianceEpsilon || varY < varianceEpsilon {
		return 0, false
	}

	corr = cov / math.Sqrt(varX*varY)

	// Floating-point noise can push the ratio marginally outside [-1, 1]
	if corr > 1 {
		corr = 1
	} else if corr < -1 {
		corr = -1
	}

	return corr, true
}
