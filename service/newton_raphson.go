package service

import (
	"math"

	"github.com/pkg/errors"
)

// ErrNoConvergence is returned by NewtonRaphson when no root was found.
var ErrNoConvergence = errors.New("newton-raphson did not converge")

// derivativeThreshold stops the iteration before dividing by a vanishing slope.
const derivativeThreshold = 1e-15

// NewtonRaphson looks for a root of f starting at x0.
// The iteration stops once the step is within tolerance relative to max(1, |x|).
func NewtonRaphson(
	f, df func(float64) float64,
	x0 float64,
	tolerance float64,
	maxIterations int,
) (float64, error) {

	x := x0
	for i := 0; i < maxIterations; i++ {
		fx := f(x)
		if fx == 0 {
			return x, nil
		}
		dfx := df(x)
		if !isFinite(fx) || !isFinite(dfx) {
			return x, errors.Wrapf(ErrNoConvergence, "non-finite value at x=%v after %d iterations", x, i)
		}
		if math.Abs(dfx) < derivativeThreshold {
			return x, errors.Wrapf(ErrNoConvergence, "derivative vanished at x=%v", x)
		}

		next := x - fx/dfx
		if !isFinite(next) {
			return x, errors.Wrapf(ErrNoConvergence, "step diverged at x=%v", x)
		}
		if math.Abs(next-x) <= tolerance*math.Max(1, math.Abs(next)) {
			return next, nil
		}
		x = next
	}
	return x, errors.Wrapf(ErrNoConvergence, "no root within %d iterations", maxIterations)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
