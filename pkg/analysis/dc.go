// Package analysis implements the Newton-Raphson DC operating-point
// driver: the outer loop that drives device stamps to a
// self-consistent solution via repeated dense linear solves.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"mnaspice/pkg/circuit"
	"mnaspice/pkg/device"
	"mnaspice/pkg/mna"
)

// ErrDidNotConverge is returned when the loop exhausts MaxIter
// without satisfying the tolerance test.
var ErrDidNotConverge = errors.New("analysis: did not converge")

// Convergence bundles the Newton-Raphson driver's stopping criteria.
type Convergence struct {
	MaxIter int
	TolAbs  float64
	TolRel  float64
}

// DefaultConvergence matches the commonly used tolerance/iteration
// values for Newton-Raphson DC analysis.
func DefaultConvergence() Convergence {
	return Convergence{MaxIter: 100, TolAbs: 1e-12, TolRel: 1e-6}
}

// Solve runs Newton-Raphson DC analysis on a finalized circuit. x
// must be pre-allocated to ckt.NumVars(); its contents on entry serve
// as the initial Newton guess (and are overwritten with the
// solution), so a caller wanting a cold start must zero it itself.
// This lets gmin-stepping homotopy carry a step's converged solution
// forward as the next step's starting guess. gmin adds a small
// conductance from every node-voltage variable to ground on top of
// the assembled matrix, which helps nonlinear networks (diodes)
// converge; pass 0 for the bare algorithm the design specifies.
//
// Returns the number of iterations performed (>= 1) or an error.
// Unlike the source this never short-circuits after the first
// iteration: only the tolerance test governs termination, up to
// conv.MaxIter.
func Solve(ckt *circuit.Circuit, x []float64, conv Convergence, gmin float64) (int, error) {
	if !ckt.Finalized() {
		return -1, fmt.Errorf("analysis: circuit not finalized")
	}

	n := ckt.NumVars()
	if n == 0 {
		return -1, fmt.Errorf("analysis: circuit has no variables")
	}
	if len(x) != n {
		return -1, fmt.Errorf("analysis: x must have length %d, got %d", n, len(x))
	}

	ctx, err := mna.NewStampContext(n)
	if err != nil {
		return -1, fmt.Errorf("analysis: %w", err)
	}

	numNodeVars := n - ckt.NumExtraVars()
	a := make([]float64, n*n)
	delta := make([]float64, n)

	for iter := 0; iter < conv.MaxIter; iter++ {
		ctx.Reset()

		it := &device.IterationState{
			Iter:     iter,
			XCurrent: x,
			TolAbs:   conv.TolAbs,
			TolRel:   conv.TolRel,
		}
		for _, d := range ckt.Devices() {
			d.StampNonlinear(ctx, it)
		}

		ctx.AssembleDense(a)
		if gmin > 0 {
			for i := 0; i < numNodeVars; i++ {
				a[i*n+i] += gmin
			}
		}
		z := ctx.Z()

		xNew, err := mna.Solve(n, a, z)
		if err != nil {
			return -1, fmt.Errorf("analysis: iteration %d: %w", iter, err)
		}

		maxDelta := 0.0
		for i := range x {
			delta[i] = xNew[i] - x[i]
			if d := math.Abs(delta[i]); d > maxDelta {
				maxDelta = d
			}
		}
		copy(x, xNew)

		converged := true
		for i := range x {
			threshold := conv.TolAbs + conv.TolRel*math.Abs(x[i])
			if math.Abs(delta[i]) > threshold {
				converged = false
				break
			}
		}

		if converged {
			return iter + 1, nil
		}
	}

	return -1, ErrDidNotConverge
}

// OperatingPoint runs Solve directly and, if that fails to converge,
// falls back to gmin-stepping homotopy: solving with a large gmin and
// geometrically reducing it to zero, to recover stubborn diode
// networks that don't converge from a zero initial guess.
func OperatingPoint(ckt *circuit.Circuit, conv Convergence) ([]float64, int, error) {
	n := ckt.NumVars()
	x := make([]float64, n)

	iters, err := Solve(ckt, x, conv, 0)
	if err == nil {
		return x, iters, nil
	}

	const numGminSteps = 10
	gmin := 0.01
	for i := 0; i < numGminSteps; i++ {
		if _, stepErr := Solve(ckt, x, conv, gmin); stepErr != nil {
			return nil, -1, fmt.Errorf("analysis: gmin stepping failed at gmin=%g: %w", gmin, stepErr)
		}
		gmin /= 10
	}

	iters, err = Solve(ckt, x, conv, 0)
	if err != nil {
		return nil, -1, fmt.Errorf("analysis: final solve failed with zero gmin: %w", err)
	}

	return x, iters, nil
}
