// Package consts holds the numeric constants fixed by the solver
// specification. None of these are configurable at runtime.
package consts

import "math"

const (
	// SBaseDefault is the system MVA base used when a Network does not
	// specify one.
	SBaseDefault = 100.0

	// Epsilon is the convergence tolerance on the infinity norm of the
	// Newton-Raphson correction vector.
	Epsilon = 1e-6

	// MaxIterations bounds the Newton-Raphson iteration.
	MaxIterations = 100

	// PivotTolerance is the pivot tolerance spec §4.1/§6.3 requires the LU
	// factorization to use. github.com/edp1096/sparse's Configuration and
	// Factor() expose no pivot-tolerance parameter (confirmed against the
	// teacher's own usage, pkg/matrix/circuit.go) — this constant cannot
	// currently be wired into sparsekit.System.Solve. See DESIGN.md, open
	// question O6.
	PivotTolerance = 1e-6

	// SlackVoltage and SlackAngle are the values the Newton-Raphson solver
	// holds the slack bus at, regardless of the bus's stored voltage/angle.
	SlackVoltage = 1.0
	SlackAngle   = 0.0
)

// DegPerRad and RadPerDeg convert between the internal radian
// representation and the degree representation used at solution
// boundaries.
var (
	DegPerRad = 180.0 / math.Pi
	RadPerDeg = math.Pi / 180.0
)
