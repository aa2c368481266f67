package solver

import "errors"

// Sentinel errors surfaced by the DC and Newton-Raphson solvers (spec §7).
// None are retried internally; all are caller-visible failure signals.
var (
	// ErrEmptySystem is returned by DCApproximation when the network has
	// zero non-slack buses.
	ErrEmptySystem = errors.New("solver: no non-slack buses")

	// ErrNoSlack is returned by NewtonRaphson when the network has no
	// in-service slack bus.
	ErrNoSlack = errors.New("solver: no slack bus")

	// ErrMultipleSlack is returned by NewtonRaphson when the network has
	// more than one in-service slack bus.
	ErrMultipleSlack = errors.New("solver: multiple slack buses")

	// ErrSingularMatrix is returned when the B' LU factorization (DC) or
	// the Jacobian solve (NR) fails.
	ErrSingularMatrix = errors.New("solver: singular matrix")

	// ErrDiverged is returned when Newton-Raphson exhausts MaxIterations
	// without meeting the convergence tolerance.
	ErrDiverged = errors.New("solver: failed to converge")
)
