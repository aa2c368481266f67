package solver

import "fmt"

// Log is an ordered sequence of diagnostic strings: iteration counts, max
// mismatch, and convergence/failure causes (spec §6.2). It is domain data
// returned to the caller, not a logging framework.
type Log []string

// Add appends a formatted diagnostic line.
func (l *Log) Add(format string, args ...any) {
	*l = append(*l, fmt.Sprintf(format, args...))
}

// DcSolution is the output of DCApproximation (spec §6.2).
type DcSolution struct {
	// BusAngles maps bus_id -> angle in degrees, one entry per in-service
	// bus (slack buses report 0).
	BusAngles map[int]float64

	// BranchFlows maps branch_id -> MW flow from-to. Branches with X=0 or
	// out of service are omitted.
	BranchFlows map[int]float64
}

// AcSolution is the output of NewtonRaphson (spec §6.2). On failure,
// BusVoltages and BusAngles are empty and Log explains why.
type AcSolution struct {
	// BusVoltages maps bus_id -> voltage magnitude (pu).
	BusVoltages map[int]float64

	// BusAngles maps bus_id -> angle in degrees.
	BusAngles map[int]float64

	// Log records iteration diagnostics and the convergence/failure cause.
	Log Log

	// Converged reports whether the iteration met the tolerance.
	Converged bool
}
