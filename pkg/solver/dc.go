package solver

import (
	"fmt"

	"github.com/SklorGalore/mantis/internal/consts"
	"github.com/SklorGalore/mantis/pkg/admittance"
	"github.com/SklorGalore/mantis/pkg/network"
)

// DCApproximation runs the DC load-flow approximation (spec §4.3): builds
// the non-slack bus index, assembles B', solves B'*theta = P, and back-
// computes branch flows. Returns (nil, ErrEmptySystem) when there are no
// non-slack buses, and (nil, ErrSingularMatrix) when the B' factorization
// fails — both recoverable failures, not fatal to the process.
//
// Grounded on the original implementation's dc_approximation: same bus_map
// lookups, same slack-implicit-zero handling for branch endpoints, same
// P_sched sign convention (generation positive, load negative), and the
// same flow formula. B' itself is stamped with the opposite sign from the
// original (see admittance.BuildBPrime and DESIGN.md) to match spec.md's
// own literal S1/S2 worked examples and T1.
func DCApproximation(net *network.Network) (*DcSolution, error) {
	idx := network.BuildIndexTable(net)
	n := idx.NonSlackSize()
	if n == 0 {
		return nil, ErrEmptySystem
	}

	bPrime, err := admittance.BuildBPrime(net, idx)
	if err != nil {
		return nil, fmt.Errorf("solver: building B': %w", err)
	}

	// Injection vector P, in per-unit on the system base.
	for _, gen := range net.Generators() {
		if !gen.InService {
			continue
		}
		if i, ok := idx.NonSlackIndex(gen.BusID); ok {
			bPrime.AddRHS(i, gen.PGen/net.SBase)
		}
	}
	for _, load := range net.Loads() {
		if i, ok := idx.NonSlackIndex(load.BusID); ok {
			bPrime.AddRHS(i, -load.PLoad/net.SBase)
		}
	}

	if err := bPrime.Solve(); err != nil {
		return nil, fmt.Errorf("solver: %w", ErrSingularMatrix)
	}
	theta := bPrime.Solution() // theta[i+1] is the angle (radians) at non-slack index i

	busAngles := make(map[int]float64, len(net.Buses()))
	for _, bus := range net.Buses() {
		if !bus.InService {
			continue
		}
		if bus.Type == network.Slack {
			busAngles[bus.ID] = 0
			continue
		}
		if i, ok := idx.NonSlackIndex(bus.ID); ok {
			busAngles[bus.ID] = theta[i+1] * consts.DegPerRad
		}
	}

	branchFlows := make(map[int]float64)
	for _, br := range net.Branches() {
		if !br.InService || br.Reactance == 0 {
			continue
		}

		thetaI := busAngleRadians(idx, theta, br.FromBus)
		thetaJ := busAngleRadians(idx, theta, br.ToBus)

		branchFlows[br.ID] = (thetaI - thetaJ) / br.Reactance * net.SBase
	}

	return &DcSolution{BusAngles: busAngles, BranchFlows: branchFlows}, nil
}

// busAngleRadians returns the solved angle for a non-slack bus, or 0 for a
// slack bus (the DC solver never assigns slack buses a matrix index).
func busAngleRadians(idx *network.IndexTable, theta []float64, busID int) float64 {
	if i, ok := idx.NonSlackIndex(busID); ok {
		return theta[i+1]
	}
	return 0
}
