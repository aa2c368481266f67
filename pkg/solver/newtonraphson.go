package solver

import (
	"math"

	"github.com/SklorGalore/mantis/internal/consts"
	"github.com/SklorGalore/mantis/pkg/admittance"
	"github.com/SklorGalore/mantis/pkg/network"
)

// NewtonRaphson runs the full AC Newton-Raphson load flow (spec §4.4):
// builds Y-bus, seeds the slack bus at 1.0 pu / 0 rad and every other bus
// from its stored voltage magnitude and angle, and iterates the polar-form
// power-balance correction until the infinity-norm of the state correction
// drops below consts.Epsilon or consts.MaxIterations is exhausted.
//
// Returns an empty AcSolution (Log only) with ErrNoSlack / ErrMultipleSlack
// when the slack count isn't exactly one — both checked before any matrix
// work, since neither
// the index tables nor Y-bus assembly are meaningful without a unique
// reference bus. A failed iteration (singular Jacobian, non-convergence)
// is reported both as a non-nil error and through AcSolution.Log; on every
// failure path BusVoltages/BusAngles are left empty (spec §7, §8) — the
// solver never exposes a partially-converged state as if it were usable.
func NewtonRaphson(net *network.Network) (*AcSolution, error) {
	var log Log

	slacks := net.SlackBuses()
	if len(slacks) == 0 {
		log.Add("no in-service slack bus")
		return &AcSolution{Log: log}, ErrNoSlack
	}
	if len(slacks) > 1 {
		log.Add("%d in-service slack buses, expected exactly 1", len(slacks))
		return &AcSolution{Log: log}, ErrMultipleSlack
	}

	idx := network.BuildIndexTable(net)
	yBus, err := admittance.BuildYBus(net, idx)
	if err != nil {
		return &AcSolution{Log: log}, err
	}

	st := &nrState{
		yBus:   yBus,
		idx:    idx,
		v:      make([]float64, idx.FullSize()),
		delta:  make([]float64, idx.FullSize()),
		pSched: make([]float64, idx.FullSize()),
		qSched: make([]float64, idx.FullSize()),
	}

	buses := make(map[int]network.Bus, len(net.Buses()))
	for _, b := range net.Buses() {
		buses[b.ID] = b
	}

	for _, busID := range idx.FullBusIDs() {
		i, _ := idx.FullIndex(busID)
		b := buses[busID]
		if b.Type == network.Slack {
			st.v[i] = consts.SlackVoltage
			st.delta[i] = consts.SlackAngle
			continue
		}
		st.v[i] = b.VoltageMagnitude
		st.delta[i] = b.VoltageAngle * consts.RadPerDeg
	}

	for _, gen := range net.Generators() {
		if !gen.InService {
			continue
		}
		if i, ok := idx.FullIndex(gen.BusID); ok {
			st.pSched[i] += gen.PGen / net.SBase
			st.qSched[i] += gen.QGen / net.SBase
		}
	}
	for _, load := range net.Loads() {
		if i, ok := idx.FullIndex(load.BusID); ok {
			st.pSched[i] -= load.PLoad / net.SBase
			st.qSched[i] -= load.QLoad / net.SBase
		}
	}

	nNS := idx.NonSlackSize()
	nPQ := idx.PQSize()
	if nNS == 0 {
		log.Add("no non-slack buses to solve")
		return &AcSolution{Log: log}, ErrEmptySystem
	}

	for iter := 0; iter < consts.MaxIterations; iter++ {
		pCalc, qCalc := st.injections()
		rhs := st.mismatch(pCalc, qCalc)
		maxMismatch := infNorm(rhs.RawVector().Data)
		log.Add("iteration %d: max mismatch %.6e", iter, maxMismatch)

		j := st.jacobian(pCalc, qCalc)
		x, err := solveCorrection(j, rhs)
		if err != nil {
			log.Add("singular Jacobian at iteration %d", iter)
			return &AcSolution{Log: log}, ErrSingularMatrix
		}

		maxCorrection := 0.0
		for s, busID := range idx.NonSlackBusIDs() {
			i, _ := idx.FullIndex(busID)
			corr := x.AtVec(s)
			st.delta[i] += corr
			if a := math.Abs(corr); a > maxCorrection {
				maxCorrection = a
			}
			if pqSlot, ok := idx.PQIndex(busID); ok {
				vCorr := x.AtVec(nNS + pqSlot)
				st.v[i] *= 1 + vCorr
				if a := math.Abs(vCorr); a > maxCorrection {
					maxCorrection = a
				}
			}
		}

		if maxCorrection < consts.Epsilon {
			log.Add("converged after %d iterations", iter+1)
			return buildAcSolution(st, idx, log), nil
		}
	}

	// Iteration cap exhausted without meeting tolerance (spec §7, §8): the
	// solution is empty, not a partial/best-effort state — matching every
	// other failure path (no slack, multiple slack, singular Jacobian).
	log.Add("failed to converge within %d iterations", consts.MaxIterations)
	return &AcSolution{Log: log, Converged: false}, ErrDiverged
}

// buildAcSolution converts the solver's internal radian/full-index state
// back into the bus-id-keyed, degree-reporting shape callers expect (spec
// §9's domain-boundary-only degree conversion). Only called on convergence
// — every failure path returns an empty AcSolution directly.
func buildAcSolution(st *nrState, idx *network.IndexTable, log Log) *AcSolution {
	voltages := make(map[int]float64, idx.FullSize())
	angles := make(map[int]float64, idx.FullSize())
	for _, busID := range idx.FullBusIDs() {
		i, _ := idx.FullIndex(busID)
		voltages[busID] = st.v[i]
		angles[busID] = st.delta[i] * consts.DegPerRad
	}
	return &AcSolution{
		BusVoltages: voltages,
		BusAngles:   angles,
		Log:         log,
		Converged:   true,
	}
}

func infNorm(v []float64) float64 {
	var max float64
	for _, x := range v {
		if a := math.Abs(x); a > max {
			max = a
		}
	}
	return max
}
