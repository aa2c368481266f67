package solver

import (
	"math"

	"github.com/SklorGalore/mantis/pkg/network"
	"github.com/SklorGalore/mantis/pkg/sparsekit"
	"gonum.org/v1/gonum/mat"
)

// nrState carries everything one Newton-Raphson iteration needs: the solved
// Y-bus, the bus-index tables, and the present voltage/angle arrays, all
// indexed by full bus index (spec §4.4).
type nrState struct {
	yBus  *sparsekit.System
	idx   *network.IndexTable
	v     []float64 // per full index, pu
	delta []float64 // per full index, radians

	pSched []float64 // per full index, pu (only non-slack entries are read)
	qSched []float64 // per full index, pu (only PQ entries are read)
}

// injections computes P_calc and Q_calc at every full bus index from the
// present voltage/angle state, summing over every other bus via the
// assembled Y-bus (spec §4.4's power-balance equations in polar form).
func (st *nrState) injections() (pCalc, qCalc []float64) {
	n := st.idx.FullSize()
	pCalc = make([]float64, n)
	qCalc = make([]float64, n)
	for i := 0; i < n; i++ {
		var p, q float64
		for k := 0; k < n; k++ {
			g, b := st.yBus.Get(i, k)
			cos := math.Cos(st.delta[i] - st.delta[k])
			sin := math.Sin(st.delta[i] - st.delta[k])
			p += st.v[k] * (g*cos + b*sin)
			q += st.v[k] * (g*sin - b*cos)
		}
		pCalc[i] = st.v[i] * p
		qCalc[i] = st.v[i] * q
	}
	return pCalc, qCalc
}

// mismatch builds the stacked mismatch vector: ΔP over non-slack buses
// (insertion order) followed by ΔQ over PQ buses (insertion order), per
// spec §4.4's pq_bus_to_idx-qualified layout.
func (st *nrState) mismatch(pCalc, qCalc []float64) *mat.VecDense {
	nNS := st.idx.NonSlackSize()
	nPQ := st.idx.PQSize()
	d := make([]float64, nNS+nPQ)

	for s, busID := range st.idx.NonSlackBusIDs() {
		i, _ := st.idx.FullIndex(busID)
		d[s] = st.pSched[i] - pCalc[i]
	}
	for s, busID := range st.idx.PQBusIDs() {
		i, _ := st.idx.FullIndex(busID)
		d[nNS+s] = st.qSched[i] - qCalc[i]
	}
	return mat.NewVecDense(len(d), d)
}

// jacobian assembles the 2x2 block Jacobian (spec §4.4): J11 = dP/dδ,
// J12 = dP/d|V|, J21 = dQ/dδ, J22 = dQ/d|V|, the voltage-column blocks
// (J12, J22) scaled by V so that the solved correction is ΔV/V rather than
// ΔV directly.
func (st *nrState) jacobian(pCalc, qCalc []float64) *mat.Dense {
	nNS := st.idx.NonSlackSize()
	nPQ := st.idx.PQSize()
	size := nNS + nPQ
	j := mat.NewDense(size, size, nil)

	nonSlack := st.idx.NonSlackBusIDs()
	pqBuses := st.idx.PQBusIDs()

	for row, busI := range nonSlack {
		i, _ := st.idx.FullIndex(busI)
		for col, busK := range nonSlack {
			k, _ := st.idx.FullIndex(busK)
			var val float64
			if i == k {
				_, bii := st.yBus.Get(i, i)
				val = -qCalc[i] - st.v[i]*st.v[i]*bii
			} else {
				g, b := st.yBus.Get(i, k)
				cos := math.Cos(st.delta[i] - st.delta[k])
				sin := math.Sin(st.delta[i] - st.delta[k])
				val = -st.v[i] * st.v[k] * (g*sin - b*cos)
			}
			j.Set(row, col, val)
		}
		for col, busK := range pqBuses {
			k, _ := st.idx.FullIndex(busK)
			var val float64
			if i == k {
				gii, _ := st.yBus.Get(i, i)
				val = pCalc[i]/st.v[i] + st.v[i]*gii
			} else {
				g, b := st.yBus.Get(i, k)
				cos := math.Cos(st.delta[i] - st.delta[k])
				sin := math.Sin(st.delta[i] - st.delta[k])
				val = st.v[i] * (g*cos + b*sin)
			}
			j.Set(row, nNS+col, val)
		}
	}

	for row, busI := range pqBuses {
		i, _ := st.idx.FullIndex(busI)
		for col, busK := range nonSlack {
			k, _ := st.idx.FullIndex(busK)
			var val float64
			if i == k {
				gii, _ := st.yBus.Get(i, i)
				val = pCalc[i] - st.v[i]*st.v[i]*gii
			} else {
				g, b := st.yBus.Get(i, k)
				cos := math.Cos(st.delta[i] - st.delta[k])
				sin := math.Sin(st.delta[i] - st.delta[k])
				val = st.v[i] * st.v[k] * (g*cos + b*sin)
			}
			j.Set(nNS+row, col, val)
		}
		for col, busK := range pqBuses {
			k, _ := st.idx.FullIndex(busK)
			var val float64
			if i == k {
				_, bii := st.yBus.Get(i, i)
				val = qCalc[i]/st.v[i] - st.v[i]*bii
			} else {
				g, b := st.yBus.Get(i, k)
				cos := math.Cos(st.delta[i] - st.delta[k])
				sin := math.Sin(st.delta[i] - st.delta[k])
				val = st.v[i] * (g*sin - b*cos)
			}
			j.Set(nNS+row, nNS+col, val)
		}
	}

	return j
}

// solveCorrection solves J*x = mismatch via QR factorization, the
// decomposition gonum.org/v1/gonum/mat exposes directly (spec §9 notes the
// Jacobian may be "assembled into one dense matrix for the solve"). A
// mat.Condition error — ill-conditioned or singular J — is reported to the
// caller as ErrSingularMatrix.
func solveCorrection(j *mat.Dense, rhs *mat.VecDense) (*mat.VecDense, error) {
	var qr mat.QR
	qr.Factorize(j)

	x := mat.NewVecDense(rhs.Len(), nil)
	if err := qr.SolveVec(x, false, rhs); err != nil {
		return nil, ErrSingularMatrix
	}
	return x, nil
}
