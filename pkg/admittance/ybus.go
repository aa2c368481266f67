package admittance

import (
	"github.com/SklorGalore/mantis/pkg/network"
	"github.com/SklorGalore/mantis/pkg/sparsekit"
)

// BuildYBus assembles the complex nodal admittance matrix Y used by the
// Newton-Raphson solver (spec §4.2.2). It covers all in-service branches
// (regardless of slack status, unlike B') and all in-service fixed shunts.
// Tap ratio and phase shift are stored on Branch but not applied here
// (spec §9, open question O1) — a tap/phase-shifter-aware assembly would
// scale the off-diagonal by 1/(a*e^{j*phi}) and adjust the self-admittances
// accordingly, but that is an enhancement gated by explicit sign-off, not
// implemented in the source this is grounded on.
//
// SwitchedShunt step-bank admittance is never added here (open question
// O2): only FixedShunt contributes shunt admittance.
//
// idx must already be built over net. The returned System has dimension
// idx.FullSize() and is backed by a complex sparsekit.System.
func BuildYBus(net *network.Network, idx *network.IndexTable) (*sparsekit.System, error) {
	n := idx.FullSize()
	sys, err := sparsekit.NewSystem(n, true)
	if err != nil {
		return nil, err
	}

	for _, br := range net.Branches() {
		if !br.InService || br.ExcludedFromAdmittance() {
			continue
		}

		i, iOK := idx.FullIndex(br.FromBus)
		j, jOK := idx.FullIndex(br.ToBus)
		if !iOK || !jOK {
			continue
		}

		z := complex(br.Resistance, br.Reactance)
		var ySeries complex128
		if real(z)*real(z)+imag(z)*imag(z) > 0 {
			ySeries = 1 / z
		}

		sys.AddComplex(i, i, real(ySeries)+br.FromShuntG, imag(ySeries)+br.FromShuntB)
		sys.AddComplex(j, j, real(ySeries)+br.ToShuntG, imag(ySeries)+br.ToShuntB)
		sys.AddComplex(i, j, -real(ySeries), -imag(ySeries))
		sys.AddComplex(j, i, -real(ySeries), -imag(ySeries))
	}

	for _, sh := range net.FixedShunts() {
		if !sh.InService {
			continue
		}
		k, ok := idx.FullIndex(sh.BusID)
		if !ok {
			continue
		}
		sys.AddComplex(k, k, sh.GL/net.SBase, sh.BL/net.SBase)
	}

	return sys, nil
}
