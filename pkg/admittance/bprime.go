package admittance

import (
	"github.com/SklorGalore/mantis/pkg/network"
	"github.com/SklorGalore/mantis/pkg/sparsekit"
)

// BuildBPrime assembles the reduced susceptance matrix B' used by the DC
// approximation (spec §4.2.1): each in-service branch with nonzero
// reactance contributes b = 1/X to the edge between its non-slack matrix
// indices (spec §8's S1/S2 literal scenarios pin this sign: a load at a
// non-slack bus must solve to a negative angle and a positive from-to
// flow). A branch with exactly one non-slack end only stamps its
// diagonal entry — the slack-end off-diagonal contribution is absorbed
// implicitly into the right-hand side by treating theta_slack as zero
// (spec §9, open question O5). Branches with X=0 or out of service are
// skipped (spec §4.2.1, T5), independent of resistance.
//
// idx must already be built over net (network.BuildIndexTable). The
// returned System has dimension idx.NonSlackSize().
func BuildBPrime(net *network.Network, idx *network.IndexTable) (*sparsekit.System, error) {
	n := idx.NonSlackSize()
	sys, err := sparsekit.NewSystem(n, false)
	if err != nil {
		return nil, err
	}

	for _, br := range net.Branches() {
		if !br.InService || br.Reactance == 0 {
			continue
		}

		b := 1.0 / br.Reactance

		i, iOK := idx.NonSlackIndex(br.FromBus)
		j, jOK := idx.NonSlackIndex(br.ToBus)

		switch {
		case iOK && jOK:
			sys.Add(i, i, b)
			sys.Add(j, j, b)
			sys.Add(i, j, -b)
			sys.Add(j, i, -b)
		case iOK:
			// to-bus is slack: its column is absorbed into the RHS.
			sys.Add(i, i, b)
		case jOK:
			// from-bus is slack.
			sys.Add(j, j, b)
		}
	}

	return sys, nil
}
