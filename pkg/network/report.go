package network

import (
	"fmt"
	"strings"
)

// String renders a human-readable case summary: header, then each entity
// section. Grounded on the original case model's Display formatting
// (case-name/Sbase/frequency header, one block per entity kind).
func (n *Network) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Case: %s  Sbase: %g MVA  Frequency: %g Hz\n", n.Name, n.SBase, n.Frequency)
	fmt.Fprintf(&b, "%d buses, %d loads, %d generators, %d branches\n\n",
		len(n.buses), len(n.loads), len(n.generators), len(n.branches))

	b.WriteString("=== Buses ===\n")
	for _, bus := range n.buses {
		fmt.Fprintf(&b, "  %s\n", bus)
	}

	b.WriteString("\n=== Loads ===\n")
	for _, l := range n.loads {
		fmt.Fprintf(&b, "  %s\n", l)
	}

	b.WriteString("\n=== Generators ===\n")
	for _, g := range n.generators {
		fmt.Fprintf(&b, "  %s\n", g)
	}

	b.WriteString("\n=== Branches ===\n")
	for _, br := range n.branches {
		fmt.Fprintf(&b, "  %s\n", br)
	}

	return b.String()
}
