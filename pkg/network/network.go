package network

import (
	"fmt"

	"github.com/SklorGalore/mantis/internal/consts"
)

// Network is a complete grid case: entities plus case-level metadata. Bus
// order (the order buses were added via AddBus) is significant — it is the
// insertion order IndexTable uses to assign matrix rows/columns.
type Network struct {
	Name      string
	SBase     float64
	Frequency float64

	buses       []Bus
	busByID     map[int]int // bus id -> index into buses, insertion order preserved
	branches    []Branch
	generators  []Generator
	loads       []Load
	shunts      []FixedShunt
	swShunts    []SwitchedShunt
	areas       []Area
	zones       []Zone
}

// New creates an empty Network with the given case name and system base.
// A zero sBase is replaced with consts.SBaseDefault.
func New(name string, sBase, frequency float64) *Network {
	if sBase == 0 {
		sBase = consts.SBaseDefault
	}
	return &Network{
		Name:      name,
		SBase:     sBase,
		Frequency: frequency,
		busByID:   make(map[int]int),
	}
}

// AddBus appends a bus, preserving insertion order. Returns an error if
// bus_id is not unique (spec §3 invariant).
func (n *Network) AddBus(b Bus) error {
	if _, exists := n.busByID[b.ID]; exists {
		return fmt.Errorf("network: duplicate bus id %d", b.ID)
	}
	n.busByID[b.ID] = len(n.buses)
	n.buses = append(n.buses, b)
	return nil
}

// AddBranch appends a branch after validating that both endpoints resolve
// to existing buses (spec §6.1). A zero TapRatio is stored as 1.0.
func (n *Network) AddBranch(br Branch) error {
	if _, ok := n.busByID[br.FromBus]; !ok {
		return fmt.Errorf("network: branch %d references unknown from_bus %d", br.ID, br.FromBus)
	}
	if _, ok := n.busByID[br.ToBus]; !ok {
		return fmt.Errorf("network: branch %d references unknown to_bus %d", br.ID, br.ToBus)
	}
	if br.TapRatio == 0 {
		br.TapRatio = 1.0
	}
	n.branches = append(n.branches, br)
	return nil
}

// AddGenerator appends a generator after validating its bus reference.
func (n *Network) AddGenerator(g Generator) error {
	if _, ok := n.busByID[g.BusID]; !ok {
		return fmt.Errorf("network: generator %d references unknown bus %d", g.ID, g.BusID)
	}
	n.generators = append(n.generators, g)
	return nil
}

// AddLoad appends a load after validating its bus reference.
func (n *Network) AddLoad(l Load) error {
	if _, ok := n.busByID[l.BusID]; !ok {
		return fmt.Errorf("network: load %d references unknown bus %d", l.ID, l.BusID)
	}
	n.loads = append(n.loads, l)
	return nil
}

// AddFixedShunt appends a fixed shunt after validating its bus reference.
func (n *Network) AddFixedShunt(s FixedShunt) error {
	if _, ok := n.busByID[s.BusID]; !ok {
		return fmt.Errorf("network: fixed shunt %d references unknown bus %d", s.ID, s.BusID)
	}
	n.shunts = append(n.shunts, s)
	return nil
}

// AddSwitchedShunt appends a switched shunt after validating its bus
// reference. Not applied by the solver core (open question O2).
func (n *Network) AddSwitchedShunt(s SwitchedShunt) error {
	if _, ok := n.busByID[s.BusID]; !ok {
		return fmt.Errorf("network: switched shunt %d references unknown bus %d", s.ID, s.BusID)
	}
	n.swShunts = append(n.swShunts, s)
	return nil
}

func (n *Network) AddArea(a Area) { n.areas = append(n.areas, a) }
func (n *Network) AddZone(z Zone) { n.zones = append(n.zones, z) }

// Buses returns all buses in insertion order. Callers must not mutate the
// returned slice's backing array through indices beyond len.
func (n *Network) Buses() []Bus { return n.buses }

// BusByID returns the bus with the given id and whether it was found.
func (n *Network) BusByID(id int) (Bus, bool) {
	idx, ok := n.busByID[id]
	if !ok {
		return Bus{}, false
	}
	return n.buses[idx], true
}

// SetBus overwrites the bus with the given id (used to write solver results
// back onto the entity for reporting, per spec §3 lifecycle). No-op if the
// id is unknown.
func (n *Network) SetBus(b Bus) {
	if idx, ok := n.busByID[b.ID]; ok {
		n.buses[idx] = b
	}
}

func (n *Network) Branches() []Branch       { return n.branches }
func (n *Network) Generators() []Generator  { return n.generators }
func (n *Network) Loads() []Load            { return n.loads }
func (n *Network) FixedShunts() []FixedShunt { return n.shunts }
func (n *Network) SwitchedShunts() []SwitchedShunt { return n.swShunts }
func (n *Network) Areas() []Area            { return n.areas }
func (n *Network) Zones() []Zone            { return n.zones }

// SlackBuses returns the in-service buses typed Slack, in insertion order.
func (n *Network) SlackBuses() []Bus {
	var out []Bus
	for _, b := range n.buses {
		if b.Type == Slack && b.InService {
			out = append(out, b)
		}
	}
	return out
}

// Snapshot returns a shallow value copy of the Network, suitable for
// handing to a solver without the caller needing to hold a lock for the
// duration of the solve (spec §5: a solve is a pure function over a
// snapshot). Entity slices are copied; nothing deeper is.
func (n *Network) Snapshot() *Network {
	cp := &Network{
		Name:      n.Name,
		SBase:     n.SBase,
		Frequency: n.Frequency,
		busByID:   make(map[int]int, len(n.busByID)),
	}
	cp.buses = append(cp.buses, n.buses...)
	cp.branches = append(cp.branches, n.branches...)
	cp.generators = append(cp.generators, n.generators...)
	cp.loads = append(cp.loads, n.loads...)
	cp.shunts = append(cp.shunts, n.shunts...)
	cp.swShunts = append(cp.swShunts, n.swShunts...)
	cp.areas = append(cp.areas, n.areas...)
	cp.zones = append(cp.zones, n.zones...)
	for id, idx := range n.busByID {
		cp.busByID[id] = idx
	}
	return cp
}
