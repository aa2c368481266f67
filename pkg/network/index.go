package network

// IndexTable holds the two bus-id-to-matrix-index mappings the solvers
// need (spec §3, §9): one over non-slack buses only (used by the DC
// solver), one over every in-service bus (used by Y-bus and the NR
// solver). Both are assigned in the network's bus insertion order, and
// rebuilding either is idempotent: the same Network always produces the
// same mapping, and the image is exactly [0, n) with no gaps (spec T6).
type IndexTable struct {
	busMap        map[int]int // bus id -> non-slack matrix index
	fullBusIdxMap map[int]int // bus id -> full matrix index (slack included)
	nonSlackOrder []int       // bus ids, in the order busMap assigned them
	fullOrder     []int       // bus ids, in the order fullBusIdxMap assigned them

	// pqMap/pqOrder are the per-iteration helper map the NR solver needs
	// (spec §4.4): every PQ bus, insertion order, PV and OOS excluded.
	// Kept alongside the two solver-shared tables rather than folded into
	// them, since only Newton-Raphson ever consults it.
	pqMap   map[int]int
	pqOrder []int
}

// BuildIndexTable walks the network's buses once, in insertion order, and
// assigns both index tables. Out-of-service buses are excluded from both
// tables: they contribute nothing to any matrix.
func BuildIndexTable(n *Network) *IndexTable {
	idx := &IndexTable{
		busMap:        make(map[int]int),
		fullBusIdxMap: make(map[int]int),
		pqMap:         make(map[int]int),
	}
	for _, b := range n.Buses() {
		if !b.InService || b.Type == OOS {
			continue
		}
		idx.fullBusIdxMap[b.ID] = len(idx.fullOrder)
		idx.fullOrder = append(idx.fullOrder, b.ID)

		if b.Type != Slack {
			idx.busMap[b.ID] = len(idx.nonSlackOrder)
			idx.nonSlackOrder = append(idx.nonSlackOrder, b.ID)
		}

		if b.Type == PQ {
			idx.pqMap[b.ID] = len(idx.pqOrder)
			idx.pqOrder = append(idx.pqOrder, b.ID)
		}
	}
	return idx
}

// NonSlackIndex returns the DC-solver matrix index for a bus id.
func (t *IndexTable) NonSlackIndex(busID int) (int, bool) {
	i, ok := t.busMap[busID]
	return i, ok
}

// FullIndex returns the full matrix index (every in-service bus, slack
// included) for a bus id.
func (t *IndexTable) FullIndex(busID int) (int, bool) {
	i, ok := t.fullBusIdxMap[busID]
	return i, ok
}

// NonSlackSize is the dimension N of the DC B' system: the number of
// non-slack, in-service buses.
func (t *IndexTable) NonSlackSize() int { return len(t.nonSlackOrder) }

// FullSize is the number of in-service buses, slack included.
func (t *IndexTable) FullSize() int { return len(t.fullOrder) }

// NonSlackBusIDs returns the non-slack bus ids in assignment order —
// index i in the returned slice corresponds to matrix index i.
func (t *IndexTable) NonSlackBusIDs() []int { return t.nonSlackOrder }

// FullBusIDs returns all in-service bus ids in assignment order.
func (t *IndexTable) FullBusIDs() []int { return t.fullOrder }

// PQIndex returns the PQ-only matrix index for a bus id (spec §4.4's
// pq_bus_to_idx): used for the NR voltage-correction Jacobian columns and
// the reactive mismatch rows. PV, slack, and OOS buses are absent.
func (t *IndexTable) PQIndex(busID int) (int, bool) {
	i, ok := t.pqMap[busID]
	return i, ok
}

// PQSize is the number of PQ buses — the dimension of the NR reactive
// mismatch block.
func (t *IndexTable) PQSize() int { return len(t.pqOrder) }

// PQBusIDs returns the PQ bus ids in assignment order.
func (t *IndexTable) PQBusIDs() []int { return t.pqOrder }
