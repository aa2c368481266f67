// Package network holds the grid data model: buses, branches, generators,
// loads, shunts, and the index tables a solver needs to map bus ids onto
// matrix rows/columns.
package network

import "fmt"

// BusType classifies a Bus for solver purposes.
type BusType int

const (
	PQ    BusType = iota // load bus
	PV                   // voltage-controlled (generator) bus
	Slack                // reference/swing bus
	OOS                  // out of service
)

func (t BusType) String() string {
	switch t {
	case Slack:
		return "REF"
	case PV:
		return "P-V"
	case PQ:
		return "P-Q"
	case OOS:
		return "OOS"
	default:
		return "???"
	}
}

// Bus is a network node.
type Bus struct {
	ID   int
	Name string
	Type BusType

	NomVoltage float64 // kV
	InService  bool

	VoltageMagnitude float64 // pu
	VoltageAngle     float64 // degrees (converted to radians at the solver boundary)

	ShuntG float64 // pu, at the bus
	ShuntB float64 // pu, at the bus

	VMinOperating   float64
	VMaxOperating   float64
	VMinContingency float64
	VMaxContingency float64
}

func (b Bus) String() string {
	return fmt.Sprintf("Bus %3d %-14s %s %8.2f kV  |V|=%.6f  Angle=%9.6f",
		b.ID, b.Name, b.Type, b.NomVoltage, b.VoltageMagnitude, b.VoltageAngle)
}

// BranchType distinguishes a transmission line from a two-winding
// transformer. Three-winding transformers are modeled as passthrough
// two-winding branches (spec Non-goal).
type BranchType int

const (
	Line BranchType = iota
	TwoWinding
)

func (t BranchType) String() string {
	if t == TwoWinding {
		return "Xfmr"
	}
	return "Line"
}

// Branch is a transmission line or two-winding transformer.
type Branch struct {
	Type      BranchType
	ID        int
	FromBus   int
	ToBus     int
	Name      string
	InService bool

	Resistance float64 // pu
	Reactance  float64 // pu

	FromShuntG float64 // pu, half line-charging + fixed shunt on the from end
	FromShuntB float64
	ToShuntG   float64
	ToShuntB   float64

	TapRatio   float64 // unitless, default 1.0 (not applied in BuildYBus, see O1)
	PhaseShift float64 // radians (not applied in BuildYBus, see O1)

	OperatingLimit   float64 // MVA/MW rating
	ContingencyLimit float64
}

// ExcludedFromAdmittance reports whether this branch must not contribute to
// B' or Y-bus: out of service, or the degenerate R=X=0 case (spec §3).
func (br Branch) ExcludedFromAdmittance() bool {
	return !br.InService || (br.Reactance == 0 && br.Resistance == 0)
}

func (br Branch) String() string {
	return fmt.Sprintf("Type: %-4s Id: %3d Name: %-16s From->To: %3d -> %-3d  R=%10.6f  X=%10.6f  Tap=%.4f  RateA=%7.1f RateB=%7.1f",
		br.Type, br.ID, br.Name, br.FromBus, br.ToBus, br.Resistance, br.Reactance, br.TapRatio, br.OperatingLimit, br.ContingencyLimit)
}

// Generator is a real/reactive power injection in service at a bus.
type Generator struct {
	ID        int
	BusID     int
	Name      string
	InService bool

	PGen float64 // MW
	QGen float64 // MVAR
	VSet float64 // pu voltage setpoint

	PMin, PMax float64
	QMin, QMax float64
}

func (g Generator) String() string {
	return fmt.Sprintf("Gen %3d %-16s Bus %3d  P=%9.3f MW  Q=%9.3f MVAR  Vset=%.5f",
		g.ID, g.Name, g.BusID, g.PGen, g.QGen, g.VSet)
}

// Load is a constant-power PQ injection, modeled with a negative sign
// relative to generation.
type Load struct {
	ID    int
	BusID int
	Name  string

	PLoad float64 // MW
	QLoad float64 // MVAR
}

func (l Load) String() string {
	return fmt.Sprintf("Load %3d %-20s P=%9.3f MW  Q=%9.3f MVAR",
		l.ID, l.Name, l.PLoad, l.QLoad)
}

// FixedShunt contributes diagonal admittance (GL+jBL)/SBase to Y-bus when
// in service.
type FixedShunt struct {
	ID        int
	BusID     int
	Name      string
	InService bool

	GL float64 // MW at 1.0 pu
	BL float64 // MVAR at 1.0 pu, positive = capacitive
}

// SwitchedShuntBank is one step bank of a SwitchedShunt.
type SwitchedShuntBank struct {
	Steps           int
	StepSusceptance float64 // MVAR per step at 1.0 pu
}

// SwitchedShunt is persisted in the data model with step banks, but is not
// applied by BuildYBus or either solver (spec §3, open question O2).
type SwitchedShunt struct {
	ID        int
	BusID     int
	Name      string
	InService bool
	Banks     []SwitchedShuntBank
}

// MaxSusceptance sums steps*per-step susceptance over the positive
// (capacitor) banks only.
func (s SwitchedShunt) MaxSusceptance() float64 {
	var total float64
	for _, bank := range s.Banks {
		if bank.StepSusceptance > 0 {
			total += float64(bank.Steps) * bank.StepSusceptance
		}
	}
	return total
}

// MinSusceptance sums the negative (reactor) banks only.
func (s SwitchedShunt) MinSusceptance() float64 {
	var total float64
	for _, bank := range s.Banks {
		if bank.StepSusceptance < 0 {
			total += float64(bank.Steps) * bank.StepSusceptance
		}
	}
	return total
}

// Area and Zone are persisted grouping entities; neither participates in
// any solver computation (area interchange balancing is a Non-goal).
type Area struct {
	ID   int
	Name string
}

type Zone struct {
	ID   int
	Name string
}
