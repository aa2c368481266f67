package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/SklorGalore/mantis/pkg/network"
	"github.com/SklorGalore/mantis/pkg/solver"
	"github.com/SklorGalore/mantis/pkg/util"
)

func printDC(sol *solver.DcSolution) {
	fmt.Println("\nDC Load-Flow Results:")
	fmt.Println("=====================")

	fmt.Println("\nBus Angles:")
	ids := sortedKeys(sol.BusAngles)
	for _, id := range ids {
		fmt.Printf("  Bus %3d  Angle=%7.3f deg\n", id, sol.BusAngles[id])
	}

	fmt.Println("\nBranch Flows:")
	branchIDs := sortedKeys(sol.BranchFlows)
	for _, id := range branchIDs {
		fmt.Printf("  Branch %3d  %s\n", id, util.FormatPower(sol.BranchFlows[id], "MW"))
	}
}

func printAC(sol *solver.AcSolution) {
	fmt.Println("\nAC Newton-Raphson Results:")
	fmt.Println("==========================")
	fmt.Printf("Converged: %v\n", sol.Converged)

	fmt.Println("\nBus Voltages:")
	ids := sortedKeys(sol.BusVoltages)
	for _, id := range ids {
		fmt.Printf("  Bus %3d  %s\n", id, util.FormatVoltageAngle(sol.BusVoltages[id], sol.BusAngles[id]))
	}

	fmt.Println("\nIteration Log:")
	for _, line := range sol.Log {
		fmt.Printf("  %s\n", line)
	}
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// demoNetwork builds a small three-bus fixture case: a slack generator bus,
// a PV generator bus, and a PQ load bus, wired with two lines. Reading
// PSS/E-format case files is out of scope (spec Non-goal); this stands in
// for a parsed case so the solvers have something to run against.
func demoNetwork() *network.Network {
	net := network.New("demo-3bus", 100, 60)

	mustAdd(net.AddBus(network.Bus{
		ID: 1, Name: "SLACK", Type: network.Slack, NomVoltage: 230,
		InService: true, VoltageMagnitude: 1.0, VoltageAngle: 0,
		VMinOperating: 0.95, VMaxOperating: 1.05,
	}))
	mustAdd(net.AddBus(network.Bus{
		ID: 2, Name: "PV", Type: network.PV, NomVoltage: 230,
		InService: true, VoltageMagnitude: 1.02, VoltageAngle: 0,
		VMinOperating: 0.95, VMaxOperating: 1.05,
	}))
	mustAdd(net.AddBus(network.Bus{
		ID: 3, Name: "LOAD", Type: network.PQ, NomVoltage: 230,
		InService: true, VoltageMagnitude: 1.0, VoltageAngle: 0,
		VMinOperating: 0.95, VMaxOperating: 1.05,
	}))

	mustAdd(net.AddBranch(network.Branch{
		Type: network.Line, ID: 1, FromBus: 1, ToBus: 2, Name: "L1-2",
		InService: true, Resistance: 0.01, Reactance: 0.1,
		OperatingLimit: 200, ContingencyLimit: 250,
	}))
	mustAdd(net.AddBranch(network.Branch{
		Type: network.Line, ID: 2, FromBus: 2, ToBus: 3, Name: "L2-3",
		InService: true, Resistance: 0.01, Reactance: 0.1,
		OperatingLimit: 200, ContingencyLimit: 250,
	}))

	mustAdd(net.AddGenerator(network.Generator{
		ID: 1, BusID: 1, Name: "G1", InService: true,
		PGen: 0, QGen: 0, VSet: 1.0, PMin: 0, PMax: 300, QMin: -150, QMax: 150,
	}))
	mustAdd(net.AddGenerator(network.Generator{
		ID: 2, BusID: 2, Name: "G2", InService: true,
		PGen: 80, QGen: 0, VSet: 1.02, PMin: 0, PMax: 200, QMin: -100, QMax: 100,
	}))

	mustAdd(net.AddLoad(network.Load{ID: 1, BusID: 3, Name: "LD3", PLoad: 100, QLoad: 40}))

	return net
}

func mustAdd(err error) {
	if err != nil {
		log.Fatalf("building demo network: %v", err)
	}
}

func main() {
	mode := flag.String("mode", "both", "which solver to run: dc, ac, or both")
	flag.Parse()

	net := demoNetwork()
	fmt.Print(net)

	if *mode == "dc" || *mode == "both" {
		sol, err := solver.DCApproximation(net)
		if err != nil {
			log.Fatalf("DC load flow failed: %v", err)
		}
		printDC(sol)
	}

	if *mode == "ac" || *mode == "both" {
		sol, err := solver.NewtonRaphson(net)
		if err != nil {
			log.Printf("AC load flow did not converge cleanly: %v", err)
		}
		printAC(sol)
	}
}
