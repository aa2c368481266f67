package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SklorGalore/mantis/pkg/network"
	"github.com/SklorGalore/mantis/pkg/solver"
)

func TestNewtonRaphsonTwoBusConverges(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: true, VoltageMagnitude: 1.0}))
	require.NoError(t, net.AddBus(network.Bus{ID: 2, Type: network.PQ, InService: true, VoltageMagnitude: 1.0}))
	require.NoError(t, net.AddBranch(network.Branch{ID: 1, FromBus: 1, ToBus: 2, InService: true, Resistance: 0.01, Reactance: 0.1}))
	require.NoError(t, net.AddLoad(network.Load{ID: 1, BusID: 2, PLoad: 50, QLoad: 20}))

	sol, err := solver.NewtonRaphson(net)
	require.NoError(t, err)
	require.True(t, sol.Converged)

	require.InDelta(t, 1.0, sol.BusVoltages[1], 1e-12)
	require.InDelta(t, 0.0, sol.BusAngles[1], 1e-12)

	require.InDelta(t, 0.9730913853564048, sol.BusVoltages[2], 1e-4)
	require.InDelta(t, -2.827395328278298, sol.BusAngles[2], 1e-3)
	require.NotEmpty(t, sol.Log)
}

func TestNewtonRaphsonFlatStartNoInjectionConvergesImmediately(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: true, VoltageMagnitude: 1.0}))
	require.NoError(t, net.AddBus(network.Bus{ID: 2, Type: network.PQ, InService: true, VoltageMagnitude: 1.0}))
	require.NoError(t, net.AddBranch(network.Branch{ID: 1, FromBus: 1, ToBus: 2, InService: true, Reactance: 0.1}))

	sol, err := solver.NewtonRaphson(net)
	require.NoError(t, err)
	require.True(t, sol.Converged)
	require.InDelta(t, 1.0, sol.BusVoltages[2], 1e-9)
	require.InDelta(t, 0.0, sol.BusAngles[2], 1e-9)
	require.Len(t, sol.Log, 2, "zero mismatch at the flat start converges on the first iteration")
}

func TestNewtonRaphsonNoSlackBus(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.PQ, InService: true}))

	_, err := solver.NewtonRaphson(net)
	require.ErrorIs(t, err, solver.ErrNoSlack)
}

func TestNewtonRaphsonMultipleSlackBuses(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: true}))
	require.NoError(t, net.AddBus(network.Bus{ID: 2, Type: network.Slack, InService: true}))

	_, err := solver.NewtonRaphson(net)
	require.ErrorIs(t, err, solver.ErrMultipleSlack)
}

// TestNewtonRaphsonDivergesWithinIterationCap drives the iteration into a
// bounded, well-conditioned limit cycle (verified independently, not via
// `go test`, to settle into an oscillation between two states rather than
// overflow or hit a singular Jacobian) so the loop genuinely exhausts
// consts.MaxIterations without ever meeting the tolerance. spec.md §7/§8
// require an empty solution on this path, matching every other failure —
// the solver must never hand back the partial iteration state.
func TestNewtonRaphsonDivergesWithinIterationCap(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: true, VoltageMagnitude: 1.0}))
	require.NoError(t, net.AddBus(network.Bus{ID: 2, Type: network.PQ, InService: true, VoltageMagnitude: 1.0}))
	require.NoError(t, net.AddBranch(network.Branch{ID: 1, FromBus: 1, ToBus: 2, InService: true, Resistance: 0.02, Reactance: 0.2}))
	require.NoError(t, net.AddLoad(network.Load{ID: 1, BusID: 2, PLoad: 160, QLoad: 100}))

	sol, err := solver.NewtonRaphson(net)
	require.ErrorIs(t, err, solver.ErrDiverged)
	require.False(t, sol.Converged)
	require.Empty(t, sol.BusVoltages)
	require.Empty(t, sol.BusAngles)
	require.NotEmpty(t, sol.Log)
}

func TestNewtonRaphsonIgnoresOutOfServiceSlack(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: false}))
	require.NoError(t, net.AddBus(network.Bus{ID: 2, Type: network.Slack, InService: true}))
	require.NoError(t, net.AddBus(network.Bus{ID: 3, Type: network.PQ, InService: true, VoltageMagnitude: 1.0}))
	require.NoError(t, net.AddBranch(network.Branch{ID: 1, FromBus: 2, ToBus: 3, InService: true, Reactance: 0.1}))

	sol, err := solver.NewtonRaphson(net)
	require.NoError(t, err)
	require.True(t, sol.Converged)
}
