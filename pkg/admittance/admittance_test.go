package admittance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SklorGalore/mantis/pkg/admittance"
	"github.com/SklorGalore/mantis/pkg/network"
)

func twoBusOneLine(t *testing.T) *network.Network {
	t.Helper()
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: true, VoltageMagnitude: 1.0}))
	require.NoError(t, net.AddBus(network.Bus{ID: 2, Type: network.PQ, InService: true, VoltageMagnitude: 1.0}))
	require.NoError(t, net.AddBranch(network.Branch{
		ID: 1, FromBus: 1, ToBus: 2, InService: true, Resistance: 0, Reactance: 0.1,
	}))
	return net
}

func TestBuildBPrimeSkipsSlackColumn(t *testing.T) {
	net := twoBusOneLine(t)
	idx := network.BuildIndexTable(net)

	sys, err := admittance.BuildBPrime(net, idx)
	require.NoError(t, err)
	require.Equal(t, 1, sys.Size(), "only the non-slack bus gets a row")

	real, _ := sys.Get(0, 0)
	require.InDelta(t, 10.0, real, 1e-9, "b = 1/X stamped onto the lone non-slack diagonal")
}

func TestBuildBPrimeSkipsZeroReactanceBranch(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: true}))
	require.NoError(t, net.AddBus(network.Bus{ID: 2, Type: network.PQ, InService: true}))
	require.NoError(t, net.AddBranch(network.Branch{ID: 1, FromBus: 1, ToBus: 2, InService: true, Resistance: 0.02, Reactance: 0}))

	idx := network.BuildIndexTable(net)
	sys, err := admittance.BuildBPrime(net, idx)
	require.NoError(t, err)

	real, _ := sys.Get(0, 0)
	require.Zero(t, real, "a zero-reactance branch contributes nothing to B', regardless of resistance")
}

func TestBuildYBusIncludesResistiveOnlyBranch(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: true}))
	require.NoError(t, net.AddBus(network.Bus{ID: 2, Type: network.PQ, InService: true}))
	require.NoError(t, net.AddBranch(network.Branch{ID: 1, FromBus: 1, ToBus: 2, InService: true, Resistance: 0.05, Reactance: 0}))

	idx := network.BuildIndexTable(net)
	sys, err := admittance.BuildYBus(net, idx)
	require.NoError(t, err)

	i, _ := idx.FullIndex(1)
	j, _ := idx.FullIndex(2)
	real, _ := sys.Get(i, j)
	require.InDelta(t, -20.0, real, 1e-9, "y = 1/R for a resistance-only branch")
}

func TestBuildYBusAppliesFixedShunt(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: true}))
	require.NoError(t, net.AddFixedShunt(network.FixedShunt{ID: 1, BusID: 1, InService: true, GL: 10, BL: 20}))

	idx := network.BuildIndexTable(net)
	sys, err := admittance.BuildYBus(net, idx)
	require.NoError(t, err)

	i, _ := idx.FullIndex(1)
	real, imag := sys.Get(i, i)
	require.InDelta(t, 0.1, real, 1e-9)
	require.InDelta(t, 0.2, imag, 1e-9)
}

func TestBuildYBusSkipsOutOfServiceBranch(t *testing.T) {
	net := network.New("t", 100, 60)
	require.NoError(t, net.AddBus(network.Bus{ID: 1, Type: network.Slack, InService: true}))
	require.NoError(t, net.AddBus(network.Bus{ID: 2, Type: network.PQ, InService: true}))
	require.NoError(t, net.AddBranch(network.Branch{ID: 1, FromBus: 1, ToBus: 2, InService: false, Reactance: 0.1}))

	idx := network.BuildIndexTable(net)
	sys, err := admittance.BuildYBus(net, idx)
	require.NoError(t, err)

	i, _ := idx.FullIndex(1)
	j, _ := idx.FullIndex(2)
	real, imag := sys.Get(i, j)
	require.Zero(t, real)
	require.Zero(t, imag)
}
