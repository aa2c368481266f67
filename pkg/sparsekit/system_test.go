package sparsekit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SklorGalore/mantis/pkg/sparsekit"
)

func TestSolveSimpleRealSystem(t *testing.T) {
	// [[2, 0], [0, 3]] * x = [4, 9] -> x = [2, 3]
	sys, err := sparsekit.NewSystem(2, false)
	require.NoError(t, err)

	sys.Add(0, 0, 2)
	sys.Add(1, 1, 3)
	sys.AddRHS(0, 4)
	sys.AddRHS(1, 9)

	require.NoError(t, sys.Solve())
	sol := sys.Solution()
	require.InDelta(t, 2, sol[1], 1e-9)
	require.InDelta(t, 3, sol[2], 1e-9)
}

func TestAddAccumulatesDuplicates(t *testing.T) {
	sys, err := sparsekit.NewSystem(1, false)
	require.NoError(t, err)

	sys.Add(0, 0, 1.5)
	sys.Add(0, 0, 2.5)

	real, _ := sys.Get(0, 0)
	require.InDelta(t, 4.0, real, 1e-12)
}

func TestAddComplexAccumulatesDuplicates(t *testing.T) {
	sys, err := sparsekit.NewSystem(1, true)
	require.NoError(t, err)

	sys.AddComplex(0, 0, 1, 2)
	sys.AddComplex(0, 0, 3, -1)

	real, imag := sys.Get(0, 0)
	require.InDelta(t, 4.0, real, 1e-12)
	require.InDelta(t, 1.0, imag, 1e-12)
}

func TestSingularSystemReturnsErrSingular(t *testing.T) {
	sys, err := sparsekit.NewSystem(2, false)
	require.NoError(t, err)

	// All-zero matrix: no pivot exists.
	sys.AddRHS(0, 1)
	sys.AddRHS(1, 1)

	err = sys.Solve()
	require.ErrorIs(t, err, sparsekit.ErrSingular)
}

func TestOutOfBoundsIndicesAreIgnored(t *testing.T) {
	sys, err := sparsekit.NewSystem(2, false)
	require.NoError(t, err)

	sys.Add(5, 5, 1.0)
	sys.AddRHS(5, 1.0)

	real, _ := sys.Get(5, 5)
	require.Zero(t, real)
}
