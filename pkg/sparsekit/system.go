// Package sparsekit is the sparse triplet builder and solver adapter: it
// accepts (row, col, value) contributions in arbitrary order, with
// duplicates permitted and summed by addition, and solves A*x = b via LU
// factorization. It wraps github.com/edp1096/sparse, the same
// triplet-accumulate sparse matrix library the teacher circuit simulator
// uses for its own matrix core.
//
// All indices System exposes are 0-based; the underlying library's 1-based
// convention is an implementation detail hidden at this boundary.
package sparsekit

import (
	"errors"
	"fmt"

	"github.com/edp1096/sparse"
)

// ErrSingular is returned by Solve when the coefficient matrix's LU
// factorization fails. It is a recoverable failure at the caller — never
// fatal to the process (spec §4.1 error policy).
var ErrSingular = errors.New("sparsekit: singular matrix")

// Factor()/Create() take no pivot-tolerance argument — the underlying
// library picks its own pivoting strategy. consts.PivotTolerance is kept
// as the spec-mandated value but is not consumed here; see DESIGN.md,
// open question O6.

// System is an append-with-duplicates triplet matrix plus its RHS vector.
// Real-only systems are used for the DC B' solve; complex systems are used
// to hold the AC Y-bus.
type System struct {
	size      int
	isComplex bool
	matrix    *sparse.Matrix
	rhs       []float64
	rhsImag   []float64
	solution  []float64
	solImag   []float64
	config    *sparse.Configuration
}

// NewSystem allocates a System of the given dimension. If isComplex is
// true, Add/Get operate on both the real and imaginary parts.
func NewSystem(size int, isComplex bool) (*System, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 isComplex,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("sparsekit: creating matrix: %w", err)
	}

	vecSize := size + 1 // 1-based indexing
	if isComplex {
		vecSize *= 2
	}

	return &System{
		size:      size,
		isComplex: isComplex,
		matrix:    mat,
		rhs:       make([]float64, vecSize),
		rhsImag:   make([]float64, size+1),
		solution:  make([]float64, vecSize),
		solImag:   make([]float64, size+1),
		config:    config,
	}, nil
}

// Size returns the system's dimension N.
func (s *System) Size() int { return s.size }

func (s *System) checkBounds(i, j int) bool {
	return i >= 0 && j >= 0 && i < s.size && j < s.size
}

// Add appends a real contribution at (i, j). Duplicates accumulate by
// addition — callers must not special-case away repeat contributions to
// the same position (spec §9): shunt, branch, and fixed-shunt
// contributions are expected to land on the same diagonal entry.
func (s *System) Add(i, j int, value float64) {
	if !s.checkBounds(i, j) {
		return
	}
	s.matrix.GetElement(int64(i+1), int64(j+1)).Real += value
}

// AddComplex appends a complex contribution at (i, j).
func (s *System) AddComplex(i, j int, real, imag float64) {
	if !s.checkBounds(i, j) {
		return
	}
	el := s.matrix.GetElement(int64(i+1), int64(j+1))
	el.Real += real
	el.Imag += imag
}

// Get reads back the accumulated (real, imag) value at (i, j). Used by the
// Newton-Raphson solver to read G_ik/B_ik off the assembled Y-bus.
func (s *System) Get(i, j int) (real, imag float64) {
	if !s.checkBounds(i, j) {
		return 0, 0
	}
	el := s.matrix.GetElement(int64(i+1), int64(j+1))
	return el.Real, el.Imag
}

// AddRHS accumulates a real contribution into the right-hand side at row i.
func (s *System) AddRHS(i int, value float64) {
	if i < 0 || i >= s.size {
		return
	}
	s.rhs[i+1] += value
}

// AddComplexRHS accumulates a complex contribution into the RHS at row i.
func (s *System) AddComplexRHS(i int, real, imag float64) {
	if i < 0 || i >= s.size {
		return
	}
	s.rhs[2*(i+1)] += real
	s.rhs[2*(i+1)+1] += imag
}

// Clear resets the matrix entries and RHS/solution vectors to zero,
// keeping the allocated structure for reuse across iterations.
func (s *System) Clear() {
	s.matrix.Clear()
	for i := range s.rhs {
		s.rhs[i] = 0
	}
	for i := range s.rhsImag {
		s.rhsImag[i] = 0
	}
	for i := range s.solution {
		s.solution[i] = 0
	}
	for i := range s.solImag {
		s.solImag[i] = 0
	}
}

// Solve factors the matrix and solves A*x = rhs in place, leaving the
// result in Solution()/ComplexSolution(). Returns ErrSingular if the LU
// factorization fails.
func (s *System) Solve() error {
	if err := s.matrix.Factor(); err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}

	var err error
	if s.isComplex {
		s.solution, s.solImag, err = s.matrix.SolveComplex(s.rhs, s.rhsImag)
	} else {
		s.solution, err = s.matrix.Solve(s.rhs)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return nil
}

// Solution returns the real solution vector, 1-based (index 0 unused).
func (s *System) Solution() []float64 { return s.solution }

// ComplexSolution returns the (real, imag) solution at 0-based row i.
func (s *System) ComplexSolution(i int) (real, imag float64) {
	if !s.isComplex || i < 0 || i >= s.size {
		return 0, 0
	}
	return s.solution[2*(i+1)], s.solution[2*(i+1)+1]
}

// Destroy releases the underlying sparse matrix's resources.
func (s *System) Destroy() {
	if s.matrix != nil {
		s.matrix.Destroy()
	}
}
