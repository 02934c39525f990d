package neargo

import (
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/neargo/neargo/distance"
)

// Matrix is a dense, rectangular collection of equal-length float64 rows,
// stored in a flattened row-major backing array. Rows are observations,
// columns are features. A Matrix is treated as immutable for the duration of
// a computation.
type Matrix struct {
	data []float64
	rows int
	dim  int
}

// NewMatrix creates a zero-filled matrix with the given number of rows and
// features. Negative arguments are treated as zero.
func NewMatrix(rows, dim int) *Matrix {
	if rows < 0 {
		rows = 0
	}
	if dim < 0 {
		dim = 0
	}
	return &Matrix{
		data: make([]float64, rows*dim),
		rows: rows,
		dim:  dim,
	}
}

// FromRows builds a Matrix by copying the given rows. All rows must have the
// same length; a ragged input returns ErrDimensionMismatch. An empty input
// yields an empty matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return NewMatrix(0, 0), nil
	}

	dim := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) != dim {
			return nil, &distance.ErrDimensionMismatch{Expected: dim, Actual: len(row)}
		}
	}

	m := NewMatrix(len(rows), dim)
	for i, row := range rows {
		copy(m.Row(i), row)
	}

	return m, nil
}

// FromDense builds a Matrix by copying a gonum dense matrix.
func FromDense(d *mat.Dense) *Matrix {
	r, c := d.Dims()
	m := NewMatrix(r, c)
	for i := 0; i < r; i++ {
		mat.Row(m.Row(i), i, d)
	}
	return m
}

// Rows returns the number of observations.
func (m *Matrix) Rows() int { return m.rows }

// Dim returns the number of features per observation.
func (m *Matrix) Dim() int { return m.dim }

// Row returns the i-th row as a slice into the backing array.
// Mutating it mutates the matrix.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.dim : (i+1)*m.dim]
}

// At returns the feature value at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	if j < 0 || j >= m.dim {
		panic("neargo: column index out of range")
	}
	return m.data[i*m.dim+j]
}

// Set assigns the feature value at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	if j < 0 || j >= m.dim {
		panic("neargo: column index out of range")
	}
	m.data[i*m.dim+j] = v
}

// ToDense returns a copy of the matrix as a gonum dense matrix.
// Returns nil for an empty matrix, since gonum rejects zero-sized dimensions.
func (m *Matrix) ToDense() *mat.Dense {
	if m.rows == 0 || m.dim == 0 {
		return nil
	}
	return mat.NewDense(m.rows, m.dim, slices.Clone(m.data))
}

// DistanceMatrix is a dense (rows x cols) matrix of pairwise distances,
// stored row-major. Entry (i, j) is the distance between row i of the first
// input and row j of the second. For a self-comparison it is symmetric with
// a zero diagonal (for metrics satisfying the usual distance axioms).
type DistanceMatrix struct {
	data []float64
	rows int
	cols int
}

// DistanceMatrixFromRows builds a DistanceMatrix by copying the given rows,
// for distances produced outside the engine. All rows must have the same
// length; a ragged input returns ErrDimensionMismatch.
func DistanceMatrixFromRows(rows [][]float64) (*DistanceMatrix, error) {
	if len(rows) == 0 {
		return newDistanceMatrix(0, 0), nil
	}

	cols := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) != cols {
			return nil, &distance.ErrDimensionMismatch{Expected: cols, Actual: len(row)}
		}
	}

	d := newDistanceMatrix(len(rows), cols)
	for i, row := range rows {
		copy(d.Row(i), row)
	}

	return d, nil
}

func newDistanceMatrix(rows, cols int) *DistanceMatrix {
	return &DistanceMatrix{
		data: make([]float64, rows*cols),
		rows: rows,
		cols: cols,
	}
}

// Rows returns the number of rows (observations in the first input).
func (d *DistanceMatrix) Rows() int { return d.rows }

// Cols returns the number of columns (observations in the second input).
func (d *DistanceMatrix) Cols() int { return d.cols }

// Row returns the i-th row of distances as a slice into the backing array.
func (d *DistanceMatrix) Row(i int) []float64 {
	return d.data[i*d.cols : (i+1)*d.cols]
}

// At returns the distance at row i, column j.
func (d *DistanceMatrix) At(i, j int) float64 {
	if j < 0 || j >= d.cols {
		panic("neargo: column index out of range")
	}
	return d.data[i*d.cols+j]
}

// ToDense returns a copy of the distance matrix as a gonum dense matrix.
// Returns nil for an empty matrix.
func (d *DistanceMatrix) ToDense() *mat.Dense {
	if d.rows == 0 || d.cols == 0 {
		return nil
	}
	return mat.NewDense(d.rows, d.cols, slices.Clone(d.data))
}
