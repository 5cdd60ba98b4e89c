package qsim

import (
	"fmt"
	"math"
	"math/cmplx"

	"golang.org/x/sync/errgroup"
)

// Vector is an ordered sequence of complex amplitudes.
type Vector []complex128

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Norm returns the Euclidean norm of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, a := range v {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vector) ApproxEqual(other Vector, eps float64) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if cmplx.Abs(v[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

/*
Matrix is a dense, row-major complex matrix. Matrices returned by the gate
factories are never modified by the library, so they can be shared between
states and goroutines. Set is only meant for matrices the caller owns.
*/
type Matrix struct {
	rows int
	cols int
	data []complex128
}

// NewMatrix returns a zero matrix of the given shape.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{
		rows: rows,
		cols: cols,
		data: make([]complex128, rows*cols),
	}
}

// NewMatrixFrom builds a matrix from a slice of rows.
func NewMatrixFrom(rows [][]complex128) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, fmt.Errorf("empty matrix: %w", ErrShape)
	}

	m := NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			return Matrix{}, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), m.cols, ErrShape)
		}
		copy(m.data[i*m.cols:(i+1)*m.cols], row)
	}
	return m, nil
}

// Identity returns the dim x dim identity matrix.
func Identity(dim int) Matrix {
	m := NewMatrix(dim, dim)
	for i := 0; i < dim; i++ {
		m.data[i*dim+i] = 1
	}
	return m
}

func (m Matrix) Rows() int { return m.rows }
func (m Matrix) Cols() int { return m.cols }

func (m Matrix) At(i, j int) complex128 {
	return m.data[i*m.cols+j]
}

func (m Matrix) Set(i, j int, v complex128) {
	m.data[i*m.cols+j] = v
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := NewMatrix(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

func (m Matrix) sameShape(other Matrix) error {
	if m.rows != other.rows || m.cols != other.cols {
		return fmt.Errorf("%dx%d vs %dx%d: %w", m.rows, m.cols, other.rows, other.cols, ErrDimension)
	}
	return nil
}

// Add returns m + other.
func (m Matrix) Add(other Matrix) (Matrix, error) {
	if err := m.sameShape(other); err != nil {
		return Matrix{}, err
	}

	out := m.Clone()
	for i, v := range other.data {
		out.data[i] += v
	}
	return out, nil
}

// Sub returns m - other.
func (m Matrix) Sub(other Matrix) (Matrix, error) {
	if err := m.sameShape(other); err != nil {
		return Matrix{}, err
	}

	out := m.Clone()
	for i, v := range other.data {
		out.data[i] -= v
	}
	return out, nil
}

// Scale returns c * m.
func (m Matrix) Scale(c complex128) Matrix {
	out := m.Clone()
	for i := range out.data {
		out.data[i] *= c
	}
	return out
}

// Mul returns the matrix product m * other.
func (m Matrix) Mul(other Matrix) (Matrix, error) {
	if m.cols != other.rows {
		return Matrix{}, fmt.Errorf("%dx%d * %dx%d: %w", m.rows, m.cols, other.rows, other.cols, ErrDimension)
	}

	out := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			a := m.data[i*m.cols+k]
			if a == 0 {
				continue
			}
			for j := 0; j < other.cols; j++ {
				out.data[i*out.cols+j] += a * other.data[k*other.cols+j]
			}
		}
	}
	return out, nil
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	out := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*out.cols+i] = cmplx.Conj(m.data[i*m.cols+j])
		}
	}
	return out
}

// ApproxEqual reports whether both matrices share a shape and every entry
// differs by at most eps.
func (m Matrix) ApproxEqual(other Matrix, eps float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if cmplx.Abs(m.data[i]-other.data[i]) > eps {
			return false
		}
	}
	return true
}

// IsUnitary reports whether m†m equals the identity within eps.
func (m Matrix) IsUnitary(eps float64) bool {
	if m.rows != m.cols {
		return false
	}
	product, err := m.Dagger().Mul(m)
	if err != nil {
		return false
	}
	return product.ApproxEqual(Identity(m.rows), eps)
}

// MulVec returns the matrix-vector product m * v.
func (m Matrix) MulVec(v Vector) (Vector, error) {
	if m.cols != len(v) {
		return nil, fmt.Errorf("%dx%d * %d: %w", m.rows, m.cols, len(v), ErrDimension)
	}

	out := make(Vector, m.rows)
	m.mulRows(v, out, 0, m.rows)
	return out, nil
}

/*
MulVecParallel computes the same product as MulVec, splitting the rows into
contiguous blocks that are computed concurrently by at most workers
goroutines. Each block writes a disjoint range of the output.
*/
func (m Matrix) MulVecParallel(v Vector, workers int) (Vector, error) {
	if m.cols != len(v) {
		return nil, fmt.Errorf("%dx%d * %d: %w", m.rows, m.cols, len(v), ErrDimension)
	}
	if workers < 2 || m.rows < workers {
		return m.MulVec(v)
	}

	out := make(Vector, m.rows)
	block := (m.rows + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)

	for start := 0; start < m.rows; start += block {
		end := min(start+block, m.rows)
		g.Go(func() error {
			m.mulRows(v, out, start, end)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m Matrix) mulRows(v, out Vector, from, to int) {
	for i := from; i < to; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		var sum complex128
		for j, a := range row {
			sum += a * v[j]
		}
		out[i] = sum
	}
}

/*
Kron returns the Kronecker product a ⊗ b. Entries of b vary fastest, so in a
product of per-qubit operators the last factor acts on the least significant
bit of the basis-state index.
*/
func Kron(a, b Matrix) Matrix {
	out := NewMatrix(a.rows*b.rows, a.cols*b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			aij := a.data[i*a.cols+j]
			if aij == 0 {
				continue
			}
			for k := 0; k < b.rows; k++ {
				row := (i*b.rows + k) * out.cols
				for l := 0; l < b.cols; l++ {
					out.data[row+j*b.cols+l] = aij * b.data[k*b.cols+l]
				}
			}
		}
	}
	return out
}

// KronVec returns the Kronecker product of two vectors.
func KronVec(a, b Vector) Vector {
	out := make(Vector, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, x*y)
		}
	}
	return out
}

// Outer returns |a⟩⟨b|, conjugating the entries of b.
func Outer(a, b Vector) Matrix {
	out := NewMatrix(len(a), len(b))
	for i, x := range a {
		for j, y := range b {
			out.data[i*out.cols+j] = x * cmplx.Conj(y)
		}
	}
	return out
}
