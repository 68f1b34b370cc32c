package sstable

import (
	"fmt"
	"os"
)

// internal Float64 matrix representation, used for averaged
// sufficient statistics and directional means. float64 is required
// because the directional kernel reaches exp(kappa) which overflows
// float32 for kappa past ~88.
type Float64Matrix struct {
	nrow uint32
	ncol uint32
	data []float64
}

// NewFloat64Matrix creates a new Float64Matrix with r rows and c columns
func NewFloat64Matrix(r, c uint32) *Float64Matrix {
	if r*c <= 0 {
		panic(ErrBadShape)
	}
	return &Float64Matrix{
		nrow: r,
		ncol: c,
		data: make([]float64, r*c),
	}
}

// get the shape of the matrix
func (m *Float64Matrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Float64Matrix) Get(r, c uint32) float64 {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// set val to the [r, c]-th element of the matrix
func (m *Float64Matrix) Set(r, c uint32, val float64) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// add val to the [r, c]-th element of the matrix
func (m *Float64Matrix) Incr(r, c uint32, val float64) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] += val
}

// RowView returns the r-th row backed by the matrix storage, so
// writes through the slice mutate the matrix
func (m *Float64Matrix) RowView(r uint32) []float64 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol : (r+1)*m.ncol]
}

// zero out the r-th row of the matrix
func (m *Float64Matrix) ZeroRow(r uint32) {
	row := m.RowView(r)
	for i := range row {
		row[i] = 0
	}
}

// Scale multiplies every element by val
func (m *Float64Matrix) Scale(val float64) {
	for i := range m.data {
		m.data[i] *= val
	}
}

// ExpandCols reallocates the row major storage with newC columns,
// copying the existing columns row by row and zero-filling the new
// slots. Shrinking is not allowed.
func (m *Float64Matrix) ExpandCols(newC uint32) {
	if newC < m.ncol {
		panic(ErrBadShape)
	}
	if newC == m.ncol {
		return
	}
	data := make([]float64, m.nrow*newC)
	for r := uint32(0); r < m.nrow; r += 1 {
		for c := uint32(0); c < m.ncol; c += 1 {
			data[r*newC+c] = m.data[r*m.ncol+c]
		}
	}
	m.data = data
	m.ncol = newC
}

// ExpandRows grows the matrix to newR rows, keeping the existing rows
// in place and zero-filling the new ones. Shrinking is not allowed.
func (m *Float64Matrix) ExpandRows(newR uint32) {
	if newR < m.nrow {
		panic(ErrBadShape)
	}
	if newR == m.nrow {
		return
	}
	data := make([]float64, newR*m.ncol)
	copy(data, m.data)
	m.data = data
	m.nrow = newR
}

// serialize nonzero entries to file
func (m *Float64Matrix) Serialize(fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	r, c := m.Shape()
	if r*c == 0 {
		return nil
	}
	// write the matrix shape
	out.WriteString(fmt.Sprintf("%d,%d\n", r, c))

	var val float64
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			val = m.Get(ridx, cidx)
			if val != 0 { // only write out nonzero value
				out.WriteString(fmt.Sprintf("%d,%d,%e\n", ridx, cidx, val))
			}
		}
	}
	return nil
}
