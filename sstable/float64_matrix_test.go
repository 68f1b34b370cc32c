package sstable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat64MatrixGet(t *testing.T) {
	m := NewFloat64Matrix(uint32(2), uint32(3))

	val := float64(0.0)
	for r := 0; r < 2; r += 1 {
		for c := 0; c < 3; c += 1 {
			m.Set(uint32(r), uint32(c), val)
			val += float64(1.0)
		}
	}

	assert.Equal(t, float64(0), m.Get(0, 0))
	assert.Equal(t, float64(1), m.Get(0, 1))
	assert.Equal(t, float64(2), m.Get(0, 2))
	assert.Equal(t, float64(3), m.Get(1, 0))
	assert.Equal(t, float64(4), m.Get(1, 1))
	assert.Equal(t, float64(5), m.Get(1, 2))
}

func TestFloat64MatrixRowView(t *testing.T) {
	m := NewFloat64Matrix(uint32(2), uint32(3))

	row := m.RowView(1)
	row[2] = 7.5

	// the view is backed by the matrix storage
	assert.Equal(t, 7.5, m.Get(1, 2))

	m.ZeroRow(1)
	assert.Equal(t, float64(0), m.Get(1, 2))
}

func TestFloat64MatrixScale(t *testing.T) {
	m := NewFloat64Matrix(uint32(2), uint32(2))
	m.Set(0, 0, 4.0)
	m.Set(1, 1, 6.0)

	m.Scale(0.5)

	assert.Equal(t, 2.0, m.Get(0, 0))
	assert.Equal(t, 3.0, m.Get(1, 1))
	assert.Equal(t, 0.0, m.Get(0, 1))
}

func TestFloat64MatrixExpandRows(t *testing.T) {
	m := NewFloat64Matrix(uint32(2), uint32(3))
	m.Set(1, 2, 9.0)

	m.ExpandRows(uint32(5))

	r, c := m.Shape()
	assert.Equal(t, uint32(5), r)
	assert.Equal(t, uint32(3), c)
	assert.Equal(t, 9.0, m.Get(1, 2))
	for ridx := uint32(2); ridx < 5; ridx += 1 {
		for cidx := uint32(0); cidx < 3; cidx += 1 {
			assert.Equal(t, 0.0, m.Get(ridx, cidx))
		}
	}
}

func TestFloat64MatrixExpandCols(t *testing.T) {
	m := NewFloat64Matrix(uint32(2), uint32(2))
	m.Set(0, 1, 1.5)
	m.Set(1, 0, 2.5)

	m.ExpandCols(uint32(3))

	assert.Equal(t, 1.5, m.Get(0, 1))
	assert.Equal(t, 2.5, m.Get(1, 0))
	assert.Equal(t, 0.0, m.Get(0, 2))
	assert.Equal(t, 0.0, m.Get(1, 2))
}
