package sstable

import (
	"fmt"
	"os"
)

// Float64CoordTable mirrors Uint32CoordTable for the averaged
// statistics accumulated across sampling rounds.
type Float64CoordTable struct {
	nregion uint32
	shape   []uint32
	data    [][][]float64
}

// NewFloat64CoordTable creates a table with nregion region slots and
// one zeroed slice per toponym candidate list.
func NewFloat64CoordTable(nregion uint32, shape []uint32) *Float64CoordTable {
	if nregion == 0 || len(shape) == 0 {
		panic(ErrBadShape)
	}
	t := &Float64CoordTable{
		nregion: nregion,
		shape:   shape,
	}
	t.data = make([][][]float64, nregion)
	for r := uint32(0); r < nregion; r += 1 {
		t.data[r] = newFloat64CoordSlots(shape)
	}
	return t
}

func newFloat64CoordSlots(shape []uint32) [][]float64 {
	slots := make([][]float64, len(shape))
	for j, n := range shape {
		slots[j] = make([]float64, n)
	}
	return slots
}

// Regions returns the number of region slots
func (t *Float64CoordTable) Regions() uint32 {
	return t.nregion
}

// get the value of candidate k of toponym top in region r
func (t *Float64CoordTable) Get(r, top, k uint32) float64 {
	if r >= t.nregion || top >= uint32(len(t.shape)) || k >= t.shape[top] {
		panic(ErrIndexOutOfRange)
	}
	return t.data[r][top][k]
}

// add val to candidate k of toponym top in region r
func (t *Float64CoordTable) Incr(r, top, k uint32, val float64) {
	if r >= t.nregion || top >= uint32(len(t.shape)) || k >= t.shape[top] {
		panic(ErrIndexOutOfRange)
	}
	t.data[r][top][k] += val
}

// Scale multiplies every value by val
func (t *Float64CoordTable) Scale(val float64) {
	for r := uint32(0); r < t.nregion; r += 1 {
		for _, slots := range t.data[r] {
			for k := range slots {
				slots[k] *= val
			}
		}
	}
}

// ExpandRegions grows the table to newR region slots, keeping the
// existing slots and zero-filling the new ones. Shrinking is not
// allowed.
func (t *Float64CoordTable) ExpandRegions(newR uint32) {
	if newR < t.nregion {
		panic(ErrBadShape)
	}
	for r := t.nregion; r < newR; r += 1 {
		t.data = append(t.data, newFloat64CoordSlots(t.shape))
	}
	t.nregion = newR
}

// serialize nonzero entries to file
func (t *Float64CoordTable) Serialize(fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	out.WriteString(fmt.Sprintf("%d,%d\n", t.nregion, len(t.shape)))
	for r := uint32(0); r < t.nregion; r += 1 {
		for top, slots := range t.data[r] {
			for k, val := range slots {
				if val != 0 { // only write out nonzero value
					out.WriteString(fmt.Sprintf("%d,%d,%d,%e\n", r, top, k, val))
				}
			}
		}
	}
	return nil
}
