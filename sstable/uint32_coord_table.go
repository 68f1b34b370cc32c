package sstable

import (
	"fmt"
	"os"
)

// Uint32CoordTable holds region by toponym by candidate counts. The
// candidate dimension is jagged since every toponym carries its own
// candidate list; the shape slice fixes the candidate count per
// toponym for the lifetime of the table.
type Uint32CoordTable struct {
	nregion uint32
	shape   []uint32
	data    [][][]uint32
}

// NewUint32CoordTable creates a table with nregion region slots and
// one zeroed count slice per toponym candidate list.
func NewUint32CoordTable(nregion uint32, shape []uint32) *Uint32CoordTable {
	if nregion == 0 || len(shape) == 0 {
		panic(ErrBadShape)
	}
	t := &Uint32CoordTable{
		nregion: nregion,
		shape:   shape,
	}
	t.data = make([][][]uint32, nregion)
	for r := uint32(0); r < nregion; r += 1 {
		t.data[r] = newCoordSlots(shape)
	}
	return t
}

func newCoordSlots(shape []uint32) [][]uint32 {
	slots := make([][]uint32, len(shape))
	for j, n := range shape {
		slots[j] = make([]uint32, n)
	}
	return slots
}

// Regions returns the number of region slots
func (t *Uint32CoordTable) Regions() uint32 {
	return t.nregion
}

// get the count of candidate k of toponym top in region r
func (t *Uint32CoordTable) Get(r, top, k uint32) uint32 {
	if r >= t.nregion || top >= uint32(len(t.shape)) || k >= t.shape[top] {
		panic(ErrIndexOutOfRange)
	}
	return t.data[r][top][k]
}

// increment the count of candidate k of toponym top in region r
func (t *Uint32CoordTable) Incr(r, top, k uint32) {
	if r >= t.nregion || top >= uint32(len(t.shape)) || k >= t.shape[top] {
		panic(ErrIndexOutOfRange)
	}
	t.data[r][top][k] += 1
}

// decrement the count of candidate k of toponym top in region r,
// panicking if the count would go negative
func (t *Uint32CoordTable) Decr(r, top, k uint32) {
	if r >= t.nregion || top >= uint32(len(t.shape)) || k >= t.shape[top] {
		panic(ErrIndexOutOfRange)
	}
	if t.data[r][top][k] == 0 {
		panic(ErrNegativeCount)
	}
	t.data[r][top][k] -= 1
}

// zero every count held by region r
func (t *Uint32CoordTable) ZeroRegion(r uint32) {
	if r >= t.nregion {
		panic(ErrIndexOutOfRange)
	}
	for _, slots := range t.data[r] {
		for k := range slots {
			slots[k] = 0
		}
	}
}

// ExpandRegions grows the table to newR region slots, keeping the
// existing slots and zero-filling the new ones. Shrinking is not
// allowed.
func (t *Uint32CoordTable) ExpandRegions(newR uint32) {
	if newR < t.nregion {
		panic(ErrBadShape)
	}
	for r := t.nregion; r < newR; r += 1 {
		t.data = append(t.data, newCoordSlots(t.shape))
	}
	t.nregion = newR
}

// serialize nonzero entries to file
func (t *Uint32CoordTable) Serialize(fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	out.WriteString(fmt.Sprintf("%d,%d\n", t.nregion, len(t.shape)))
	for r := uint32(0); r < t.nregion; r += 1 {
		for top, slots := range t.data[r] {
			for k, val := range slots {
				if val > 0 { // only write out nonzero value
					out.WriteString(fmt.Sprintf("%d,%d,%d,%d\n", r, top, k, val))
				}
			}
		}
	}
	return nil
}
