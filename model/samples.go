package model

import (
	"gonum.org/v1/gonum/floats"

	"github.com/bobonovski/gosphere/sstable"
)

// sampleStats accumulates sufficient statistics across sampling
// rounds. The decode pass reads these averages instead of the last
// iteration's raw counts. Region-indexed mirrors here must grow in
// the same step as the live state.
type sampleStats struct {
	wordByRegion     *sstable.Float64Matrix // W x expectedR
	regionByDocument *sstable.Float64Matrix // D x expectedR
	allWordsRegion   *sstable.Float64Matrix // expectedR x 1
	regionMeans      *sstable.Float64Matrix // expectedR x 3
	coordCounts      *sstable.Float64CoordTable

	shape   []uint32
	samples int
}

func newSampleStats(w, d, expectedR uint32, shape []uint32) *sampleStats {
	return &sampleStats{
		wordByRegion:     sstable.NewFloat64Matrix(w, expectedR),
		regionByDocument: sstable.NewFloat64Matrix(d, expectedR),
		allWordsRegion:   sstable.NewFloat64Matrix(expectedR, 1),
		regionMeans:      sstable.NewFloat64Matrix(expectedR, 3),
		coordCounts:      sstable.NewFloat64CoordTable(expectedR, shape),
		shape:            shape,
	}
}

// collect adds the current live counts to the accumulators
func (this *sampleStats) collect(st *regionState) {
	w, r := st.wordByRegion.Shape()
	for i := uint32(0); i < w; i += 1 {
		for j := uint32(0); j < r; j += 1 {
			if c := st.wordByRegion.Get(i, j); c > 0 {
				this.wordByRegion.Incr(i, j, float64(c))
			}
		}
	}

	d, _ := st.regionByDocument.Shape()
	for i := uint32(0); i < d; i += 1 {
		for j := uint32(0); j < r; j += 1 {
			if c := st.regionByDocument.Get(i, j); c > 0 {
				this.regionByDocument.Incr(i, j, float64(c))
			}
		}
	}

	for j := uint32(0); j < r; j += 1 {
		this.allWordsRegion.Incr(j, 0, float64(st.allWordsRegionCounts[j]))
		floats.Add(this.regionMeans.RowView(j), st.regionMeans.RowView(j))
	}

	for j := uint32(0); j < r; j += 1 {
		for top, n := range this.shape {
			for k := uint32(0); k < n; k += 1 {
				if c := st.coordCounts.Get(j, uint32(top), k); c > 0 {
					this.coordCounts.Incr(j, uint32(top), k, float64(c))
				}
			}
		}
	}

	this.samples += 1
}

// average freezes the accumulators into per-sweep means; called once
// when training ends
func (this *sampleStats) average() {
	if this.samples == 0 {
		return
	}
	scale := 1 / float64(this.samples)
	this.wordByRegion.Scale(scale)
	this.regionByDocument.Scale(scale)
	this.allWordsRegion.Scale(scale)
	this.regionMeans.Scale(scale)
	this.coordCounts.Scale(scale)
}

// expand grows the mirrors to newR region slots
func (this *sampleStats) expand(newR uint32) {
	this.wordByRegion.ExpandCols(newR)
	this.regionByDocument.ExpandCols(newR)
	this.allWordsRegion.ExpandRows(newR)
	this.regionMeans.ExpandRows(newR)
	this.coordCounts.ExpandRegions(newR)
}
