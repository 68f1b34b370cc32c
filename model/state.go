package model

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"github.com/bobonovski/gosphere/corpus"
	"github.com/bobonovski/gosphere/sstable"
)

var (
	ErrRegionOutOfRange   = errors.New("model: region index out of range")
	ErrRetractEmptyRegion = errors.New("model: retract from a region with no toponyms")
)

// regionState holds every region-indexed sufficient statistic plus
// the capacity bookkeeping. expectedR is the allocated capacity,
// currentR the number of regions opened so far; the sampler must
// never index past expectedR.
type regionState struct {
	expectedR uint32
	currentR  uint32
	emptySet  map[uint32]struct{}

	toponymRegionCounts  []uint32
	allWordsRegionCounts []uint32
	regionByDocument     *sstable.Uint32Matrix     // D x expectedR
	wordByRegion         *sstable.Uint32Matrix     // W x expectedR
	regionMeans          *sstable.Float64Matrix    // expectedR x 3
	coordCounts          *sstable.Uint32CoordTable // expectedR x T x candidates

	lex    *corpus.CoordinateLexicon
	factor float64 // capacity expansion factor
}

func newRegionState(w, d, expectedR uint32, lex *corpus.CoordinateLexicon,
	factor float64) *regionState {
	return &regionState{
		expectedR:            expectedR,
		emptySet:             make(map[uint32]struct{}),
		toponymRegionCounts:  make([]uint32, expectedR),
		allWordsRegionCounts: make([]uint32, expectedR),
		regionByDocument:     sstable.NewUint32Matrix(d, expectedR),
		wordByRegion:         sstable.NewUint32Matrix(w, expectedR),
		regionMeans:          sstable.NewFloat64Matrix(expectedR, 3),
		coordCounts:          sstable.NewUint32CoordTable(expectedR, lex.Shape()),
		lex:                  lex,
		factor:               factor,
	}
}

// checkRegion rejects assignments past the next fresh region slot
func (this *regionState) checkRegion(region uint32) {
	if region > this.currentR || region >= this.expectedR {
		panic(ErrRegionOutOfRange)
	}
}

// assignToponym commits a toponym token with candidate coordId into
// region, updating every dependent count and the region mean
func (this *regionState) assignToponym(region, word, doc, coordId uint32) {
	this.checkRegion(region)
	this.toponymRegionCounts[region] += 1
	this.allWordsRegionCounts[region] += 1
	this.regionByDocument.Incr(doc, region, uint32(1))
	this.wordByRegion.Incr(word, region, uint32(1))
	this.coordCounts.Incr(region, word, coordId)
	floats.Add(this.regionMeans.RowView(region), this.lex.Coords[word][coordId])
}

// retractToponym removes a toponym token's contribution and reports
// whether the region's toponym count dropped to zero
func (this *regionState) retractToponym(region, word, doc, coordId uint32) bool {
	this.checkRegion(region)
	if this.toponymRegionCounts[region] == 0 {
		panic(ErrRetractEmptyRegion)
	}
	this.toponymRegionCounts[region] -= 1
	this.allWordsRegionCounts[region] -= 1
	this.regionByDocument.Decr(doc, region, uint32(1))
	this.wordByRegion.Decr(word, region, uint32(1))
	this.coordCounts.Decr(region, word, coordId)
	floats.AddScaled(this.regionMeans.RowView(region), -1, this.lex.Coords[word][coordId])
	return this.toponymRegionCounts[region] == 0
}

// assignWord commits an ordinary token into region
func (this *regionState) assignWord(region, word, doc uint32) {
	this.checkRegion(region)
	this.allWordsRegionCounts[region] += 1
	this.regionByDocument.Incr(doc, region, uint32(1))
	this.wordByRegion.Incr(word, region, uint32(1))
}

// retractWord removes an ordinary token's contribution
func (this *regionState) retractWord(region, word, doc uint32) {
	this.checkRegion(region)
	if this.allWordsRegionCounts[region] == 0 {
		panic(ErrRetractEmptyRegion)
	}
	this.allWordsRegionCounts[region] -= 1
	this.regionByDocument.Decr(doc, region, uint32(1))
	this.wordByRegion.Decr(word, region, uint32(1))
}

// zeroRegion clears every statistic of a vacated region so the slot
// can be recycled. The caller reassigns the region's remaining
// ordinary tokens.
func (this *regionState) zeroRegion(region uint32) {
	this.toponymRegionCounts[region] = 0
	this.allWordsRegionCounts[region] = 0
	this.regionByDocument.ZeroCol(region)
	this.wordByRegion.ZeroCol(region)
	this.coordCounts.ZeroRegion(region)
	this.regionMeans.ZeroRow(region)
}

func (this *regionState) markEmpty(region uint32) {
	if region >= this.expectedR {
		panic(ErrRegionOutOfRange)
	}
	this.emptySet[region] = struct{}{}
}

func (this *regionState) isEmpty(region uint32) bool {
	_, ok := this.emptySet[region]
	return ok
}

// activate removes a region from the empty set once a toponym
// settles in it
func (this *regionState) activate(region uint32) {
	delete(this.emptySet, region)
}

// needExpand reports whether the unused capacity margin fell below
// factor/(1+factor) of the allocated capacity
func (this *regionState) needExpand() bool {
	margin := float64(this.expectedR - this.currentR)
	return margin < this.factor/(1+this.factor)*float64(this.expectedR)
}

// expand grows every region-indexed array to newR slots, copying the
// existing region data and zero-filling the rest. All arrays grow
// together; the caller grows the averaged mirrors in the same step.
func (this *regionState) expand(newR uint32) {
	if newR < this.expectedR {
		panic(sstable.ErrBadShape)
	}
	grown := make([]uint32, newR)
	copy(grown, this.toponymRegionCounts)
	this.toponymRegionCounts = grown

	grown = make([]uint32, newR)
	copy(grown, this.allWordsRegionCounts)
	this.allWordsRegionCounts = grown

	this.regionByDocument.ExpandCols(newR)
	this.wordByRegion.ExpandCols(newR)
	this.regionMeans.ExpandRows(newR)
	this.coordCounts.ExpandRegions(newR)

	this.expectedR = newR
}
