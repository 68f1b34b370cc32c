package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobonovski/gosphere/corpus"
	"github.com/bobonovski/gosphere/geom"
)

// one toponym with candidates at the two poles
func poleLexicon() *corpus.CoordinateLexicon {
	return &corpus.CoordinateLexicon{
		Coords: [][][]float64{{
			geom.CartesianFromDegrees(90, 0),
			geom.CartesianFromDegrees(-90, 0),
		}},
		T:        1,
		MaxCoord: 2,
	}
}

func TestRegionStateAssignRetractToponym(t *testing.T) {
	st := newRegionState(uint32(1), uint32(1), uint32(3), poleLexicon(), 0.25)
	st.currentR = 1

	st.assignToponym(0, 0, 0, 0)

	assert.Equal(t, uint32(1), st.toponymRegionCounts[0])
	assert.Equal(t, uint32(1), st.allWordsRegionCounts[0])
	assert.Equal(t, uint32(1), st.wordByRegion.Get(0, 0))
	assert.Equal(t, uint32(1), st.regionByDocument.Get(0, 0))
	assert.Equal(t, uint32(1), st.coordCounts.Get(0, 0, 0))
	assert.InDelta(t, 1.0, st.regionMeans.Get(0, 2), 1e-12)

	became := st.retractToponym(0, 0, 0, 0)
	assert.True(t, became)
}

// retracting the sole toponym of a region must leave it recyclable:
// zero counts and an exactly zero mean
func TestRegionStateRetractLastToponym(t *testing.T) {
	st := newRegionState(uint32(1), uint32(1), uint32(3), poleLexicon(), 0.25)
	st.currentR = 1

	st.assignToponym(0, 0, 0, 1)
	became := st.retractToponym(0, 0, 0, 1)
	assert.True(t, became)
	st.markEmpty(0)
	st.zeroRegion(0)

	assert.True(t, st.isEmpty(0))
	assert.Equal(t, uint32(0), st.toponymRegionCounts[0])
	assert.Equal(t, uint32(0), st.allWordsRegionCounts[0])
	assert.Equal(t, []float64{0, 0, 0}, st.regionMeans.RowView(0))
}

func TestRegionStateRetractFromEmptyPanics(t *testing.T) {
	st := newRegionState(uint32(1), uint32(1), uint32(3), poleLexicon(), 0.25)
	st.currentR = 1

	assert.PanicsWithValue(t, ErrRetractEmptyRegion, func() {
		st.retractToponym(0, 0, 0, 0)
	})
	assert.PanicsWithValue(t, ErrRetractEmptyRegion, func() {
		st.retractWord(0, 0, 0)
	})
}

func TestRegionStateAssignPastFreshSlotPanics(t *testing.T) {
	st := newRegionState(uint32(1), uint32(1), uint32(4), poleLexicon(), 0.25)
	st.currentR = 1

	// index currentR is the fresh slot and is legal
	st.assignToponym(1, 0, 0, 0)

	// anything past it is an invariant violation
	assert.PanicsWithValue(t, ErrRegionOutOfRange, func() {
		st.assignToponym(3, 0, 0, 0)
	})
	assert.PanicsWithValue(t, ErrRegionOutOfRange, func() {
		st.assignWord(3, 0, 0)
	})
}

func TestRegionStateNeedExpand(t *testing.T) {
	st := newRegionState(uint32(1), uint32(1), uint32(4), poleLexicon(), 1.0)

	// threshold is factor/(1+factor)*expectedR = 2; margin 3 is fine
	st.currentR = 1
	assert.False(t, st.needExpand())

	// margin 1 falls below it
	st.currentR = 3
	assert.True(t, st.needExpand())
}

func TestRegionStateExpandPreservesCounts(t *testing.T) {
	st := newRegionState(uint32(2), uint32(2), uint32(2), poleLexicon(), 0.25)
	st.currentR = 2

	st.assignToponym(0, 0, 0, 0)
	st.assignToponym(1, 0, 1, 1)
	st.assignWord(0, 1, 0)

	st.expand(uint32(5))

	assert.Equal(t, uint32(5), st.expectedR)

	// pre-expansion statistics survive on the overlapping indices
	assert.Equal(t, uint32(1), st.toponymRegionCounts[0])
	assert.Equal(t, uint32(1), st.toponymRegionCounts[1])
	assert.Equal(t, uint32(2), st.allWordsRegionCounts[0])
	assert.Equal(t, uint32(1), st.wordByRegion.Get(0, 0))
	assert.Equal(t, uint32(1), st.wordByRegion.Get(1, 0))
	assert.Equal(t, uint32(1), st.regionByDocument.Get(1, 1))
	assert.Equal(t, uint32(1), st.coordCounts.Get(1, 0, 1))
	assert.InDelta(t, 1.0, st.regionMeans.Get(0, 2), 1e-12)
	assert.InDelta(t, -1.0, st.regionMeans.Get(1, 2), 1e-12)

	// new slots start from zero
	for r := uint32(2); r < 5; r += 1 {
		assert.Equal(t, uint32(0), st.toponymRegionCounts[r])
		assert.Equal(t, uint32(0), st.allWordsRegionCounts[r])
		assert.Equal(t, uint32(0), st.wordByRegion.Get(0, r))
		assert.Equal(t, uint32(0), st.coordCounts.Get(r, 0, 0))
	}
}

func TestSampleStatsCollectAndAverage(t *testing.T) {
	lex := poleLexicon()
	st := newRegionState(uint32(1), uint32(1), uint32(2), lex, 0.25)
	st.currentR = 1
	stats := newSampleStats(uint32(1), uint32(1), uint32(2), lex.Shape())

	st.assignToponym(0, 0, 0, 0)
	stats.collect(st)
	st.assignToponym(0, 0, 0, 0)
	stats.collect(st)

	stats.average()

	// (1 + 2) / 2 sweeps
	assert.InDelta(t, 1.5, stats.wordByRegion.Get(0, 0), 1e-12)
	assert.InDelta(t, 1.5, stats.allWordsRegion.Get(0, 0), 1e-12)
	assert.InDelta(t, 1.5, stats.coordCounts.Get(0, 0, 0), 1e-12)
	assert.InDelta(t, 1.5, stats.regionMeans.Get(0, 2), 1e-12)
}

func TestSampleStatsExpandMatchesState(t *testing.T) {
	lex := poleLexicon()
	stats := newSampleStats(uint32(1), uint32(1), uint32(2), lex.Shape())
	stats.wordByRegion.Incr(0, 1, 3.0)

	stats.expand(uint32(4))

	_, c := stats.wordByRegion.Shape()
	assert.Equal(t, uint32(4), c)
	assert.Equal(t, 3.0, stats.wordByRegion.Get(0, 1))
	assert.Equal(t, 0.0, stats.wordByRegion.Get(0, 3))
	r, _ := stats.regionMeans.Shape()
	assert.Equal(t, uint32(4), r)
	assert.Equal(t, uint32(4), stats.coordCounts.Regions())
}
