package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAnnealerFlatSchedule(t *testing.T) {
	a := NewAnnealer(2.0, 2.0, 5)
	_, ok := a.(*EmptyAnnealer)
	assert.True(t, ok)

	a = NewAnnealer(8.0, 1.0, 5)
	_, ok = a.(*SimulatedAnnealer)
	assert.True(t, ok)
}

func TestEmptyAnnealerIterationBudget(t *testing.T) {
	a := &EmptyAnnealer{iterations: 3}

	count := 0
	for a.NextIter() {
		count += 1
	}
	assert.Equal(t, 3, count)
}

func TestEmptyAnnealerLeavesScores(t *testing.T) {
	a := &EmptyAnnealer{iterations: 1}
	probs := []float64{1.0, 2.0, 3.0}

	total := a.AnnealProbs(probs)

	assert.Equal(t, 6.0, total)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, probs)
}

func TestSimulatedAnnealerCooling(t *testing.T) {
	a := NewSimulatedAnnealer(8.0, 1.0, 4)

	var temps []float64
	for a.NextIter() {
		temps = append(temps, a.Temperature())
	}

	assert.Len(t, temps, 4)
	assert.InDelta(t, 8.0, temps[0], 1e-9)
	assert.InDelta(t, 4.0, temps[1], 1e-9)
	assert.InDelta(t, 2.0, temps[2], 1e-9)
	assert.InDelta(t, 1.0, temps[3], 1e-9)
}

func TestSimulatedAnnealerReshape(t *testing.T) {
	a := NewSimulatedAnnealer(2.0, 2.0, 1)
	a.NextIter()

	// at temperature 2 scores are raised to the 1/2 power
	probs := []float64{4.0, 9.0}
	total := a.AnnealProbs(probs)

	assert.InDelta(t, 2.0, probs[0], 1e-9)
	assert.InDelta(t, 3.0, probs[1], 1e-9)
	assert.InDelta(t, 5.0, total, 1e-9)
}

func TestMaximumPosteriorDecoder(t *testing.T) {
	d := &MaximumPosteriorDecoder{}
	probs := []float64{0.1, 5.0, 3.0}

	total := d.AnnealProbs(probs)

	assert.Equal(t, 1.0, total)
	assert.Equal(t, []float64{0, 1, 0}, probs)
}

func TestMaximumPosteriorDecoderTieKeepsLowestIndex(t *testing.T) {
	d := &MaximumPosteriorDecoder{}
	probs := []float64{2.0, 2.0}

	d.AnnealProbs(probs)

	assert.Equal(t, []float64{1, 0}, probs)
}

func TestAnnealProbsDegenerateMass(t *testing.T) {
	a := &EmptyAnnealer{iterations: 1}

	assert.PanicsWithValue(t, ErrDegenerateMass, func() {
		a.AnnealProbs([]float64{0, 0, 0})
	})

	assert.PanicsWithValue(t, ErrDegenerateMass, func() {
		a.AnnealProbs([]float64{1, math.Inf(1)})
	})

	d := &MaximumPosteriorDecoder{}
	assert.PanicsWithValue(t, ErrDegenerateMass, func() {
		d.AnnealProbs([]float64{0, 0})
	})
}
