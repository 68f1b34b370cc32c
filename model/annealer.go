package model

import (
	"errors"
	"math"

	"github.com/bobonovski/gosphere/sstable"
)

var ErrDegenerateMass = errors.New("model: probability mass is zero or not finite")

// Annealer reshapes unnormalized scores before sampling and drives
// the sweep schedule. Training runs the identity or the cooling
// variant, decoding runs the maximum posterior variant.
type Annealer interface {
	// advance to the next sweep, false when the budget is exhausted
	NextIter() bool
	// reshape scores in place and return the total mass
	AnnealProbs(probs []float64) float64
}

const annealerEpsilon = 1e-10

// NewAnnealer picks the identity annealer when the temperature
// schedule is flat and the cooling annealer otherwise.
func NewAnnealer(initialTemp, targetTemp float64, iterations int) Annealer {
	if math.Abs(initialTemp-targetTemp) < annealerEpsilon {
		return &EmptyAnnealer{iterations: iterations}
	}
	return NewSimulatedAnnealer(initialTemp, targetTemp, iterations)
}

// EmptyAnnealer leaves scores untouched, useful for debugging the
// sampler without a schedule
type EmptyAnnealer struct {
	iterations int
	iter       int
}

func (this *EmptyAnnealer) NextIter() bool {
	this.iter += 1
	return this.iter <= this.iterations
}

func (this *EmptyAnnealer) AnnealProbs(probs []float64) float64 {
	return checkMass(sstable.Float64VectorSum(probs))
}

// SimulatedAnnealer cools geometrically from the initial to the
// target temperature across the iteration budget and raises scores
// to the 1/temperature power before normalization
type SimulatedAnnealer struct {
	iterations  int
	iter        int
	temperature float64
	coolingRate float64
	targetTemp  float64
}

func NewSimulatedAnnealer(initialTemp, targetTemp float64, iterations int) *SimulatedAnnealer {
	rate := 1.0
	if iterations > 1 {
		rate = math.Pow(targetTemp/initialTemp, 1/float64(iterations-1))
	}
	return &SimulatedAnnealer{
		iterations:  iterations,
		temperature: initialTemp,
		coolingRate: rate,
		targetTemp:  targetTemp,
	}
}

func (this *SimulatedAnnealer) NextIter() bool {
	this.iter += 1
	if this.iter > this.iterations {
		return false
	}
	if this.iter > 1 {
		this.temperature *= this.coolingRate
		if this.temperature < this.targetTemp {
			this.temperature = this.targetTemp
		}
	}
	return true
}

// Temperature reports the current sweep temperature
func (this *SimulatedAnnealer) Temperature() float64 {
	return this.temperature
}

func (this *SimulatedAnnealer) AnnealProbs(probs []float64) float64 {
	inverse := 1 / this.temperature
	total := float64(0.0)
	for i, p := range probs {
		probs[i] = math.Pow(p, inverse)
		total += probs[i]
	}
	return checkMass(total)
}

// MaximumPosteriorDecoder collapses the distribution onto its best
// bin, the temperature to zero limit of annealing. Ties keep the
// lowest index.
type MaximumPosteriorDecoder struct{}

func (this *MaximumPosteriorDecoder) NextIter() bool {
	return false
}

func (this *MaximumPosteriorDecoder) AnnealProbs(probs []float64) float64 {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	checkMass(probs[best])
	for i := range probs {
		probs[i] = 0
	}
	probs[best] = 1
	return 1
}

// checkMass guards the normalization step against underflow and
// non-finite totals
func checkMass(total float64) float64 {
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		panic(ErrDegenerateMass)
	}
	return total
}
