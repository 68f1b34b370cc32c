package model

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	log "github.com/golang/glog"

	"github.com/bobonovski/gosphere/config"
	"github.com/bobonovski/gosphere/corpus"
	"github.com/bobonovski/gosphere/geom"
)

func init() {
	Register("spherical", NewSpherical)
}

// Spherical is the nonparametric spherical region sampler: a CRP
// mixture over latent geographic regions inferred by collapsed gibbs
// sampling with simulated annealing. Toponym tokens carry a candidate
// coordinate choice and alone may open new regions.
type Spherical struct {
	data *corpus.TokenArray
	lex  *corpus.CoordinateLexicon
	cfg  *config.Config

	crpScore float64 // constant score of a new-region slot
	betaW    float64

	// per-token mutable assignments, -1 for stopwords
	region []int32
	coord  []int32

	st       *regionState
	stats    *sampleStats
	annealer Annealer
	rng      *rand.Rand
}

// NewSpherical validates the inputs and builds a sampler with all
// region-indexed state allocated at the initial expected capacity.
func NewSpherical(data *corpus.TokenArray, lex *corpus.CoordinateLexicon,
	cfg *config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := lex.Validate(data); err != nil {
		return nil, err
	}

	hasToponym := false
	for i := uint32(0); i < data.N; i += 1 {
		if data.Toponym[i] && !data.Stopword[i] {
			hasToponym = true
			break
		}
	}
	if !hasToponym {
		return nil, fmt.Errorf("corpus holds no non-stopword toponym tokens")
	}

	expectedR := uint32(cfg.ExpectedRegions(int(data.N)))
	if expectedR < 2 {
		expectedR = 2
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	this := &Spherical{
		data:     data,
		lex:      lex,
		cfg:      cfg,
		crpScore: geom.CRPScore(cfg.CrpAlpha, cfg.Kappa),
		betaW:    cfg.Beta * float64(data.W),
		region:   make([]int32, data.N),
		coord:    make([]int32, data.N),
		st:       newRegionState(data.W, data.D, expectedR, lex, cfg.ExpansionFactor),
		stats:    newSampleStats(data.W, data.D, expectedR, lex.Shape()),
		annealer: NewAnnealer(cfg.InitialTemp, cfg.TargetTemp, cfg.Iterations),
		rng:      rand.New(rand.NewSource(seed)),
	}
	for i := range this.region {
		this.region[i] = -1
		this.coord[i] = -1
	}
	return this, nil
}

// randomInitialize assigns every non-stopword token a starting
// region. Toponyms draw CRP-style over the opened regions plus a
// new-region option and a uniform candidate coordinate; ordinary
// words draw uniformly over the opened regions.
func (this *Spherical) randomInitialize() {
	st := this.st

	for i := uint32(0); i < this.data.N; i += 1 {
		if this.data.Stopword[i] || !this.data.Toponym[i] {
			continue
		}
		word := this.data.Word[i]
		doc := this.data.Document[i]

		total := float64(st.currentR) + this.cfg.CrpAlpha
		u := this.rng.Float64() * total
		var region uint32
		if u >= float64(st.currentR) {
			region = st.currentR
			st.currentR += 1
			if st.currentR >= st.expectedR {
				this.expandRegions()
			}
		} else {
			region = uint32(u)
		}

		coordId := uint32(this.rng.Intn(len(this.lex.Coords[word])))
		st.assignToponym(region, word, doc, coordId)
		this.region[i] = int32(region)
		this.coord[i] = int32(coordId)
	}

	for i := uint32(0); i < this.data.N; i += 1 {
		if this.data.Stopword[i] || this.data.Toponym[i] {
			continue
		}
		region := uint32(this.rng.Intn(int(st.currentR)))
		st.assignWord(region, this.data.Word[i], this.data.Document[i])
		this.region[i] = int32(region)
	}

	// register the fresh empty slot so a new-region option always
	// exists
	if st.currentR >= st.expectedR {
		this.expandRegions()
	}
	st.markEmpty(st.currentR)
}

// Train runs the annealed gibbs sweeps, collecting sufficient
// statistics after every sweep and growing capacity when the unused
// margin shrinks below the expansion threshold.
func (this *Spherical) Train() {
	log.Infof("randomly initializing with %d tokens, %d words, %d documents, %d expected regions",
		this.data.N, this.data.W, this.data.D, this.st.expectedR)
	this.randomInitialize()
	log.Infof("beginning training with %d regions in use", this.st.currentR)

	iter := 0
	for this.annealer.NextIter() {
		iter += 1
		this.sweep()
		this.stats.collect(this.st)
		if this.st.needExpand() {
			this.expandRegions()
		}
		if iter%10 == 0 {
			log.Infof("iter %5d, regions in use %d, capacity %d",
				iter, this.st.currentR, this.st.expectedR)
		}
	}

	this.stats.average()
	log.Infof("training done after %d sweeps, %d regions in use", iter, this.st.currentR)
}

// sweep runs one full pass over the corpus
func (this *Spherical) sweep() {
	for i := uint32(0); i < this.data.N; i += 1 {
		if this.data.Stopword[i] {
			continue
		}
		if this.data.Toponym[i] {
			this.sampleToponym(i)
		} else {
			this.sampleWord(i)
		}
	}
}

// sampleToponym retracts token i, scores every (region, candidate)
// pair plus the CRP new-region slots, samples, and commits.
func (this *Spherical) sampleToponym(i uint32) {
	st := this.st
	word := this.data.Word[i]
	doc := this.data.Document[i]
	region := uint32(this.region[i])
	coordId := uint32(this.coord[i])
	cands := this.lex.Candidates(word)
	ncand := uint32(len(cands))

	if st.retractToponym(region, word, doc, coordId) {
		st.markEmpty(region)
		this.resetRegion(region)
	}

	// the score grid covers every opened region plus any empty slot
	// beyond them, with one bin per candidate coordinate
	rows := st.currentR
	for e := range st.emptySet {
		if e+1 > rows {
			rows = e + 1
		}
	}
	probs := make([]float64, rows*ncand)

	for j := uint32(0); j < st.currentR; j += 1 {
		mean := st.regionMeans.RowView(j)
		docCount := float64(st.regionByDocument.Get(doc, j))
		for k := uint32(0); k < ncand; k += 1 {
			probs[j*ncand+k] = docCount *
				geom.UnnormalizedDensity(cands[k], mean, this.cfg.Kappa)
		}
	}
	// empty slots share the constant new-region mass, spread evenly
	// across the candidates
	for e := range st.emptySet {
		for k := uint32(0); k < ncand; k += 1 {
			probs[e*ncand+k] = this.crpScore / float64(ncand)
		}
	}

	total := this.annealer.AnnealProbs(probs)
	idx := uint32(this.drawIndex(probs, total))
	region = idx / ncand
	coordId = idx % ncand

	st.assignToponym(region, word, doc, coordId)
	this.region[i] = int32(region)
	this.coord[i] = int32(coordId)

	if st.isEmpty(region) {
		this.settle(region)
	}
}

// settle opens a previously empty region that a toponym just moved
// into: the fresh slot bumps currentR, and when no empty region
// remains a new fresh slot is registered so a new-cluster option
// always exists
func (this *Spherical) settle(region uint32) {
	st := this.st
	st.activate(region)
	if region == st.currentR {
		st.currentR += 1
	}
	if len(st.emptySet) == 0 {
		if st.currentR >= st.expectedR {
			this.expandRegions()
		}
		st.markEmpty(st.currentR)
	}
}

// sampleWord retracts ordinary token i, scores the opened regions
// with the dirichlet-multinomial word term times the document
// affinity, samples, and commits. Ordinary words never open regions.
func (this *Spherical) sampleWord(i uint32) {
	st := this.st
	word := this.data.Word[i]
	doc := this.data.Document[i]
	region := uint32(this.region[i])

	st.retractWord(region, word, doc)

	probs := make([]float64, st.currentR)
	this.scoreWordRegions(word, doc, probs)

	total := this.annealer.AnnealProbs(probs)
	region = uint32(this.drawIndex(probs, total))

	st.assignWord(region, word, doc)
	this.region[i] = int32(region)
}

// scoreWordRegions fills probs[j] with
// (wordByRegion + beta) / (allWords + beta*W) * regionByDocument
// for every opened region
func (this *Spherical) scoreWordRegions(word, doc uint32, probs []float64) {
	st := this.st
	for j := uint32(0); j < st.currentR; j += 1 {
		probs[j] = (float64(st.wordByRegion.Get(word, j)) + this.cfg.Beta) /
			(float64(st.allWordsRegionCounts[j]) + this.betaW) *
			float64(st.regionByDocument.Get(doc, j))
	}
}

// resetRegion recycles a region whose toponym count dropped to zero:
// its counts are cleared and every ordinary token still attributed to
// it is re-scored against the remaining opened regions, with the
// vacated slot excluded.
func (this *Spherical) resetRegion(vacated uint32) {
	st := this.st
	st.zeroRegion(vacated)

	for i := uint32(0); i < this.data.N; i += 1 {
		if this.data.Stopword[i] || this.data.Toponym[i] {
			continue
		}
		if uint32(this.region[i]) != vacated {
			continue
		}
		word := this.data.Word[i]
		doc := this.data.Document[i]

		probs := make([]float64, st.currentR)
		this.scoreWordRegions(word, doc, probs)
		probs[vacated] = 0

		total := this.annealer.AnnealProbs(probs)
		region := uint32(this.drawIndex(probs, total))

		st.assignWord(region, word, doc)
		this.region[i] = int32(region)
	}
}

// expandRegions grows the live state and the averaged mirrors to
// ceil(expectedR*(1+factor)) slots in one step, so no token update
// can observe a partial resize
func (this *Spherical) expandRegions() {
	newR := uint32(math.Ceil(float64(this.st.expectedR) * (1 + this.cfg.ExpansionFactor)))
	this.st.expand(newR)
	this.stats.expand(newR)
	log.Infof("expanded region capacity to %d", newR)
}

// Decode runs the terminal maximum-posterior pass over the averaged
// statistics: one assignment per token, no retraction, no CRP term,
// no growth.
func (this *Spherical) Decode() {
	decoder := &MaximumPosteriorDecoder{}
	st := this.st
	stats := this.stats

	for i := uint32(0); i < this.data.N; i += 1 {
		if this.data.Stopword[i] {
			continue
		}
		word := this.data.Word[i]
		doc := this.data.Document[i]

		if this.data.Toponym[i] {
			cands := this.lex.Candidates(word)
			ncand := uint32(len(cands))
			probs := make([]float64, st.currentR*ncand)
			for j := uint32(0); j < st.currentR; j += 1 {
				mean := stats.regionMeans.RowView(j)
				docCount := stats.regionByDocument.Get(doc, j)
				for k := uint32(0); k < ncand; k += 1 {
					probs[j*ncand+k] = docCount *
						geom.UnnormalizedDensity(cands[k], mean, this.cfg.Kappa)
				}
			}
			total := decoder.AnnealProbs(probs)
			idx := uint32(this.drawIndex(probs, total))
			this.region[i] = int32(idx / ncand)
			this.coord[i] = int32(idx % ncand)
		} else {
			probs := make([]float64, st.currentR)
			for j := uint32(0); j < st.currentR; j += 1 {
				probs[j] = (stats.wordByRegion.Get(word, j) + this.cfg.Beta) /
					(stats.allWordsRegion.Get(j, 0) + this.betaW) *
					(stats.regionByDocument.Get(doc, j) + this.cfg.Alpha)
			}
			total := decoder.AnnealProbs(probs)
			this.region[i] = int32(this.drawIndex(probs, total))
		}
	}
	log.Infof("decode pass done over %d tokens", this.data.N)
}

// drawIndex samples from the unnormalized distribution by inverse
// CDF: the first bin whose cumulative sum meets or exceeds the draw
// wins, so ties resolve to the lowest index
func (this *Spherical) drawIndex(probs []float64, total float64) int {
	u := this.rng.Float64() * total
	cum := float64(0.0)
	for i, p := range probs {
		cum += p
		if cum >= u {
			return i
		}
	}
	// float roundoff can leave the running sum a hair short
	return len(probs) - 1
}
