package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"

	"github.com/bobonovski/gosphere/geom"
)

// CoordinateLexicon maps toponym word ids to their ordered candidate
// coordinate lists, stored as unit vectors. Built once at load time
// and read-only during sampling.
type CoordinateLexicon struct {
	// Coords[t][k] is the k-th candidate unit vector of toponym t
	Coords [][][]float64

	T        uint32 // toponym id space, max toponym id + 1
	MaxCoord uint32 // largest candidate list length
}

// LoadCoordinateLexicon reads a lexicon file with one toponym per line:
// [toponymId lat lon lat lon ...]
// latitudes and longitudes are degrees. A toponym with no coordinate
// pairs is a fatal input error.
func LoadCoordinateLexicon(fn string) (*CoordinateLexicon, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records := make(map[uint32][][]float64)
	maxTopId := uint32(0)
	lineIdx := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineIdx += 1
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		vals := strings.Fields(txt)
		if len(vals) < 3 || len(vals)%2 == 0 {
			return nil, fmt.Errorf("bad lexicon record at line %d: %s", lineIdx, txt)
		}

		topId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad toponym id at line %d: %w", lineIdx, err)
		}

		var coords [][]float64
		for i := 1; i < len(vals); i += 2 {
			lat, err := strconv.ParseFloat(vals[i], 64)
			if err != nil {
				return nil, fmt.Errorf("bad latitude at line %d: %w", lineIdx, err)
			}
			lon, err := strconv.ParseFloat(vals[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("bad longitude at line %d: %w", lineIdx, err)
			}
			coords = append(coords, geom.CartesianFromDegrees(lat, lon))
		}

		records[uint32(topId)] = coords
		if uint32(topId) > maxTopId {
			maxTopId = uint32(topId)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("lexicon file %s holds no toponyms", fn)
	}

	lex := &CoordinateLexicon{
		Coords: make([][][]float64, maxTopId+1),
		T:      maxTopId + 1,
	}
	for topId, coords := range records {
		lex.Coords[topId] = coords
		if uint32(len(coords)) > lex.MaxCoord {
			lex.MaxCoord = uint32(len(coords))
		}
	}

	log.Infof("number of toponyms %d", lex.T)
	log.Infof("max candidate count %d", lex.MaxCoord)

	return lex, nil
}

// Candidates returns the candidate list of toponym t.
func (lex *CoordinateLexicon) Candidates(t uint32) [][]float64 {
	return lex.Coords[t]
}

// Shape returns the candidate count per toponym id, zero for word
// ids that never occur as toponyms.
func (lex *CoordinateLexicon) Shape() []uint32 {
	shape := make([]uint32, lex.T)
	for t := range lex.Coords {
		shape[t] = uint32(len(lex.Coords[t]))
	}
	return shape
}

// Validate checks that every toponym token in data resolves to a
// non-empty candidate list.
func (lex *CoordinateLexicon) Validate(data *TokenArray) error {
	for i := uint32(0); i < data.N; i += 1 {
		if !data.Toponym[i] || data.Stopword[i] {
			continue
		}
		wordId := data.Word[i]
		if wordId >= lex.T || len(lex.Coords[wordId]) == 0 {
			return fmt.Errorf("toponym %d at token %d has no candidate coordinates", wordId, i)
		}
	}
	return nil
}
