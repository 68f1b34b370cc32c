package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

// TokenArray holds the integer-coded corpus as four parallel arrays
// of length N. The arrays are read-only during sampling; region and
// coordinate assignments live in the model, not here.
type TokenArray struct {
	Word     []uint32
	Document []uint32
	Toponym  []bool
	Stopword []bool

	N uint32 // token count
	W uint32 // vocabulary size, max non-stopword word id + 1
	D uint32 // document count, max document id + 1
}

// LoadTokenArray reads a token file with one token per line:
// [wordId docId toponymFlag stopwordFlag]
// the flags are 0 or 1. Any line that does not parse is a fatal
// input error.
func LoadTokenArray(fn string) (*TokenArray, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := &TokenArray{}
	lineIdx := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineIdx += 1
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		vals := strings.Fields(txt)
		if len(vals) != 4 {
			return nil, fmt.Errorf("bad token record at line %d: %s", lineIdx, txt)
		}

		wordId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad word id at line %d: %w", lineIdx, err)
		}
		docId, err := strconv.ParseUint(vals[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad document id at line %d: %w", lineIdx, err)
		}
		topFlag, err := parseFlag(vals[2])
		if err != nil {
			return nil, fmt.Errorf("bad toponym flag at line %d: %w", lineIdx, err)
		}
		stopFlag, err := parseFlag(vals[3])
		if err != nil {
			return nil, fmt.Errorf("bad stopword flag at line %d: %w", lineIdx, err)
		}

		data.Word = append(data.Word, uint32(wordId))
		data.Document = append(data.Document, uint32(docId))
		data.Toponym = append(data.Toponym, topFlag)
		data.Stopword = append(data.Stopword, stopFlag)

		if !stopFlag && uint32(wordId) >= data.W {
			data.W = uint32(wordId) + 1
		}
		if uint32(docId) >= data.D {
			data.D = uint32(docId) + 1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	data.N = uint32(len(data.Word))
	if data.N == 0 {
		return nil, fmt.Errorf("token file %s holds no tokens", fn)
	}

	log.Infof("number of tokens %d", data.N)
	log.Infof("vocabulary size %d", data.W)
	log.Infof("number of documents %d", data.D)

	return data, nil
}

func parseFlag(s string) (bool, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return false, err
	}
	if v > 1 {
		return false, fmt.Errorf("flag value must be 0 or 1, got %d", v)
	}
	return v == 1, nil
}
