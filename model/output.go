package model

import (
	"os"

	"github.com/gocarina/gocsv"
)

// tokenAssignment is one row of the final assignment output.
// Stopwords keep the -1 sentinel, ordinary words a -1 coordinate.
type tokenAssignment struct {
	Index      int    `csv:"index"`
	WordId     uint32 `csv:"word_id"`
	DocumentId uint32 `csv:"document_id"`
	Toponym    bool   `csv:"toponym"`
	Stopword   bool   `csv:"stopword"`
	RegionId   int32  `csv:"region_id"`
	CoordId    int32  `csv:"coordinate_id"`
}

// SaveAssignments writes the per-token region and coordinate choices
// as csv
func (this *Spherical) SaveAssignments(fn string) error {
	rows := make([]*tokenAssignment, 0, this.data.N)
	for i := uint32(0); i < this.data.N; i += 1 {
		rows = append(rows, &tokenAssignment{
			Index:      int(i),
			WordId:     this.data.Word[i],
			DocumentId: this.data.Document[i],
			Toponym:    this.data.Toponym[i],
			Stopword:   this.data.Stopword[i],
			RegionId:   this.region[i],
			CoordId:    this.coord[i],
		})
	}

	out, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer out.Close()

	return gocsv.MarshalFile(&rows, out)
}

// SaveAveraged serializes the averaged sufficient statistics for
// downstream consumers
func (this *Spherical) SaveAveraged(prefix string) error {
	if err := this.stats.wordByRegion.Serialize(prefix + ".wbr"); err != nil {
		return err
	}
	if err := this.stats.regionByDocument.Serialize(prefix + ".rbd"); err != nil {
		return err
	}
	if err := this.stats.allWordsRegion.Serialize(prefix + ".awr"); err != nil {
		return err
	}
	if err := this.stats.regionMeans.Serialize(prefix + ".means"); err != nil {
		return err
	}
	if err := this.stats.coordCounts.Serialize(prefix + ".coord"); err != nil {
		return err
	}
	return nil
}
