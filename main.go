package main

import (
	"flag"

	log "github.com/golang/glog"

	"github.com/bobonovski/gosphere/config"
	"github.com/bobonovski/gosphere/corpus"
	"github.com/bobonovski/gosphere/model"
)

var (
	tokenFile   = flag.String("token_file", "", "token array input file")
	lexiconFile = flag.String("lexicon_file", "", "toponym coordinate lexicon file")
	configFile  = flag.String("config", "", "optional yaml config overriding defaults")
	modelType   = flag.String("model", "spherical", "model type")
	output      = flag.String("output", "gosphere", "output file prefix")
)

func main() {
	flag.Parse()
	defer log.Flush()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	data, err := corpus.LoadTokenArray(*tokenFile)
	if err != nil {
		log.Fatalf("token array: %v", err)
	}
	lex, err := corpus.LoadCoordinateLexicon(*lexiconFile)
	if err != nil {
		log.Fatalf("coordinate lexicon: %v", err)
	}

	ctor, err := model.GetModel(*modelType)
	if err != nil {
		log.Fatal(err)
	}
	m, err := ctor(data, lex, cfg)
	if err != nil {
		log.Fatalf("model init: %v", err)
	}

	m.Train()
	m.Decode()

	if err := m.SaveAssignments(*output + ".assignments.csv"); err != nil {
		log.Fatalf("save assignments: %v", err)
	}
	if err := m.SaveAveraged(*output); err != nil {
		log.Fatalf("save averaged statistics: %v", err)
	}
}
