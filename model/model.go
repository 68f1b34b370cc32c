package model

import (
	"fmt"

	"github.com/bobonovski/gosphere/config"
	"github.com/bobonovski/gosphere/corpus"
)

var constructors = make(map[string]ModelCtor)

// the common interface region samplers should follow
type Model interface {
	// run annealed gibbs sweeps over the corpus
	Train()
	// run the terminal maximum-posterior assignment pass
	Decode()
	// serialize final per-token region and coordinate assignments
	SaveAssignments(fn string) error
	// serialize averaged sufficient statistics
	SaveAveraged(prefix string) error
}

// new region samplers should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(data *corpus.TokenArray, lex *corpus.CoordinateLexicon,
	cfg *config.Config) (Model, error)

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}
