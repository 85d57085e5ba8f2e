// Package model loads a pre-trained gradient-boosted tree ensemble from a
// serialized artifact and turns a health record into a hypertension
// probability.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"
)

var (
	ErrNoTrees         = errors.New("model artifact contains no trees")
	ErrFeatureMismatch = errors.New("model features do not match the health record mapping")
	ErrBadPrediction   = errors.New("model produced a non-finite prediction")
)

// Predictor is what the rest of the service sees of the trained model.
type Predictor interface {
	Predict(rec ds.HealthRecord) (float64, error)
}

// Node is one split or leaf of a decision tree. For split nodes Left/Right
// index into the tree's node slice and must point past the parent; values
// <= Threshold go left.
type Node struct {
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Ensemble is the serialized model: an initial log-odds score plus additive
// tree outputs, squashed through a sigmoid.
type Ensemble struct {
	Version   int      `json:"version"`
	Features  []string `json:"features"`
	InitScore float64  `json:"init_score"`
	Trees     []Tree   `json:"trees"`
}

// Load reads and validates a model artifact from disk.
func Load(path string) (*Ensemble, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var e Ensemble
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if len(e.Trees) == 0 {
		return nil, ErrNoTrees
	}
	if len(e.Features) != len(featureNames) {
		return nil, ErrFeatureMismatch
	}
	for i, name := range featureNames {
		if e.Features[i] != name {
			return nil, ErrFeatureMismatch
		}
	}
	for ti, tree := range e.Trees {
		for ni, n := range tree.Nodes {
			if n.Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= len(featureNames) {
				return nil, fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, n.Feature)
			}
			if n.Left < 0 || n.Left >= len(tree.Nodes) || n.Right < 0 || n.Right >= len(tree.Nodes) {
				return nil, fmt.Errorf("tree %d node %d: child index out of range", ti, ni)
			}
			// children must come after their parent so traversal always
			// terminates
			if n.Left <= ni || n.Right <= ni {
				return nil, fmt.Errorf("tree %d node %d: child index must follow its parent", ti, ni)
			}
		}
	}
	return &e, nil
}

func (t Tree) output(x []float64) float64 {
	i := 0
	for !t.Nodes[i].Leaf {
		n := t.Nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// Score sums the raw tree outputs on top of the initial score.
func (e *Ensemble) Score(x []float64) float64 {
	score := e.InitScore
	for _, tree := range e.Trees {
		score += tree.output(x)
	}
	return score
}

// Predict maps the record to its feature vector and returns the sigmoid of
// the raw ensemble score.
func (e *Ensemble) Predict(rec ds.HealthRecord) (float64, error) {
	p := sigmoid(e.Score(Features(rec)))
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, ErrBadPrediction
	}
	return p, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
