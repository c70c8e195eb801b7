/*
 *     Copyright 2026 The Cropwise Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTrees is the default number of trees in a forest.
	DefaultTrees = 100

	// DefaultMaxDepth is the default maximum tree depth.
	DefaultMaxDepth = 15

	// DefaultMinSamplesSplit is the default minimum node size to split.
	DefaultMinSamplesSplit = 5

	// DefaultMinSamplesLeaf is the default minimum leaf size.
	DefaultMinSamplesLeaf = 2
)

// MaxFeatures values.
const (
	// MaxFeaturesSqrt considers the square root of the feature count per split.
	MaxFeaturesSqrt = -1

	// MaxFeaturesAll considers every feature per split.
	MaxFeaturesAll = 0
)

var (
	// ErrNotFitted is returned when predicting with an unfitted forest.
	ErrNotFitted = errors.New("no fitted model")
)

// ForestParams are the hyperparameters of a random forest.
type ForestParams struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	Seed            int64
	Parallelism     int
}

// DefaultForestParams returns the default hyperparameters.
func DefaultForestParams() ForestParams {
	return ForestParams{
		Trees:           DefaultTrees,
		MaxDepth:        DefaultMaxDepth,
		MinSamplesSplit: DefaultMinSamplesSplit,
		MinSamplesLeaf:  DefaultMinSamplesLeaf,
		MaxFeatures:     MaxFeaturesSqrt,
		Seed:            42,
		Parallelism:     runtime.GOMAXPROCS(0),
	}
}

// Validate checks the hyperparameters.
func (p ForestParams) Validate() error {
	if p.Trees <= 0 {
		return errors.New("forest requires parameter trees")
	}

	if p.MaxDepth <= 0 {
		return errors.New("forest requires parameter maxDepth")
	}

	if p.MinSamplesSplit < 2 {
		return errors.New("forest requires minSamplesSplit of at least 2")
	}

	if p.MinSamplesLeaf < 1 {
		return errors.New("forest requires minSamplesLeaf of at least 1")
	}

	return nil
}

func (p ForestParams) treeParams(features int) treeParams {
	k := p.MaxFeatures
	if k == MaxFeaturesSqrt {
		k = int(math.Sqrt(float64(features)))
		if k < 1 {
			k = 1
		}
	}

	return treeParams{
		maxDepth:        p.MaxDepth,
		minSamplesSplit: p.MinSamplesSplit,
		minSamplesLeaf:  p.MinSamplesLeaf,
		maxFeatures:     k,
	}
}

// treeRand returns the generator of one tree, independent of scheduling.
func (p ForestParams) treeRand(index int) *rand.Rand {
	return rand.New(rand.NewSource(uint64(p.Seed)*0x9e3779b97f4a7c15 + uint64(index) + 1))
}

// fitTrees grows the forest in parallel. newCriterion must return a fresh
// criterion per tree.
func fitTrees(ctx context.Context, p ForestParams, x [][]float64, newCriterion func() criterion) ([]*Tree, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if len(x) == 0 {
		return nil, errors.New("forest requires at least one sample")
	}

	features := len(x[0])
	for i, row := range x {
		if len(row) != features {
			return nil, fmt.Errorf("sample %d has %d features, expected %d", i, len(row), features)
		}
	}

	trees := make([]*Tree, p.Trees)
	params := p.treeParams(features)
	eg, ctx := errgroup.WithContext(ctx)
	if p.Parallelism > 0 {
		eg.SetLimit(p.Parallelism)
	}

	for t := 0; t < p.Trees; t++ {
		t := t
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rng := p.treeRand(t)
			idx := make([]int, len(x))
			for i := range idx {
				idx[i] = rng.Intn(len(x))
			}

			tree, err := buildTree(x, idx, newCriterion(), params, rng)
			if err != nil {
				return err
			}

			trees[t] = tree
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return trees, nil
}

// RandomForestClassifier is a bagged ensemble of Gini CART trees.
type RandomForestClassifier struct {
	Params   ForestParams
	Classes  int
	Features int
	Trees    []*Tree
}

// NewRandomForestClassifier returns an unfitted classifier.
func NewRandomForestClassifier(params ForestParams) *RandomForestClassifier {
	return &RandomForestClassifier{Params: params}
}

// Fit grows the forest on x with class indexes y in [0, classes).
func (f *RandomForestClassifier) Fit(ctx context.Context, x [][]float64, y []int, classes int) error {
	if len(x) != len(y) {
		return fmt.Errorf("got %d samples and %d labels", len(x), len(y))
	}

	if classes <= 0 {
		return errors.New("classifier requires at least one class")
	}

	for i, c := range y {
		if c < 0 || c >= classes {
			return fmt.Errorf("label %d of sample %d out of range", c, i)
		}
	}

	trees, err := fitTrees(ctx, f.Params, x, func() criterion {
		return newGini(y, classes)
	})
	if err != nil {
		return err
	}

	f.Classes = classes
	f.Features = len(x[0])
	f.Trees = trees
	return nil
}

// Fitted reports whether the classifier has trees.
func (f *RandomForestClassifier) Fitted() bool {
	return f != nil && len(f.Trees) > 0
}

// PredictProba returns the mean of the per-tree class distributions.
func (f *RandomForestClassifier) PredictProba(row []float64) ([]float64, error) {
	if !f.Fitted() {
		return nil, ErrNotFitted
	}

	if len(row) != f.Features {
		return nil, fmt.Errorf("got %d features, expected %d", len(row), f.Features)
	}

	proba := make([]float64, f.Classes)
	for _, t := range f.Trees {
		for c, p := range t.Predict(row) {
			proba[c] += p
		}
	}

	n := float64(len(f.Trees))
	for c := range proba {
		proba[c] /= n
	}

	return proba, nil
}

// Predict returns the most probable class. Ties go to the lower index.
func (f *RandomForestClassifier) Predict(row []float64) (int, error) {
	proba, err := f.PredictProba(row)
	if err != nil {
		return 0, err
	}

	best := 0
	for c, p := range proba {
		if p > proba[best] {
			best = c
		}
	}

	return best, nil
}

// RandomForestRegressor is a bagged ensemble of squared error CART trees.
type RandomForestRegressor struct {
	Params   ForestParams
	Features int
	Trees    []*Tree
}

// NewRandomForestRegressor returns an unfitted regressor.
func NewRandomForestRegressor(params ForestParams) *RandomForestRegressor {
	return &RandomForestRegressor{Params: params}
}

// Fit grows the forest on x with targets y.
func (f *RandomForestRegressor) Fit(ctx context.Context, x [][]float64, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("got %d samples and %d targets", len(x), len(y))
	}

	trees, err := fitTrees(ctx, f.Params, x, func() criterion {
		return newMSE(y)
	})
	if err != nil {
		return err
	}

	f.Features = len(x[0])
	f.Trees = trees
	return nil
}

// Fitted reports whether the regressor has trees.
func (f *RandomForestRegressor) Fitted() bool {
	return f != nil && len(f.Trees) > 0
}

// Predict returns the mean of the per-tree predictions.
func (f *RandomForestRegressor) Predict(row []float64) (float64, error) {
	if !f.Fitted() {
		return 0, ErrNotFitted
	}

	if len(row) != f.Features {
		return 0, fmt.Errorf("got %d features, expected %d", len(row), f.Features)
	}

	sum := 0.0
	for _, t := range f.Trees {
		sum += t.Predict(row)[0]
	}

	return sum / float64(len(f.Trees)), nil
}
