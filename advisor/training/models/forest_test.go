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
	"bytes"
	"context"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() ForestParams {
	p := DefaultForestParams()
	p.Trees = 10
	p.MaxDepth = 6
	p.MinSamplesSplit = 2
	p.MinSamplesLeaf = 1
	p.Parallelism = 4
	return p
}

// blobs returns two well separated classes on the first feature.
func blobs() ([][]float64, []int) {
	var (
		x [][]float64
		y []int
	)
	for i := 0; i < 40; i++ {
		v := float64(i % 10)
		x = append(x, []float64{v, float64(i % 3)})
		y = append(y, 0)
		x = append(x, []float64{v + 100, float64(i % 3)})
		y = append(y, 1)
	}

	return x, y
}

func TestForestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(p *ForestParams)
		expect func(t *testing.T, err error)
	}{
		{
			name: "valid",
			mock: func(p *ForestParams) {},
			expect: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "trees requires parameter",
			mock: func(p *ForestParams) { p.Trees = 0 },
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "forest requires parameter trees")
			},
		},
		{
			name: "maxDepth requires parameter",
			mock: func(p *ForestParams) { p.MaxDepth = 0 },
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "forest requires parameter maxDepth")
			},
		},
		{
			name: "minSamplesSplit too small",
			mock: func(p *ForestParams) { p.MinSamplesSplit = 1 },
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "forest requires minSamplesSplit of at least 2")
			},
		},
		{
			name: "minSamplesLeaf too small",
			mock: func(p *ForestParams) { p.MinSamplesLeaf = 0 },
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "forest requires minSamplesLeaf of at least 1")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultForestParams()
			tc.mock(&p)
			tc.expect(t, p.Validate())
		})
	}
}

func TestRandomForestClassifier(t *testing.T) {
	x, y := blobs()
	f := NewRandomForestClassifier(testParams())
	require.NoError(t, f.Fit(context.Background(), x, y, 2))
	assert.True(t, f.Fitted())
	assert.Len(t, f.Trees, 10)

	proba, err := f.PredictProba([]float64{3, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-9)
	assert.Greater(t, proba[0], 0.9)

	c, err := f.Predict([]float64{105, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	_, err = f.PredictProba([]float64{1})
	assert.Error(t, err)

	for _, tree := range f.Trees {
		assert.LessOrEqual(t, tree.Depth, f.Params.MaxDepth)
	}
}

func TestRandomForestClassifier_Errors(t *testing.T) {
	f := NewRandomForestClassifier(testParams())
	_, err := f.PredictProba([]float64{1, 2})
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.Error(t, f.Fit(context.Background(), [][]float64{{1}}, []int{0, 1}, 2))
	assert.Error(t, f.Fit(context.Background(), [][]float64{{1}}, []int{3}, 2))
	assert.Error(t, f.Fit(context.Background(), [][]float64{{1}, {1, 2}}, []int{0, 1}, 2))
	assert.Error(t, f.Fit(context.Background(), nil, nil, 2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	x, y := blobs()
	assert.ErrorIs(t, f.Fit(ctx, x, y, 2), context.Canceled)
}

func TestRandomForestClassifier_Deterministic(t *testing.T) {
	x, y := blobs()
	p := testParams()
	p.MaxFeatures = 1

	a := NewRandomForestClassifier(p)
	require.NoError(t, a.Fit(context.Background(), x, y, 2))
	p.Parallelism = 1
	b := NewRandomForestClassifier(p)
	require.NoError(t, b.Fit(context.Background(), x, y, 2))

	assert.Equal(t, a.Trees, b.Trees)
}

func TestRandomForestRegressor(t *testing.T) {
	var (
		x [][]float64
		y []float64
	)
	for i := 0; i < 100; i++ {
		x = append(x, []float64{float64(i)})
		if i < 50 {
			y = append(y, 10)
		} else {
			y = append(y, 20)
		}
	}

	p := testParams()
	p.MaxFeatures = MaxFeaturesAll
	f := NewRandomForestRegressor(p)
	require.NoError(t, f.Fit(context.Background(), x, y))

	low, err := f.Predict([]float64{10})
	require.NoError(t, err)
	assert.InDelta(t, 10, low, 0.5)

	high, err := f.Predict([]float64{90})
	require.NoError(t, err)
	assert.InDelta(t, 20, high, 0.5)

	_, err = NewRandomForestRegressor(p).Predict([]float64{1})
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestForest_Gob(t *testing.T) {
	x, y := blobs()
	f := NewRandomForestClassifier(testParams())
	require.NoError(t, f.Fit(context.Background(), x, y, 2))

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(f))

	var decoded RandomForestClassifier
	require.NoError(t, gob.NewDecoder(&buf).Decode(&decoded))

	want, err := f.PredictProba([]float64{50, 1})
	require.NoError(t, err)
	got, err := decoded.PredictProba([]float64{50, 1})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGiniCost(t *testing.T) {
	assert.Equal(t, 0.0, giniCost([]float64{4, 0}, 4))
	assert.Equal(t, 2.0, giniCost([]float64{2, 2}, 4))
	assert.Equal(t, 0.0, giniCost(nil, 0))
	assert.InDelta(t, 2.0, sse(6, 14, 3), 1e-9)
}
