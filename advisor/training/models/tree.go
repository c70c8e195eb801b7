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
	"errors"
	"sort"

	"golang.org/x/exp/rand"
)

// Node is one node of a flattened decision tree. Leaves have Left and
// Right set to -1.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     []float64
}

// IsLeaf reports whether the node is a leaf.
func (n Node) IsLeaf() bool {
	return n.Left < 0
}

// Tree is a CART decision tree.
type Tree struct {
	Nodes []Node
	Depth int
}

// Predict returns the leaf value reached by row.
func (t *Tree) Predict(row []float64) []float64 {
	if len(t.Nodes) == 0 {
		return nil
	}

	n := t.Nodes[0]
	for !n.IsLeaf() {
		if row[n.Feature] <= n.Threshold {
			n = t.Nodes[n.Left]
		} else {
			n = t.Nodes[n.Right]
		}
	}

	return n.Value
}

// treeParams are the stopping rules of a single tree.
type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int
}

// treeBuilder grows one tree over a bootstrap sample.
type treeBuilder struct {
	x      [][]float64
	crit   criterion
	params treeParams
	rng    *rand.Rand
	tree   *Tree
}

func buildTree(x [][]float64, idx []int, crit criterion, params treeParams, rng *rand.Rand) (*Tree, error) {
	if len(idx) == 0 {
		return nil, errors.New("tree requires at least one sample")
	}

	b := &treeBuilder{
		x:      x,
		crit:   crit,
		params: params,
		rng:    rng,
		tree:   &Tree{},
	}
	b.grow(idx, 0)

	return b.tree, nil
}

// grow appends the subtree over idx and returns its node index.
func (b *treeBuilder) grow(idx []int, depth int) int {
	id := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, Node{Left: -1, Right: -1})
	if depth > b.tree.Depth {
		b.tree.Depth = depth
	}

	feature, threshold, ok := b.split(idx, depth)
	if !ok {
		b.tree.Nodes[id].Value = b.crit.leaf(idx)
		return id
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.tree.Nodes[id].Feature = feature
	b.tree.Nodes[id].Threshold = threshold
	b.tree.Nodes[id].Left = l
	b.tree.Nodes[id].Right = r

	return id
}

// split finds the best split of idx over a random subset of features.
func (b *treeBuilder) split(idx []int, depth int) (int, float64, bool) {
	if depth >= b.params.maxDepth || len(idx) < b.params.minSamplesSplit || len(idx) < 2*b.params.minSamplesLeaf {
		return 0, 0, false
	}

	b.crit.reset(idx)
	if b.crit.pure() {
		return 0, 0, false
	}

	parent := b.crit.nodeCost()
	best, bestFeature, bestThreshold, found := parent, 0, 0.0, false
	sorted := make([]int, len(idx))
	minLeaf := b.params.minSamplesLeaf
	k := b.params.maxFeatures
	for n, f := range b.features() {
		// Keep drawing features past k until one yields a split.
		if k > 0 && n >= k && found {
			break
		}

		copy(sorted, idx)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})

		b.crit.reset(sorted)
		for j := 0; j < len(sorted)-1; j++ {
			b.crit.moveLeft(sorted[j])
			if j+1 < minLeaf || len(sorted)-j-1 < minLeaf {
				continue
			}

			lo, hi := b.x[sorted[j]][f], b.x[sorted[j+1]][f]
			if lo == hi {
				continue
			}

			if c := b.crit.cost(); c < best-1e-12 {
				best, bestFeature, bestThreshold, found = c, f, lo+(hi-lo)/2, true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

// features returns the feature visiting order of one split.
func (b *treeBuilder) features() []int {
	d := len(b.x[0])
	k := b.params.maxFeatures
	if k <= 0 || k >= d {
		all := make([]int, d)
		for i := range all {
			all[i] = i
		}
		return all
	}

	return b.rng.Perm(d)
}
