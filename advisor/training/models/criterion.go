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

// criterion scores candidate splits of a node. Samples start on the right
// side after reset and are moved to the left one at a time in ascending
// feature order.
type criterion interface {
	reset(idx []int)
	moveLeft(i int)

	// cost returns the summed impurity of both children, each weighted by
	// its sample count.
	cost() float64

	// nodeCost returns the weighted impurity of the node before splitting.
	nodeCost() float64

	// pure reports whether the node cannot be improved by any split.
	pure() bool

	// leaf returns the value stored in a leaf over idx.
	leaf(idx []int) []float64
}

// gini is the Gini impurity criterion for classification.
type gini struct {
	y       []int
	classes int
	left    []float64
	right   []float64
	nLeft   float64
	nRight  float64
}

func newGini(y []int, classes int) *gini {
	return &gini{
		y:       y,
		classes: classes,
		left:    make([]float64, classes),
		right:   make([]float64, classes),
	}
}

func (g *gini) reset(idx []int) {
	for c := range g.left {
		g.left[c] = 0
		g.right[c] = 0
	}
	for _, i := range idx {
		g.right[g.y[i]]++
	}
	g.nLeft, g.nRight = 0, float64(len(idx))
}

func (g *gini) moveLeft(i int) {
	g.left[g.y[i]]++
	g.right[g.y[i]]--
	g.nLeft++
	g.nRight--
}

func (g *gini) cost() float64 {
	return giniCost(g.left, g.nLeft) + giniCost(g.right, g.nRight)
}

func (g *gini) nodeCost() float64 {
	total := make([]float64, g.classes)
	for c := range total {
		total[c] = g.left[c] + g.right[c]
	}

	return giniCost(total, g.nLeft+g.nRight)
}

func (g *gini) pure() bool {
	nonzero := 0
	for c := range g.right {
		if g.left[c]+g.right[c] > 0 {
			nonzero++
		}
	}

	return nonzero <= 1
}

func (g *gini) leaf(idx []int) []float64 {
	dist := make([]float64, g.classes)
	for _, i := range idx {
		dist[g.y[i]]++
	}

	n := float64(len(idx))
	for c := range dist {
		dist[c] /= n
	}

	return dist
}

// giniCost returns n times the Gini impurity of counts.
func giniCost(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range counts {
		sum += c * c
	}

	return n - sum/n
}

// mse is the squared error criterion for regression.
type mse struct {
	y                 []float64
	sumLeft, sumRight float64
	sqLeft, sqRight   float64
	nLeft, nRight     float64
}

func newMSE(y []float64) *mse {
	return &mse{y: y}
}

func (m *mse) reset(idx []int) {
	m.sumLeft, m.sqLeft, m.nLeft = 0, 0, 0
	m.sumRight, m.sqRight, m.nRight = 0, 0, 0
	for _, i := range idx {
		m.sumRight += m.y[i]
		m.sqRight += m.y[i] * m.y[i]
		m.nRight++
	}
}

func (m *mse) moveLeft(i int) {
	v := m.y[i]
	m.sumLeft += v
	m.sqLeft += v * v
	m.nLeft++
	m.sumRight -= v
	m.sqRight -= v * v
	m.nRight--
}

func (m *mse) cost() float64 {
	return sse(m.sumLeft, m.sqLeft, m.nLeft) + sse(m.sumRight, m.sqRight, m.nRight)
}

func (m *mse) nodeCost() float64 {
	return sse(m.sumLeft+m.sumRight, m.sqLeft+m.sqRight, m.nLeft+m.nRight)
}

func (m *mse) pure() bool {
	return m.nodeCost() <= 1e-12
}

func (m *mse) leaf(idx []int) []float64 {
	sum := 0.0
	for _, i := range idx {
		sum += m.y[i]
	}

	return []float64{sum / float64(len(idx))}
}

// sse returns the sum of squared errors around the mean.
func sse(sum, sq, n float64) float64 {
	if n == 0 {
		return 0
	}

	v := sq - sum*sum/n
	if v < 0 {
		return 0
	}

	return v
}
