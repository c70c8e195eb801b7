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

package training

import (
	"errors"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/cropwise/cropwise/advisor/dataset"
)

// StratifiedSplit splits row indexes into train and test sets keeping the
// class proportions of labels in both. Classes with at least two rows
// contribute to both sets.
func StratifiedSplit(labels []int, testPercent float64, rng *rand.Rand) ([]int, []int, error) {
	if err := checkTestPercent(testPercent); err != nil {
		return nil, nil, err
	}

	byClass := make(map[int][]int)
	var classes []int
	for i, c := range labels {
		if _, ok := byClass[c]; !ok {
			classes = append(classes, c)
		}
		byClass[c] = append(byClass[c], i)
	}
	sort.Ints(classes)

	var train, test []int
	for _, c := range classes {
		rows := byClass[c]
		rng.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})

		n := testCount(len(rows), testPercent)
		if len(rows) >= 2 {
			if n == 0 {
				n = 1
			}
			if n == len(rows) {
				n = len(rows) - 1
			}
		}

		test = append(test, rows[:n]...)
		train = append(train, rows[n:]...)
	}

	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}

// RandomSplit splits n row indexes into train and test sets.
func RandomSplit(n int, testPercent float64, rng *rand.Rand) ([]int, []int, error) {
	if err := checkTestPercent(testPercent); err != nil {
		return nil, nil, err
	}

	perm := rng.Perm(n)
	k := testCount(n, testPercent)
	test := append([]int(nil), perm[:k]...)
	train := append([]int(nil), perm[k:]...)

	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}

func testCount(n int, testPercent float64) int {
	return int(math.Round(float64(n) * testPercent))
}

func checkTestPercent(testPercent float64) error {
	if testPercent <= 0 || testPercent >= 1 {
		return errors.New("testPercent must be in (0, 1)")
	}

	return nil
}

func selectRows(x [][]float64, rows []int) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = x[r]
	}

	return out
}

func selectInts(y []int, rows []int) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = y[r]
	}

	return out
}

func selectFloats(y []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = y[r]
	}

	return out
}

func selectSamples(samples []dataset.Sample, rows []int) []dataset.Sample {
	out := make([]dataset.Sample, len(rows))
	for i, r := range rows {
		out[i] = samples[r]
	}

	return out
}
