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

package dataset

import (
	"github.com/cropwise/cropwise/advisor/scoring"
)

// FeatureNames is the canonical feature order of every feature vector.
var FeatureNames = []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// Sample is one labeled training row.
type Sample struct {
	Nitrogen    float64 `csv:"N"`
	Phosphorus  float64 `csv:"P"`
	Potassium   float64 `csv:"K"`
	Temperature float64 `csv:"temperature"`
	Humidity    float64 `csv:"humidity"`
	PH          float64 `csv:"ph"`
	Rainfall    float64 `csv:"rainfall"`
	Label       string  `csv:"label"`
	Yield       float64 `csv:"yield"`
}

// Features returns the feature vector in FeatureNames order.
func (s Sample) Features() []float64 {
	return []float64{s.Nitrogen, s.Phosphorus, s.Potassium, s.Temperature, s.Humidity, s.PH, s.Rainfall}
}

// Conditions returns the dimensions scored by the condition scorer.
func (s Sample) Conditions() scoring.Conditions {
	return scoring.Conditions{
		PH:          s.PH,
		Temperature: s.Temperature,
		Humidity:    s.Humidity,
		Rainfall:    s.Rainfall,
	}
}

// Matrix returns the feature matrix of samples.
func Matrix(samples []Sample) [][]float64 {
	x := make([][]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Features()
	}

	return x
}

// Labels returns the crop label of every sample.
func Labels(samples []Sample) []string {
	labels := make([]string, len(samples))
	for i, s := range samples {
		labels[i] = s.Label
	}

	return labels
}

// Yields returns the yield target of every sample.
func Yields(samples []Sample) []float64 {
	yields := make([]float64, len(samples))
	for i, s := range samples {
		yields[i] = s.Yield
	}

	return yields
}

// Distribution counts samples per label.
func Distribution(samples []Sample) map[string]int {
	counts := make(map[string]int)
	for _, s := range samples {
		counts[s.Label]++
	}

	return counts
}
