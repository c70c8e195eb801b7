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

package scoring

import (
	"math"

	"github.com/cropwise/cropwise/advisor/knowledge"
)

// penalty is a linear per-unit penalty with a floor.
type penalty struct {
	rate  float64
	floor float64
}

var (
	phPenalty          = penalty{rate: 0.2, floor: 0.3}
	temperaturePenalty = penalty{rate: 0.05, floor: 0.2}
	humidityPenalty    = penalty{rate: 0.02, floor: 0.3}
	rainfallPenalty    = penalty{rate: 0.001, floor: 0.2}
)

// MinScore is the lowest attainable yield factor.
const MinScore = (0.3 + 0.2 + 0.3 + 0.2) / 4

// Conditions are the climate and soil dimensions scored against a crop.
type Conditions struct {
	PH          float64
	Temperature float64
	Humidity    float64
	Rainfall    float64
}

// Breakdown holds the sub-factor of each dimension.
type Breakdown struct {
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}

// Mean returns the arithmetic mean of the sub-factors.
func (b Breakdown) Mean() float64 {
	return (b.PH + b.Temperature + b.Humidity + b.Rainfall) / 4
}

// Factors scores every dimension of c against the optimal intervals of p.
func Factors(p knowledge.CropProfile, c Conditions) Breakdown {
	return Breakdown{
		PH:          subFactor(p.PH, c.PH, phPenalty),
		Temperature: subFactor(p.Temperature, c.Temperature, temperaturePenalty),
		Humidity:    subFactor(p.Humidity, c.Humidity, humidityPenalty),
		Rainfall:    subFactor(p.Rainfall, c.Rainfall, rainfallPenalty),
	}
}

// Score returns the yield factor in [MinScore, 1] of c for crop p.
func Score(p knowledge.CropProfile, c Conditions) float64 {
	return Factors(p, c).Mean()
}

func subFactor(r knowledge.Range, v float64, pen penalty) float64 {
	if r.Contains(v) {
		return 1
	}

	// NaN compares false against both endpoints and lands on the floor.
	deviation := r.Distance(v)
	if math.IsNaN(deviation) {
		return pen.floor
	}

	return math.Max(pen.floor, 1-pen.rate*deviation)
}
