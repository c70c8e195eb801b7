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

package risk

// Level is a coarse bucket of a measured value.
type Level string

const (
	LevelAcidic   Level = "Acidic"
	LevelAlkaline Level = "Alkaline"
	LevelOptimal  Level = "Optimal"
	LevelLow      Level = "Low"
	LevelHigh     Level = "High"
)

const (
	// AcidicPH is the pH below which soil is acidic.
	AcidicPH = 5.5

	// AlkalinePH is the pH above which soil is alkaline.
	AlkalinePH = 7.5
)

// Nutrient is a soil macro nutrient.
type Nutrient string

const (
	Nitrogen   Nutrient = "N"
	Phosphorus Nutrient = "P"
	Potassium  Nutrient = "K"
)

// Thresholds is the {low, high} pair of a nutrient.
type Thresholds struct {
	Low  float64
	High float64
}

// NutrientThresholds are the fixed per nutrient thresholds.
var NutrientThresholds = map[Nutrient]Thresholds{
	Nitrogen:   {Low: 30, High: 80},
	Phosphorus: {Low: 20, High: 60},
	Potassium:  {Low: 25, High: 50},
}

var levelAdvice = map[Level]string{
	LevelAcidic:   "Acidic - May need liming",
	LevelAlkaline: "Alkaline - May need acidification",
	LevelLow:      "Low - Consider fertilizer application",
	LevelHigh:     "High - Adequate levels",
}

// PHLevel buckets soil pH.
func PHLevel(ph float64) Level {
	switch {
	case ph < AcidicPH:
		return LevelAcidic
	case ph > AlkalinePH:
		return LevelAlkaline
	default:
		return LevelOptimal
	}
}

// PHStatus describes soil pH for end users.
func PHStatus(ph float64) string {
	level := PHLevel(ph)
	if level == LevelOptimal {
		return "Optimal - Good for most crops"
	}

	return levelAdvice[level]
}

// NutrientLevel buckets a nutrient value, unknown nutrients use nitrogen thresholds.
func NutrientLevel(value float64, n Nutrient) Level {
	t, ok := NutrientThresholds[n]
	if !ok {
		t = NutrientThresholds[Nitrogen]
	}

	switch {
	case value < t.Low:
		return LevelLow
	case value > t.High:
		return LevelHigh
	default:
		return LevelOptimal
	}
}

// NutrientStatus describes a nutrient level for end users.
func NutrientStatus(value float64, n Nutrient) string {
	level := NutrientLevel(value, n)
	if level == LevelOptimal {
		return "Optimal - Good levels"
	}

	return levelAdvice[level]
}
