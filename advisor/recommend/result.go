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

package recommend

import (
	"time"

	"github.com/cropwise/cropwise/advisor/knowledge"
	"github.com/cropwise/cropwise/advisor/risk"
)

// YieldUnit is the unit of every yield estimate.
const YieldUnit = "tonnes/hectare"

// YieldPrediction is a per crop yield estimate with a ±20% band.
type YieldPrediction struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Recommendation is one ranked crop.
type Recommendation struct {
	Crop             string           `json:"crop"`
	Confidence       float64          `json:"confidence"`
	Rank             int              `json:"rank"`
	YieldPrediction  YieldPrediction  `json:"yield_prediction"`
	SuitabilityScore float64          `json:"suitability_score"`
	Season           knowledge.Season `json:"season"`
	DurationDays     int              `json:"duration_days"`
	MarketPrice      float64          `json:"market_price_per_quintal"`
}

// Reading is a measured value and its status text.
type Reading struct {
	Value  float64 `json:"value"`
	Status string  `json:"status"`
}

// NutrientLevels are the NPK readings.
type NutrientLevels struct {
	Nitrogen   Reading `json:"nitrogen"`
	Phosphorus Reading `json:"phosphorus"`
	Potassium  Reading `json:"potassium"`
}

// ClimateConditions echo the climate inputs.
type ClimateConditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}

// InputAnalysis classifies the submitted conditions.
type InputAnalysis struct {
	SoilPH            Reading           `json:"soil_ph"`
	NutrientLevels    NutrientLevels    `json:"nutrient_levels"`
	ClimateConditions ClimateConditions `json:"climate_conditions"`
}

// ModelSummary identifies the model set that produced a result.
type ModelSummary struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	Algorithm string    `json:"algorithm"`
	Accuracy  float64   `json:"accuracy"`
	TrainedAt time.Time `json:"training_date"`
}

// Result is the outcome of one recommendation request.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	InputAnalysis   InputAnalysis    `json:"input_analysis"`
	RiskFactors     []risk.Factor    `json:"risk_factors"`

	// PredictedYield is the regressor estimate for the raw input. It is
	// informational, per crop estimates come from the condition scorer.
	PredictedYield float64      `json:"predicted_yield"`
	Model          ModelSummary `json:"model_info"`
}
