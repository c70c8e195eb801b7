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

package service

import (
	"time"

	"github.com/cropwise/cropwise/advisor/dataset"
	"github.com/cropwise/cropwise/advisor/knowledge"
	"github.com/cropwise/cropwise/advisor/model"
	"github.com/cropwise/cropwise/advisor/recommend"
)

// Health reports liveness and model availability.
type Health struct {
	Status      string    `json:"status"`
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	ModelLoaded bool      `json:"model_loaded"`
	Timestamp   time.Time `json:"timestamp"`
}

// ModelInfo describes the loaded model set, ModelLoaded is false and the
// metrics are zero before the first training.
type ModelInfo struct {
	ModelLoaded    bool                    `json:"model_loaded"`
	ModelVersion   string                  `json:"model_version"`
	ModelID        string                  `json:"model_id"`
	Accuracy       float64                 `json:"accuracy"`
	Regression     model.RegressionMetrics `json:"regression"`
	Features       []string                `json:"features"`
	SupportedCrops []string                `json:"supported_crops"`
	Algorithm      string                  `json:"algorithm"`
	TrainingDate   time.Time               `json:"training_date"`
}

// Prediction is the response of a recommendation request.
type Prediction struct {
	Success bool `json:"success"`
	*recommend.Result
	Timestamp time.Time `json:"timestamp"`
}

// OptimalConditions are the optimal intervals of a crop.
type OptimalConditions struct {
	PH          knowledge.Range `json:"ph"`
	Temperature knowledge.Range `json:"temp"`
	Humidity    knowledge.Range `json:"humidity"`
	Rainfall    knowledge.Range `json:"rainfall"`
}

// CropEntry is one crop of the crop database.
type CropEntry struct {
	OptimalConditions OptimalConditions `json:"optimal_conditions"`
	Season            knowledge.Season  `json:"season"`
	Duration          int               `json:"duration"`
	YieldRange        knowledge.Range   `json:"yield_range"`
	MarketPrice       float64           `json:"market_price"`
}

// CropDatabase lists every crop of the knowledge base.
type CropDatabase struct {
	Crops      map[string]CropEntry `json:"crops"`
	TotalCrops int                  `json:"total_crops"`
}

// CropParams selects one crop of the database.
type CropParams struct {
	Crop string `uri:"crop" binding:"required"`
}

// RetrainRequest optionally overrides the configured dataset size and seed.
type RetrainRequest struct {
	SampleCount int    `json:"sampleCount" binding:"omitempty,gte=1"`
	Seed        *int64 `json:"seed"`

	// Samples replace the generated dataset when set.
	Samples []dataset.Sample `json:"-"`
}

// RetrainResult reports the outcome of a retraining run.
type RetrainResult struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	ModelID     string    `json:"model_id"`
	NewAccuracy float64   `json:"new_accuracy"`
	Persisted   bool      `json:"persisted"`
	Timestamp   time.Time `json:"timestamp"`
}
