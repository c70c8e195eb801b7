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

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/cropwise/cropwise/advisor/training/models"
)

const (
	// Algorithm is the name of the classifier family reported to callers.
	Algorithm = "Random Forest"
)

// RegressionMetrics are the held-out diagnostics of the yield regressor.
type RegressionMetrics struct {
	MAE  float64 `json:"mae" mapstructure:"mae"`
	MSE  float64 `json:"mse" mapstructure:"mse"`
	RMSE float64 `json:"rmse" mapstructure:"rmse"`
	R2   float64 `json:"r2" mapstructure:"r2"`
}

// Set is the fitted model set. All four artifacts come from the same
// training run, identified by ID.
type Set struct {
	ID         string
	Version    string
	TrainedAt  time.Time
	Accuracy   float64
	Regression RegressionMetrics
	Classifier *models.RandomForestClassifier
	Regressor  *models.RandomForestRegressor
	Encoder    *models.LabelEncoder
	Scaler     *models.StandardScaler
}

// Validate checks that the artifacts are present and agree on shape.
func (s *Set) Validate() error {
	if s == nil {
		return errors.New("model set is nil")
	}

	if s.ID == "" {
		return errors.New("model set requires parameter id")
	}

	if !s.Classifier.Fitted() {
		return errors.New("model set requires a fitted classifier")
	}

	if !s.Regressor.Fitted() {
		return errors.New("model set requires a fitted regressor")
	}

	if s.Encoder == nil || s.Encoder.Len() == 0 {
		return errors.New("model set requires a label encoder")
	}

	if s.Scaler == nil || s.Scaler.Width() == 0 {
		return errors.New("model set requires a scaler")
	}

	if s.Classifier.Features != s.Scaler.Width() || s.Regressor.Features != s.Scaler.Width() {
		return fmt.Errorf("feature width mismatch: scaler %d, classifier %d, regressor %d",
			s.Scaler.Width(), s.Classifier.Features, s.Regressor.Features)
	}

	if s.Classifier.Classes != s.Encoder.Len() {
		return fmt.Errorf("class count mismatch: encoder %d, classifier %d", s.Encoder.Len(), s.Classifier.Classes)
	}

	return nil
}
