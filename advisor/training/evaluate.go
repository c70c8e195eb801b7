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
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"

	"github.com/cropwise/cropwise/advisor/model"
)

// Accuracy compares predicted labels against the class attribute of ref.
func Accuracy(ref base.FixedDataGrid, predicted []string) (float64, error) {
	_, rows := ref.Size()
	if rows != len(predicted) {
		return 0, fmt.Errorf("got %d predictions for %d rows", len(predicted), rows)
	}

	if rows == 0 {
		return 0, errors.New("accuracy requires at least one row")
	}

	out := base.GeneratePredictionVector(ref)
	for i, label := range predicted {
		base.SetClass(out, i, label)
	}

	cm, err := evaluation.GetConfusionMatrix(ref, out)
	if err != nil {
		return 0, err
	}

	return evaluation.GetAccuracy(cm), nil
}

// Regression computes error metrics of predictions against the float class
// attribute of ref.
func Regression(ref base.FixedDataGrid, predicted []float64) (model.RegressionMetrics, error) {
	var m model.RegressionMetrics
	labels, err := floatClass(ref)
	if err != nil {
		return m, err
	}

	if len(predicted) != len(labels) {
		return m, fmt.Errorf("got %d predictions for %d labels", len(predicted), len(labels))
	}

	if len(labels) == 0 {
		return m, errors.New("regression metrics require at least one label")
	}

	absErr := make(stats.Float64Data, len(labels))
	sqErr := make(stats.Float64Data, len(labels))
	for i := range labels {
		d := labels[i] - predicted[i]
		absErr[i] = math.Abs(d)
		sqErr[i] = d * d
	}

	mae, err := stats.Mean(absErr)
	if err != nil {
		return m, err
	}

	mse, err := stats.Mean(sqErr)
	if err != nil {
		return m, err
	}

	variance, err := stats.PopulationVariance(labels)
	if err != nil {
		return m, err
	}

	m.MAE = mae
	m.MSE = mse
	m.RMSE = math.Sqrt(mse)
	if variance > 0 {
		m.R2 = 1 - mse/variance
	}

	if err := checkRegression(m); err != nil {
		return m, err
	}

	return m, nil
}

func floatClass(grid base.FixedDataGrid) ([]float64, error) {
	attrs := grid.AllClassAttributes()
	if len(attrs) != 1 {
		return nil, fmt.Errorf("expected one class attribute, got %d", len(attrs))
	}

	spec, err := grid.GetAttribute(attrs[0])
	if err != nil {
		return nil, err
	}

	_, rows := grid.Size()
	labels := make([]float64, rows)
	for row := range labels {
		labels[row] = base.UnpackBytesToFloat(grid.Get(spec, row))
	}

	return labels, nil
}

func checkRegression(m model.RegressionMetrics) error {
	if math.IsNaN(m.MAE) || math.IsNaN(m.MSE) || math.IsNaN(m.RMSE) || math.IsNaN(m.R2) {
		return errors.New("model NAN")
	}

	return nil
}
