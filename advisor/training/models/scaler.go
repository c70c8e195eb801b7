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
	"fmt"

	"github.com/montanaflynn/stats"
)

// StandardScaler standardizes features to zero mean and unit variance.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// NewStandardScaler fits a scaler on the columns of x using the
// population standard deviation. Constant columns get a scale of 1.
func NewStandardScaler(x [][]float64) (*StandardScaler, error) {
	if len(x) == 0 {
		return nil, errors.New("scaler requires at least one sample")
	}

	d := len(x[0])
	s := &StandardScaler{
		Mean:  make([]float64, d),
		Scale: make([]float64, d),
	}

	column := make(stats.Float64Data, len(x))
	for j := 0; j < d; j++ {
		for i, row := range x {
			if len(row) != d {
				return nil, fmt.Errorf("sample %d has %d features, expected %d", i, len(row), d)
			}
			column[i] = row[j]
		}

		mean, err := stats.Mean(column)
		if err != nil {
			return nil, err
		}

		std, err := stats.StandardDeviationPopulation(column)
		if err != nil {
			return nil, err
		}

		if std == 0 {
			std = 1
		}

		s.Mean[j] = mean
		s.Scale[j] = std
	}

	return s, nil
}

// Width returns the number of features.
func (s *StandardScaler) Width() int {
	return len(s.Mean)
}

// Transform standardizes one row.
func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("got %d features, expected %d", len(row), len(s.Mean))
	}

	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}

	return out, nil
}

// TransformAll standardizes every row.
func (s *StandardScaler) TransformAll(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		r, err := s.Transform(row)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}

	return out, nil
}
