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
	"errors"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/cropwise/cropwise/advisor/risk"
	"github.com/cropwise/cropwise/advisor/scoring"
	"github.com/cropwise/cropwise/internal/cwerrors"
)

// Request keys of the raw features.
const (
	NitrogenKey    = "nitrogen"
	PhosphorusKey  = "phosphorus"
	PotassiumKey   = "potassium"
	TemperatureKey = "temperature"
	HumidityKey    = "humidity"
	PHKey          = "ph"
	RainfallKey    = "rainfall"
)

var (
	errNull      = errors.New("value is null")
	errNotFinite = errors.New("value is not finite")
)

// Features is a completed condition vector in raw units.
type Features struct {
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// DefaultFeatures returns the values substituted for missing features.
func DefaultFeatures() Features {
	return Features{
		Nitrogen:    50,
		Phosphorus:  40,
		Potassium:   35,
		Temperature: 25,
		Humidity:    70,
		PH:          6.5,
		Rainfall:    800,
	}
}

// Vector returns the features in model order.
func (f Features) Vector() []float64 {
	return []float64{f.Nitrogen, f.Phosphorus, f.Potassium, f.Temperature, f.Humidity, f.PH, f.Rainfall}
}

// Conditions returns the dimensions scored by the condition scorer.
func (f Features) Conditions() scoring.Conditions {
	return scoring.Conditions{
		PH:          f.PH,
		Temperature: f.Temperature,
		Humidity:    f.Humidity,
		Rainfall:    f.Rainfall,
	}
}

// RiskConditions returns the dimensions evaluated by the risk rules.
func (f Features) RiskConditions() risk.Conditions {
	return risk.Conditions{
		Temperature: f.Temperature,
		Rainfall:    f.Rainfall,
		PH:          f.PH,
	}
}

// ParseFeatures completes raw request values with defaults. Numbers,
// numeric strings and booleans are accepted, anything else is invalid
// input. Unknown keys are ignored.
func ParseFeatures(raw map[string]any) (Features, error) {
	f := DefaultFeatures()
	fields := []struct {
		key   string
		value *float64
	}{
		{NitrogenKey, &f.Nitrogen},
		{PhosphorusKey, &f.Phosphorus},
		{PotassiumKey, &f.Potassium},
		{TemperatureKey, &f.Temperature},
		{HumidityKey, &f.Humidity},
		{PHKey, &f.PH},
		{RainfallKey, &f.Rainfall},
	}

	for _, field := range fields {
		v, ok := raw[field.key]
		if !ok {
			continue
		}

		n, err := toFloat(v)
		if err != nil {
			return Features{}, cwerrors.Newf(cwerrors.ErrInvalidInput, "%s: %v", field.key, err)
		}
		*field.value = n
	}

	return f, nil
}

func toFloat(v any) (float64, error) {
	if v == nil {
		return 0, errNull
	}

	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}

	n, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errNotFinite
	}

	return n, nil
}
