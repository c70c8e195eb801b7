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

// Severity of a risk factor.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

const (
	HeatStress   = "Heat Stress"
	ColdStress   = "Cold Stress"
	WaterStress  = "Water Stress"
	ExcessWater  = "Excess Water"
	PHImbalance  = "pH Imbalance"
	heatLimit    = 35.0
	coldLimit    = 10.0
	droughtLimit = 300.0
	floodLimit   = 2000.0
	minSafePH    = 5.0
	maxSafePH    = 8.0
)

// Factor is a single flagged risk.
type Factor struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Mitigation  string   `json:"mitigation"`
}

// Conditions are the raw measurements the rules evaluate.
type Conditions struct {
	Temperature float64
	Rainfall    float64
	PH          float64
}

// Assess evaluates the temperature, rainfall and pH rules independently.
// topCrop is accepted for crop specific rules and currently does not change
// the outcome.
func Assess(c Conditions, topCrop string) []Factor {
	factors := []Factor{}

	switch {
	case c.Temperature > heatLimit:
		factors = append(factors, Factor{
			Type:        HeatStress,
			Severity:    SeverityHigh,
			Description: "High temperature may affect crop growth",
			Mitigation:  "Use shade nets or cooling systems",
		})
	case c.Temperature < coldLimit:
		factors = append(factors, Factor{
			Type:        ColdStress,
			Severity:    SeverityMedium,
			Description: "Low temperature may slow growth",
			Mitigation:  "Consider protected cultivation",
		})
	}

	switch {
	case c.Rainfall < droughtLimit:
		factors = append(factors, Factor{
			Type:        WaterStress,
			Severity:    SeverityHigh,
			Description: "Low rainfall may cause drought stress",
			Mitigation:  "Install irrigation systems",
		})
	case c.Rainfall > floodLimit:
		factors = append(factors, Factor{
			Type:        ExcessWater,
			Severity:    SeverityMedium,
			Description: "High rainfall may cause waterlogging",
			Mitigation:  "Improve drainage systems",
		})
	}

	if c.PH < minSafePH || c.PH > maxSafePH {
		factors = append(factors, Factor{
			Type:        PHImbalance,
			Severity:    SeverityMedium,
			Description: "Soil pH outside optimal range",
			Mitigation:  "Apply lime or sulfur to adjust pH",
		})
	}

	return factors
}
