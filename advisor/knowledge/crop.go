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

package knowledge

import (
	"errors"
	"fmt"
	"math"
)

// Season is the sowing season of a crop.
type Season string

const (
	SeasonKharif Season = "Kharif"
	SeasonRabi   Season = "Rabi"
	SeasonBoth   Season = "Both"
)

// Valid reports whether s is a known season.
func (s Season) Valid() bool {
	switch s {
	case SeasonKharif, SeasonRabi, SeasonBoth:
		return true
	default:
		return false
	}
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies inside the interval.
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Mid returns the midpoint of the interval.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Distance returns the distance from v to the nearer endpoint, 0 inside the interval.
func (r Range) Distance(v float64) float64 {
	if r.Contains(v) {
		return 0
	}

	return math.Min(math.Abs(v-r.Min), math.Abs(v-r.Max))
}

// Valid reports whether the interval is well formed.
func (r Range) Valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && r.Min <= r.Max
}

// MarshalJSON encodes the range as a [min, max] pair.
func (r Range) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%v,%v]", r.Min, r.Max)), nil
}

// CropProfile describes the optimal growing envelope of a crop.
type CropProfile struct {
	// ID is the unique crop identifier, e.g. rice.
	ID string `json:"-"`

	// Optimal intervals per measured dimension.
	PH          Range `json:"ph"`
	Temperature Range `json:"temp"`
	Humidity    Range `json:"humidity"`
	Rainfall    Range `json:"rainfall"`

	// Season is the sowing season.
	Season Season `json:"season"`

	// DurationDays is the growth duration in days.
	DurationDays int `json:"duration"`

	// Yield is the expected yield range in tonnes per hectare.
	Yield Range `json:"yield_range"`

	// MarketPrice is the reference market price per quintal.
	MarketPrice float64 `json:"market_price"`
}

// Validate checks the interval invariants of the profile.
func (p CropProfile) Validate() error {
	if p.ID == "" {
		return errors.New("crop profile requires parameter id")
	}

	for name, r := range map[string]Range{
		"ph":          p.PH,
		"temperature": p.Temperature,
		"humidity":    p.Humidity,
		"rainfall":    p.Rainfall,
		"yield":       p.Yield,
	} {
		if !r.Valid() {
			return fmt.Errorf("crop %s has invalid %s range [%v, %v]", p.ID, name, r.Min, r.Max)
		}
	}

	if !p.Season.Valid() {
		return fmt.Errorf("crop %s has invalid season %q", p.ID, p.Season)
	}

	if p.DurationDays <= 0 {
		return fmt.Errorf("crop %s requires positive duration", p.ID)
	}

	return nil
}

// MeanYield returns the midpoint of the yield range.
func (p CropProfile) MeanYield() float64 {
	return p.Yield.Mid()
}
