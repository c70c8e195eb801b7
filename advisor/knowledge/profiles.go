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

// DefaultProfiles returns the compiled-in crop table.
func DefaultProfiles() []CropProfile {
	return []CropProfile{
		{
			ID:           "rice",
			PH:           Range{5.5, 7.0},
			Temperature:  Range{20, 35},
			Humidity:     Range{70, 90},
			Rainfall:     Range{1000, 2000},
			Season:       SeasonKharif,
			DurationDays: 120,
			Yield:        Range{3, 6},
			MarketPrice:  2500,
		},
		{
			ID:           "wheat",
			PH:           Range{6.0, 7.5},
			Temperature:  Range{10, 25},
			Humidity:     Range{50, 70},
			Rainfall:     Range{300, 800},
			Season:       SeasonRabi,
			DurationDays: 120,
			Yield:        Range{2.5, 4.5},
			MarketPrice:  2200,
		},
		{
			ID:           "maize",
			PH:           Range{6.0, 7.0},
			Temperature:  Range{15, 30},
			Humidity:     Range{60, 80},
			Rainfall:     Range{600, 1200},
			Season:       SeasonBoth,
			DurationDays: 90,
			Yield:        Range{4, 8},
			MarketPrice:  2000,
		},
		{
			ID:           "cotton",
			PH:           Range{5.8, 8.0},
			Temperature:  Range{21, 32},
			Humidity:     Range{50, 80},
			Rainfall:     Range{500, 1000},
			Season:       SeasonKharif,
			DurationDays: 180,
			Yield:        Range{1.5, 3},
			MarketPrice:  5500,
		},
		{
			ID:           "sugarcane",
			PH:           Range{6.0, 7.5},
			Temperature:  Range{20, 30},
			Humidity:     Range{75, 85},
			Rainfall:     Range{1000, 1500},
			Season:       SeasonBoth,
			DurationDays: 365,
			Yield:        Range{60, 100},
			MarketPrice:  350,
		},
		{
			ID:           "potato",
			PH:           Range{5.0, 6.5},
			Temperature:  Range{15, 25},
			Humidity:     Range{60, 80},
			Rainfall:     Range{400, 600},
			Season:       SeasonRabi,
			DurationDays: 90,
			Yield:        Range{15, 30},
			MarketPrice:  1500,
		},
		{
			ID:           "tomato",
			PH:           Range{6.0, 7.0},
			Temperature:  Range{18, 25},
			Humidity:     Range{65, 85},
			Rainfall:     Range{600, 1000},
			Season:       SeasonBoth,
			DurationDays: 120,
			Yield:        Range{12, 25},
			MarketPrice:  3000,
		},
		{
			ID:           "onion",
			PH:           Range{6.0, 7.0},
			Temperature:  Range{13, 25},
			Humidity:     Range{60, 70},
			Rainfall:     Range{350, 500},
			Season:       SeasonRabi,
			DurationDays: 120,
			Yield:        Range{12, 20},
			MarketPrice:  2800,
		},
	}
}
