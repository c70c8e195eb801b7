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
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cropwise/cropwise/internal/cwerrors"
)

var mockProfile = CropProfile{
	ID:           "foo",
	PH:           Range{6, 7},
	Temperature:  Range{20, 30},
	Humidity:     Range{60, 80},
	Rainfall:     Range{500, 1000},
	Season:       SeasonBoth,
	DurationDays: 100,
	Yield:        Range{1, 3},
	MarketPrice:  1000,
}

func TestRange(t *testing.T) {
	r := Range{Min: 5.5, Max: 7}
	assert := assert.New(t)
	assert.True(r.Contains(5.5))
	assert.True(r.Contains(7))
	assert.False(r.Contains(7.01))
	assert.Equal(6.25, r.Mid())
	assert.Equal(0.0, r.Distance(6))
	assert.InDelta(0.5, r.Distance(5), 1e-9)
	assert.InDelta(1, r.Distance(8), 1e-9)
	assert.True(r.Valid())
	assert.False(Range{Min: 2, Max: 1}.Valid())
	assert.False(Range{Min: math.NaN(), Max: 1}.Valid())

	b, err := json.Marshal(r)
	assert.NoError(err)
	assert.Equal("[5.5,7]", string(b))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		profiles []CropProfile
		expect   func(t *testing.T, kb KnowledgeBase, err error)
	}{
		{
			name:     "default profiles",
			profiles: DefaultProfiles(),
			expect: func(t *testing.T, kb KnowledgeBase, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(8, kb.Len())
				assert.Equal([]string{"cotton", "maize", "onion", "potato", "rice", "sugarcane", "tomato", "wheat"}, kb.CropIDs())
			},
		},
		{
			name:     "empty profiles",
			profiles: nil,
			expect: func(t *testing.T, kb KnowledgeBase, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "knowledge base requires at least one crop")
			},
		},
		{
			name:     "duplicate crop",
			profiles: []CropProfile{mockProfile, mockProfile},
			expect: func(t *testing.T, kb KnowledgeBase, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "duplicate crop foo")
			},
		},
		{
			name: "inverted range",
			profiles: func() []CropProfile {
				p := mockProfile
				p.Rainfall = Range{1000, 500}
				return []CropProfile{p}
			}(),
			expect: func(t *testing.T, kb KnowledgeBase, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "crop foo has invalid rainfall range [1000, 500]")
			},
		},
		{
			name: "invalid season",
			profiles: func() []CropProfile {
				p := mockProfile
				p.Season = "Zaid"
				return []CropProfile{p}
			}(),
			expect: func(t *testing.T, kb KnowledgeBase, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "crop foo has invalid season \"Zaid\"")
			},
		},
		{
			name: "missing id",
			profiles: func() []CropProfile {
				p := mockProfile
				p.ID = ""
				return []CropProfile{p}
			}(),
			expect: func(t *testing.T, kb KnowledgeBase, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "crop profile requires parameter id")
			},
		},
		{
			name: "non-positive duration",
			profiles: func() []CropProfile {
				p := mockProfile
				p.DurationDays = 0
				return []CropProfile{p}
			}(),
			expect: func(t *testing.T, kb KnowledgeBase, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "crop foo requires positive duration")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kb, err := New(tc.profiles...)
			tc.expect(t, kb, err)
		})
	}
}

func TestKnowledgeBase_Lookup(t *testing.T) {
	kb := Default()
	assert := assert.New(t)

	rice, err := kb.Lookup("rice")
	assert.NoError(err)
	assert.Equal(SeasonKharif, rice.Season)
	assert.Equal(4.5, rice.MeanYield())

	_, err = kb.Lookup("quinoa")
	assert.ErrorIs(err, cwerrors.ErrCropNotFound)

	assert.Equal("rice", kb.LookupOrDefault("quinoa").ID)
	assert.Equal("wheat", kb.LookupOrDefault("wheat").ID)

	// Without the reference crop the first id becomes the fallback.
	custom, err := New(mockProfile)
	assert.NoError(err)
	assert.Equal("foo", custom.LookupOrDefault("bar").ID)
}

func TestKnowledgeBase_Profiles(t *testing.T) {
	kb := Default()
	profiles := kb.Profiles()
	assert := assert.New(t)
	assert.Len(profiles, 8)
	for i, id := range kb.CropIDs() {
		assert.Equal(id, profiles[i].ID)
	}

	// Returned slices are copies.
	ids := kb.CropIDs()
	ids[0] = "bar"
	assert.Equal("cotton", kb.CropIDs()[0])
}
