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
	"fmt"
	"sort"

	"github.com/cropwise/cropwise/internal/cwerrors"
)

// ReferenceCrop is the fallback crop for unrecognized labels.
const ReferenceCrop = "rice"

// KnowledgeBase is the read-only table of crop profiles.
type KnowledgeBase interface {
	// Lookup returns the profile of the crop, ErrCropNotFound if absent.
	Lookup(string) (CropProfile, error)

	// LookupOrDefault returns the profile of the crop, falling back to the reference crop.
	LookupOrDefault(string) CropProfile

	// CropIDs returns crop ids in alphabetical order.
	CropIDs() []string

	// Profiles returns all profiles ordered by crop id.
	Profiles() []CropProfile

	// Len returns the number of crops.
	Len() int
}

type knowledgeBase struct {
	profiles  map[string]CropProfile
	ids       []string
	reference string
}

// New validates the profiles and returns a KnowledgeBase. The first profile
// named ReferenceCrop becomes the fallback, otherwise the first id in order.
func New(profiles ...CropProfile) (KnowledgeBase, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("knowledge base requires at least one crop")
	}

	kb := &knowledgeBase{profiles: make(map[string]CropProfile, len(profiles))}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if _, ok := kb.profiles[p.ID]; ok {
			return nil, fmt.Errorf("duplicate crop %s", p.ID)
		}

		kb.profiles[p.ID] = p
		kb.ids = append(kb.ids, p.ID)
	}
	sort.Strings(kb.ids)

	kb.reference = kb.ids[0]
	if _, ok := kb.profiles[ReferenceCrop]; ok {
		kb.reference = ReferenceCrop
	}

	return kb, nil
}

// Default returns the compiled-in knowledge base.
func Default() KnowledgeBase {
	kb, err := New(DefaultProfiles()...)
	if err != nil {
		panic(err)
	}

	return kb
}

func (kb *knowledgeBase) Lookup(id string) (CropProfile, error) {
	p, ok := kb.profiles[id]
	if !ok {
		return CropProfile{}, cwerrors.Newf(cwerrors.ErrCropNotFound, "crop %q", id)
	}

	return p, nil
}

func (kb *knowledgeBase) LookupOrDefault(id string) CropProfile {
	if p, ok := kb.profiles[id]; ok {
		return p
	}

	return kb.profiles[kb.reference]
}

func (kb *knowledgeBase) CropIDs() []string {
	ids := make([]string, len(kb.ids))
	copy(ids, kb.ids)
	return ids
}

func (kb *knowledgeBase) Profiles() []CropProfile {
	profiles := make([]CropProfile, 0, len(kb.ids))
	for _, id := range kb.ids {
		profiles = append(profiles, kb.profiles[id])
	}

	return profiles
}

func (kb *knowledgeBase) Len() int {
	return len(kb.ids)
}
