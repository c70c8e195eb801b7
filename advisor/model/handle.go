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
	"go.uber.org/atomic"
)

// Handle holds the active model set. Readers take one snapshot per
// request, writers replace the whole set at once.
type Handle struct {
	set atomic.Pointer[Set]
}

// NewHandle returns an empty handle.
func NewHandle() *Handle {
	return &Handle{}
}

// Load returns the current set.
func (h *Handle) Load() (*Set, bool) {
	s := h.set.Load()
	return s, s != nil
}

// Store validates s and makes it the current set.
func (h *Handle) Store(s *Set) error {
	if err := s.Validate(); err != nil {
		return err
	}

	h.set.Store(s)
	return nil
}

// Loaded reports whether a set is present.
func (h *Handle) Loaded() bool {
	return h.set.Load() != nil
}
