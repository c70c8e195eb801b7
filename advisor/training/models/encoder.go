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
	"sort"
)

// LabelEncoder maps crop labels to dense class indexes. Classes are
// sorted alphabetically.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// NewLabelEncoder fits an encoder on labels.
func NewLabelEncoder(labels []string) (*LabelEncoder, error) {
	if len(labels) == 0 {
		return nil, errors.New("label encoder requires at least one label")
	}

	seen := make(map[string]struct{})
	var classes []string
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		classes = append(classes, l)
	}
	sort.Strings(classes)

	return &LabelEncoder{Classes: classes}, nil
}

// Transform returns the class index of label.
func (e *LabelEncoder) Transform(label string) (int, error) {
	i := sort.SearchStrings(e.Classes, label)
	if i == len(e.Classes) || e.Classes[i] != label {
		return 0, fmt.Errorf("unknown label %q", label)
	}

	return i, nil
}

// TransformAll encodes every label.
func (e *LabelEncoder) TransformAll(labels []string) ([]int, error) {
	y := make([]int, len(labels))
	for i, l := range labels {
		c, err := e.Transform(l)
		if err != nil {
			return nil, err
		}
		y[i] = c
	}

	return y, nil
}

// Inverse returns the label of a class index.
func (e *LabelEncoder) Inverse(i int) (string, error) {
	if i < 0 || i >= len(e.Classes) {
		return "", fmt.Errorf("class index %d out of range", i)
	}

	return e.Classes[i], nil
}

// Len returns the number of classes.
func (e *LabelEncoder) Len() int {
	return len(e.Classes)
}
