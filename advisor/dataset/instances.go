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

package dataset

import (
	"github.com/sjwhitworth/golearn/base"
)

const (
	// LabelAttribute is the name of the crop class attribute.
	LabelAttribute = "label"

	// YieldAttribute is the name of the yield class attribute.
	YieldAttribute = "yield"
)

// ToInstances converts samples into a grid of the seven features with
// the crop label as categorical class attribute.
func ToInstances(samples []Sample) (*base.DenseInstances, error) {
	label := base.NewCategoricalAttribute()
	label.SetName(LabelAttribute)

	return toInstances(samples, label, func(s Sample) []byte {
		return label.GetSysValFromString(s.Label)
	})
}

// ToYieldInstances converts samples into a grid of the seven features with
// the yield as float class attribute.
func ToYieldInstances(samples []Sample) (*base.DenseInstances, error) {
	return toInstances(samples, base.NewFloatAttribute(YieldAttribute), func(s Sample) []byte {
		return base.PackFloatToBytes(s.Yield)
	})
}

func toInstances(samples []Sample, class base.Attribute, classValue func(Sample) []byte) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(FeatureNames))
	for i, name := range FeatureNames {
		specs[i] = inst.AddAttribute(base.NewFloatAttribute(name))
	}

	classSpec := inst.AddAttribute(class)
	if err := inst.AddClassAttribute(class); err != nil {
		return nil, err
	}

	if err := inst.Extend(len(samples)); err != nil {
		return nil, err
	}

	for row, s := range samples {
		for i, v := range s.Features() {
			inst.Set(specs[i], row, base.PackFloatToBytes(v))
		}
		inst.Set(classSpec, row, classValue(s))
	}

	return inst, nil
}

// FromInstances reads the feature matrix back out of a grid.
func FromInstances(grid base.FixedDataGrid) [][]float64 {
	attrs := base.NonClassFloatAttributes(grid)
	specs := base.ResolveAttributes(grid, attrs)
	_, rows := grid.Size()

	x := make([][]float64, rows)
	for row := 0; row < rows; row++ {
		x[row] = make([]float64, len(specs))
		for i, spec := range specs {
			x[row][i] = base.UnpackBytesToFloat(grid.Get(spec, row))
		}
	}

	return x
}
