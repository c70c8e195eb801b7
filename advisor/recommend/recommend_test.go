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
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropwise/cropwise/advisor/dataset"
	"github.com/cropwise/cropwise/advisor/knowledge"
	"github.com/cropwise/cropwise/advisor/model"
	"github.com/cropwise/cropwise/advisor/risk"
	"github.com/cropwise/cropwise/advisor/training"
	"github.com/cropwise/cropwise/advisor/training/models"
	"github.com/cropwise/cropwise/internal/cwerrors"
)

var mockScenario = Features{
	Nitrogen:    55,
	Phosphorus:  42,
	Potassium:   38,
	Temperature: 26,
	Humidity:    75,
	PH:          6.2,
	Rainfall:    1100,
}

// newStubSet returns a set whose classifier always answers dist and whose
// scaler is the identity.
func newStubSet(t *testing.T, dist map[string]float64) *model.Set {
	kb := knowledge.Default()
	encoder, err := models.NewLabelEncoder(kb.CropIDs())
	require.NoError(t, err)

	value := make([]float64, encoder.Len())
	for crop, p := range dist {
		i, err := encoder.Transform(crop)
		require.NoError(t, err)
		value[i] = p
	}

	width := len(dataset.FeatureNames)
	scaler := &models.StandardScaler{Mean: make([]float64, width), Scale: make([]float64, width)}
	for i := range scaler.Scale {
		scaler.Scale[i] = 1
	}

	leaf := func(v []float64) *models.Tree {
		return &models.Tree{Nodes: []models.Node{{Left: -1, Right: -1, Value: v}}}
	}

	return &model.Set{
		ID:         "foo",
		Version:    "1.2.0",
		Accuracy:   0.912345,
		Classifier: &models.RandomForestClassifier{Classes: encoder.Len(), Features: width, Trees: []*models.Tree{leaf(value)}},
		Regressor:  &models.RandomForestRegressor{Features: width, Trees: []*models.Tree{leaf([]float64{3.14159})}},
		Encoder:    encoder,
		Scaler:     scaler,
	}
}

func newStubEngine(t *testing.T, dist map[string]float64, options ...Option) *Engine {
	handle := model.NewHandle()
	require.NoError(t, handle.Store(newStubSet(t, dist)))
	return New(handle, knowledge.Default(), options...)
}

func crops(recommendations []Recommendation) []string {
	var ids []string
	for _, r := range recommendations {
		ids = append(ids, r.Crop)
	}
	return ids
}

func TestEngine_Recommend(t *testing.T) {
	uniform := make(map[string]float64)
	for _, id := range knowledge.Default().CropIDs() {
		uniform[id] = 1.0 / 8
	}

	tests := []struct {
		name     string
		dist     map[string]float64
		options  []Option
		features Features
		expect   func(t *testing.T, result *Result)
	}{
		{
			name:     "drops crops below the confidence floor",
			dist:     map[string]float64{"rice": 0.4, "maize": 0.3, "tomato": 0.15, "cotton": 0.1, "wheat": 0.05},
			features: mockScenario,
			expect: func(t *testing.T, result *Result) {
				assert := assert.New(t)
				assert.Equal([]string{"rice", "maize", "tomato", "cotton"}, crops(result.Recommendations))
				for i, r := range result.Recommendations {
					assert.Equal(i+1, r.Rank)
					assert.GreaterOrEqual(r.Confidence, DefaultMinConfidence)
				}

				rice := result.Recommendations[0]
				assert.Equal(0.4, rice.Confidence)
				assert.Equal(YieldPrediction{Value: 4.5, Unit: YieldUnit, Min: 3.6, Max: 5.4}, rice.YieldPrediction)
				assert.Equal(100.0, rice.SuitabilityScore)
				assert.Equal(knowledge.SeasonKharif, rice.Season)
				assert.Equal(120, rice.DurationDays)
				assert.Equal(2500.0, rice.MarketPrice)

				cotton := result.Recommendations[3]
				assert.Equal(0.1, cotton.Confidence)
				assert.Equal(97.5, cotton.SuitabilityScore)
			},
		},
		{
			name:     "ties keep class order",
			dist:     map[string]float64{"wheat": 0.25, "maize": 0.25, "cotton": 0.25, "rice": 0.25},
			features: DefaultFeatures(),
			expect: func(t *testing.T, result *Result) {
				assert.Equal(t, []string{"cotton", "maize", "rice", "wheat"}, crops(result.Recommendations))
			},
		},
		{
			name:     "top k",
			dist:     uniform,
			features: DefaultFeatures(),
			expect: func(t *testing.T, result *Result) {
				assert.Equal(t, []string{"cotton", "maize", "onion", "potato", "rice"}, crops(result.Recommendations))
			},
		},
		{
			name:     "custom top k",
			dist:     uniform,
			options:  []Option{WithTopK(2)},
			features: DefaultFeatures(),
			expect: func(t *testing.T, result *Result) {
				assert.Equal(t, []string{"cotton", "maize"}, crops(result.Recommendations))
			},
		},
		{
			name:     "nothing survives the floor",
			dist:     uniform,
			options:  []Option{WithMinConfidence(0.5)},
			features: Features{Nitrogen: 10, Phosphorus: 70, Potassium: 40, Temperature: 42, Humidity: 20, PH: 4.0, Rainfall: 100},
			expect: func(t *testing.T, result *Result) {
				assert := assert.New(t)
				assert.NotNil(result.Recommendations)
				assert.Empty(result.Recommendations)
				assert.Len(result.RiskFactors, 3)
				assert.Equal("Low - Consider fertilizer application", result.InputAnalysis.NutrientLevels.Nitrogen.Status)
				assert.Equal("High - Adequate levels", result.InputAnalysis.NutrientLevels.Phosphorus.Status)
				assert.Equal("Optimal - Good levels", result.InputAnalysis.NutrientLevels.Potassium.Status)
				assert.Equal("Acidic - May need liming", result.InputAnalysis.SoilPH.Status)
			},
		},
		{
			name:     "model summary and diagnostic yield",
			dist:     uniform,
			features: DefaultFeatures(),
			expect: func(t *testing.T, result *Result) {
				assert := assert.New(t)
				assert.Equal(3.14, result.PredictedYield)
				assert.Equal("foo", result.Model.ID)
				assert.Equal(0.9123, result.Model.Accuracy)
				assert.Equal(model.Algorithm, result.Model.Algorithm)
				assert.Equal(ClimateConditions{Temperature: 25, Humidity: 70, Rainfall: 800}, result.InputAnalysis.ClimateConditions)
				assert.Empty(result.RiskFactors)
				assert.NotNil(result.RiskFactors)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := newStubEngine(t, tc.dist, tc.options...).Recommend(tc.features)
			require.NoError(t, err)
			tc.expect(t, result)
		})
	}
}

func TestEngine_CropOutsideKnowledgeBase(t *testing.T) {
	var profiles []knowledge.CropProfile
	for _, p := range knowledge.DefaultProfiles() {
		if p.ID != "tomato" {
			profiles = append(profiles, p)
		}
	}
	kb, err := knowledge.New(profiles...)
	require.NoError(t, err)

	handle := model.NewHandle()
	require.NoError(t, handle.Store(newStubSet(t, map[string]float64{"tomato": 0.6, "maize": 0.4})))
	result, err := New(handle, kb).Recommend(mockScenario)
	require.NoError(t, err)

	assert := assert.New(t)
	require.Equal(t, []string{"tomato", "maize"}, crops(result.Recommendations))
	tomato := result.Recommendations[0]
	assert.Equal(0.6, tomato.Confidence)
	assert.Equal(knowledge.SeasonKharif, tomato.Season)
	assert.Equal(2500.0, tomato.MarketPrice)
	assert.Equal(YieldPrediction{Value: 4.5, Unit: YieldUnit, Min: 3.6, Max: 5.4}, tomato.YieldPrediction)
}

func TestEngine_ModelUnavailable(t *testing.T) {
	e := New(model.NewHandle(), knowledge.Default())
	result, err := e.Recommend(DefaultFeatures())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, cwerrors.ErrModelUnavailable)
}

func TestEngine_TrainedModel(t *testing.T) {
	params := models.DefaultForestParams()
	params.Trees = 20
	samples := dataset.New(knowledge.Default(), dataset.WithSampleCount(1500)).Generate()
	set, err := training.New(training.WithForestParams(params)).Train(context.Background(), samples)
	require.NoError(t, err)

	handle := model.NewHandle()
	require.NoError(t, handle.Store(set))
	e := New(handle, knowledge.Default())

	t.Run("scenario", func(t *testing.T) {
		result, err := e.Recommend(mockScenario)
		require.NoError(t, err)
		require.NotEmpty(t, result.Recommendations)
		assert.LessOrEqual(t, len(result.Recommendations), DefaultTopK)
		assert.Greater(t, result.Recommendations[0].SuitabilityScore, 70.0)
		for i, r := range result.Recommendations {
			assert.GreaterOrEqual(t, r.Confidence, DefaultMinConfidence)
			if i > 0 {
				assert.GreaterOrEqual(t, result.Recommendations[i-1].Confidence, r.Confidence)
			}
			if r.Crop == "rice" || r.Crop == "maize" {
				assert.Equal(t, 100.0, r.SuitabilityScore)
			}
		}
	})

	t.Run("all defaults", func(t *testing.T) {
		f, err := ParseFeatures(map[string]any{})
		require.NoError(t, err)
		result, err := e.Recommend(f)
		require.NoError(t, err)

		b, err := json.Marshal(result)
		require.NoError(t, err)
		assert.Contains(t, string(b), "\"input_analysis\"")
	})

	t.Run("risks", func(t *testing.T) {
		result, err := e.Recommend(Features{Nitrogen: 50, Phosphorus: 40, Potassium: 35, Temperature: 42, Humidity: 20, PH: 4.0, Rainfall: 100})
		require.NoError(t, err)

		severities := make(map[string]risk.Severity)
		for _, f := range result.RiskFactors {
			severities[f.Type] = f.Severity
		}
		assert.Equal(t, map[string]risk.Severity{
			risk.HeatStress:  risk.SeverityHigh,
			risk.WaterStress: risk.SeverityHigh,
			risk.PHImbalance: risk.SeverityMedium,
		}, severities)
	})
}

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]any
		expect func(t *testing.T, f Features, err error)
	}{
		{
			name: "empty uses defaults",
			raw:  map[string]any{},
			expect: func(t *testing.T, f Features, err error) {
				assert.NoError(t, err)
				assert.Equal(t, DefaultFeatures(), f)
			},
		},
		{
			name: "partial input",
			raw:  map[string]any{"ph": 6.2, "rainfall": 1100},
			expect: func(t *testing.T, f Features, err error) {
				assert.NoError(t, err)
				want := DefaultFeatures()
				want.PH = 6.2
				want.Rainfall = 1100
				assert.Equal(t, want, f)
			},
		},
		{
			name: "numeric strings and json numbers",
			raw:  map[string]any{"nitrogen": " 55 ", "phosphorus": json.Number("42"), "potassium": int64(38), "humidity": true},
			expect: func(t *testing.T, f Features, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 55.0, f.Nitrogen)
				assert.Equal(t, 42.0, f.Phosphorus)
				assert.Equal(t, 38.0, f.Potassium)
				assert.Equal(t, 1.0, f.Humidity)
			},
		},
		{
			name: "unknown keys are ignored",
			raw:  map[string]any{"soil": "loam"},
			expect: func(t *testing.T, f Features, err error) {
				assert.NoError(t, err)
				assert.Equal(t, DefaultFeatures(), f)
			},
		},
		{
			name: "non numeric string",
			raw:  map[string]any{"ph": "acidic"},
			expect: func(t *testing.T, f Features, err error) {
				assert.ErrorIs(t, err, cwerrors.ErrInvalidInput)
			},
		},
		{
			name: "null",
			raw:  map[string]any{"temperature": nil},
			expect: func(t *testing.T, f Features, err error) {
				assert.ErrorIs(t, err, cwerrors.ErrInvalidInput)
				assert.Contains(t, err.Error(), "temperature")
			},
		},
		{
			name: "not finite",
			raw:  map[string]any{"rainfall": math.Inf(1), "ph": "NaN"},
			expect: func(t *testing.T, f Features, err error) {
				assert.ErrorIs(t, err, cwerrors.ErrInvalidInput)
			},
		},
		{
			name: "object",
			raw:  map[string]any{"nitrogen": map[string]any{"value": 1}},
			expect: func(t *testing.T, f Features, err error) {
				assert.ErrorIs(t, err, cwerrors.ErrInvalidInput)
			},
		},
		{
			name: "array",
			raw:  map[string]any{"nitrogen": []any{1}},
			expect: func(t *testing.T, f Features, err error) {
				assert.ErrorIs(t, err, cwerrors.ErrInvalidInput)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ParseFeatures(tc.raw)
			tc.expect(t, f, err)
		})
	}
}

func TestEngine_DefaultTraining(t *testing.T) {
	if testing.Short() {
		t.Skip("trains a full size forest")
	}

	kb := knowledge.Default()
	set, err := training.New().Train(context.Background(), dataset.New(kb).Generate())
	require.NoError(t, err)

	handle := model.NewHandle()
	require.NoError(t, handle.Store(set))
	result, err := New(handle, kb).Recommend(mockScenario)
	require.NoError(t, err)

	// Seed 42 at the default dataset size and forest.
	expected := []struct {
		crop       string
		confidence float64
	}{
		{"tomato", 0.290},
		{"maize", 0.220},
		{"sugarcane", 0.213},
		{"cotton", 0.152},
	}
	require.Len(t, result.Recommendations, len(expected))
	for i, e := range expected {
		r := result.Recommendations[i]
		assert.Equal(t, e.crop, r.Crop)
		assert.InDelta(t, e.confidence, r.Confidence, 0.001, e.crop)
		assert.Equal(t, i+1, r.Rank)
	}
}
