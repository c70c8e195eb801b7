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
	"sort"

	"github.com/cropwise/cropwise/advisor/knowledge"
	"github.com/cropwise/cropwise/advisor/model"
	"github.com/cropwise/cropwise/advisor/risk"
	"github.com/cropwise/cropwise/advisor/scoring"
	"github.com/cropwise/cropwise/internal/cwerrors"
	logger "github.com/cropwise/cropwise/internal/cwlog"
	"github.com/cropwise/cropwise/pkg/math"
)

const (
	// DefaultMinConfidence is the probability below which crops are dropped.
	DefaultMinConfidence = 0.10

	// DefaultTopK is the maximum number of recommendations.
	DefaultTopK = 5

	// yieldBand is the relative width of the yield band.
	yieldBand = 0.2
)

// Engine ranks crops for a condition vector.
type Engine struct {
	handle        *model.Handle
	kb            knowledge.KnowledgeBase
	minConfidence float64
	topK          int
}

// Option is a functional option for configuring the engine.
type Option func(e *Engine)

// WithMinConfidence sets the confidence floor.
func WithMinConfidence(p float64) Option {
	return func(e *Engine) {
		e.minConfidence = p
	}
}

// WithTopK sets the maximum number of recommendations.
func WithTopK(k int) Option {
	return func(e *Engine) {
		e.topK = k
	}
}

// New returns an engine reading models from handle.
func New(handle *model.Handle, kb knowledge.KnowledgeBase, options ...Option) *Engine {
	e := &Engine{
		handle:        handle,
		kb:            kb,
		minConfidence: DefaultMinConfidence,
		topK:          DefaultTopK,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

// Recommend ranks crops for f against a single model set snapshot.
func (e *Engine) Recommend(f Features) (*Result, error) {
	set, ok := e.handle.Load()
	if !ok {
		return nil, cwerrors.New(cwerrors.ErrModelUnavailable, "no fitted model set is loaded")
	}

	x, err := set.Scaler.Transform(f.Vector())
	if err != nil {
		return nil, err
	}

	proba, err := set.Classifier.PredictProba(x)
	if err != nil {
		return nil, err
	}

	predictedYield, err := set.Regressor.Predict(x)
	if err != nil {
		return nil, err
	}

	recommendations, err := e.rank(set, proba, f)
	if err != nil {
		return nil, err
	}

	topCrop := knowledge.ReferenceCrop
	if len(recommendations) > 0 {
		topCrop = recommendations[0].Crop
	}

	return &Result{
		Recommendations: recommendations,
		InputAnalysis:   Analyze(f),
		RiskFactors:     risk.Assess(f.RiskConditions(), topCrop),
		PredictedYield:  math.Round(predictedYield, 2),
		Model: ModelSummary{
			ID:        set.ID,
			Version:   set.Version,
			Algorithm: model.Algorithm,
			Accuracy:  math.Round(set.Accuracy, 4),
			TrainedAt: set.TrainedAt,
		},
	}, nil
}

// rank sorts classes by descending probability, keeping class order on
// ties, and scores the retained crops on the raw conditions.
func (e *Engine) rank(set *model.Set, proba []float64, f Features) ([]Recommendation, error) {
	order := make([]int, len(proba))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return proba[order[i]] > proba[order[j]]
	})

	if e.topK >= 0 && len(order) > e.topK {
		order = order[:e.topK]
	}

	recommendations := []Recommendation{}
	for i, c := range order {
		if proba[c] < e.minConfidence {
			continue
		}

		crop, err := set.Encoder.Inverse(c)
		if err != nil {
			return nil, err
		}

		profile, err := e.kb.Lookup(crop)
		if err != nil {
			profile = e.kb.LookupOrDefault(crop)
			logger.WithModelAndCrop(set.ID, crop).Warnf("%v, scored as %s", err, profile.ID)
		}

		factor := scoring.Score(profile, f.Conditions())
		estimate := profile.MeanYield() * factor
		if logger.IsDebug() {
			logger.WithModelAndCrop(set.ID, crop).Debugf("confidence %.4f, suitability factor %.4f", proba[c], factor)
		}
		recommendations = append(recommendations, Recommendation{
			Crop:       crop,
			Confidence: proba[c],
			Rank:       i + 1,
			YieldPrediction: YieldPrediction{
				Value: math.Round(estimate, 2),
				Unit:  YieldUnit,
				Min:   math.Round(estimate*(1-yieldBand), 2),
				Max:   math.Round(estimate*(1+yieldBand), 2),
			},
			SuitabilityScore: math.Round(factor*100, 1),
			Season:           profile.Season,
			DurationDays:     profile.DurationDays,
			MarketPrice:      profile.MarketPrice,
		})
	}

	return recommendations, nil
}

// Analyze classifies soil pH and nutrients and echoes the climate inputs.
func Analyze(f Features) InputAnalysis {
	return InputAnalysis{
		SoilPH: Reading{Value: f.PH, Status: risk.PHStatus(f.PH)},
		NutrientLevels: NutrientLevels{
			Nitrogen:   Reading{Value: f.Nitrogen, Status: risk.NutrientStatus(f.Nitrogen, risk.Nitrogen)},
			Phosphorus: Reading{Value: f.Phosphorus, Status: risk.NutrientStatus(f.Phosphorus, risk.Phosphorus)},
			Potassium:  Reading{Value: f.Potassium, Status: risk.NutrientStatus(f.Potassium, risk.Potassium)},
		},
		ClimateConditions: ClimateConditions{
			Temperature: f.Temperature,
			Humidity:    f.Humidity,
			Rainfall:    f.Rainfall,
		},
	}
}
