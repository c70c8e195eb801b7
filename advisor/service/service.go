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

//go:generate mockgen -destination mocks/service_mock.go -source service.go -package mocks

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/cropwise/cropwise/advisor/config"
	"github.com/cropwise/cropwise/advisor/dataset"
	"github.com/cropwise/cropwise/advisor/knowledge"
	"github.com/cropwise/cropwise/advisor/metrics"
	"github.com/cropwise/cropwise/advisor/model"
	"github.com/cropwise/cropwise/advisor/recommend"
	"github.com/cropwise/cropwise/advisor/storage"
	"github.com/cropwise/cropwise/advisor/training"
	logger "github.com/cropwise/cropwise/internal/cwlog"
	"github.com/cropwise/cropwise/internal/cwerrors"
	"github.com/cropwise/cropwise/version"
)

const (
	// Name is the service name reported by health.
	Name = "Cropwise Crop Advisor"

	// HealthyStatus is the status of a running service.
	HealthyStatus = "healthy"
)

var (
	// ErrPredict is returned for unexpected prediction failures.
	ErrPredict = errors.New("internal server error during prediction")
)

var tracer = otel.Tracer("cropwise-advisor")

// Service is the boundary of the advisor.
type Service interface {
	// Health reports liveness and whether a model set is loaded.
	Health(context.Context) Health

	// ModelInfo describes the loaded model set.
	ModelInfo(context.Context) ModelInfo

	// Predict recommends crops for raw, possibly partial, features.
	Predict(context.Context, map[string]any) (*Prediction, error)

	// CropDatabase lists the knowledge base.
	CropDatabase(context.Context) CropDatabase

	// Crop returns one crop of the knowledge base.
	Crop(context.Context, string) (CropEntry, error)

	// Retrain generates a dataset, trains and swaps in a new model set.
	Retrain(context.Context, RetrainRequest) (*RetrainResult, error)
}

type service struct {
	config  *config.Config
	kb      knowledge.KnowledgeBase
	handle  *model.Handle
	engine  *recommend.Engine
	storage storage.Storage

	// mu serializes retraining.
	mu sync.Mutex
}

// New returns a new Service.
func New(cfg *config.Config, kb knowledge.KnowledgeBase, handle *model.Handle, storage storage.Storage) Service {
	return &service{
		config: cfg,
		kb:     kb,
		handle: handle,
		engine: recommend.New(handle, kb,
			recommend.WithMinConfidence(cfg.Recommend.MinConfidence),
			recommend.WithTopK(cfg.Recommend.TopK)),
		storage: storage,
	}
}

// Health reports liveness and whether a model set is loaded.
func (s *service) Health(ctx context.Context) Health {
	return Health{
		Status:      HealthyStatus,
		Service:     Name,
		Version:     version.ModelVersion,
		ModelLoaded: s.handle.Loaded(),
		Timestamp:   time.Now(),
	}
}

// ModelInfo describes the loaded model set.
func (s *service) ModelInfo(ctx context.Context) ModelInfo {
	set, ok := s.handle.Load()
	if !ok {
		return ModelInfo{
			ModelVersion:   version.ModelVersion,
			Features:       dataset.FeatureNames,
			SupportedCrops: s.kb.CropIDs(),
			Algorithm:      model.Algorithm,
		}
	}

	return ModelInfo{
		ModelLoaded:    true,
		ModelVersion:   set.Version,
		ModelID:        set.ID,
		Accuracy:       set.Accuracy,
		Regression:     set.Regression,
		Features:       dataset.FeatureNames,
		SupportedCrops: s.kb.CropIDs(),
		Algorithm:      model.Algorithm,
		TrainingDate:   set.TrainedAt,
	}
}

// Predict recommends crops for raw, possibly partial, features.
func (s *service) Predict(ctx context.Context, raw map[string]any) (prediction *Prediction, err error) {
	var span trace.Span
	_, span = tracer.Start(ctx, SpanPredict, trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	metrics.PredictCount.Inc()
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("prediction panic: %v", r)
			prediction, err = nil, ErrPredict
		}

		if err != nil {
			span.RecordError(err)
			kind := cwerrors.KindOf(err)
			if kind == nil {
				metrics.PredictFailureCount.WithLabelValues("unexpected").Inc()
				return
			}
			metrics.PredictFailureCount.WithLabelValues(kind.Error()).Inc()
		}
	}()

	features, err := recommend.ParseFeatures(raw)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Recommend(features)
	if err != nil {
		if cwerrors.KindOf(err) != nil {
			return nil, err
		}

		logger.Errorf("prediction failed: %v", err)
		return nil, ErrPredict
	}

	span.SetAttributes(AttributeModelID.String(result.Model.ID))
	if len(result.Recommendations) > 0 {
		span.SetAttributes(AttributeTopCrop.String(result.Recommendations[0].Crop))
	}

	if logger.IsDebug() {
		logger.WithModel(result.Model.ID).Debugf("predicted %d crops for %+v", len(result.Recommendations), features)
	}

	return &Prediction{
		Success:   true,
		Result:    result,
		Timestamp: time.Now(),
	}, nil
}

// CropDatabase lists the knowledge base.
func (s *service) CropDatabase(ctx context.Context) CropDatabase {
	crops := make(map[string]CropEntry, s.kb.Len())
	for _, p := range s.kb.Profiles() {
		crops[p.ID] = newCropEntry(p)
	}

	return CropDatabase{
		Crops:      crops,
		TotalCrops: len(crops),
	}
}

// Crop returns one crop of the knowledge base.
func (s *service) Crop(ctx context.Context, id string) (CropEntry, error) {
	p, err := s.kb.Lookup(id)
	if err != nil {
		return CropEntry{}, err
	}

	return newCropEntry(p), nil
}

func newCropEntry(p knowledge.CropProfile) CropEntry {
	return CropEntry{
		OptimalConditions: OptimalConditions{
			PH:          p.PH,
			Temperature: p.Temperature,
			Humidity:    p.Humidity,
			Rainfall:    p.Rainfall,
		},
		Season:      p.Season,
		Duration:    p.DurationDays,
		YieldRange:  p.Yield,
		MarketPrice: p.MarketPrice,
	}
}

// Retrain generates a dataset, trains and swaps in a new model set. A
// failure to persist the new set is logged and does not fail the call.
func (s *service) Retrain(ctx context.Context, req RetrainRequest) (*RetrainResult, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, SpanRetrain)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sampleCount := s.config.Training.SampleCount
	if req.SampleCount > 0 {
		sampleCount = req.SampleCount
	}

	seed := s.config.Training.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}

	metrics.TrainStartedCount.Inc()
	start := time.Now()
	samples := req.Samples
	if len(samples) == 0 {
		samples = dataset.New(s.kb,
			dataset.WithSampleCount(sampleCount),
			dataset.WithSeed(seed),
			dataset.WithNoiseProbability(s.config.Training.NoiseProbability),
		).Generate()
	}
	span.SetAttributes(AttributeSampleCount.Int(len(samples)), AttributeSeed.Int64(seed))

	trainer := training.New(
		training.WithForestParams(s.config.Training.ForestParams()),
		training.WithSeed(seed),
		training.WithTestPercent(s.config.Training.TestPercent),
	)
	set, err := trainer.Train(ctx, samples)
	if err != nil {
		metrics.TrainFailureCount.Inc()
		span.RecordError(err)
		logger.Errorf("retrain failed: %v", err)
		return nil, fmt.Errorf("retrain: %w", err)
	}

	if err := s.handle.Store(set); err != nil {
		metrics.TrainFailureCount.Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("retrain: %w", err)
	}
	metrics.TrainFinishedCount.Inc()
	metrics.TrainDuration.Observe(time.Since(start).Seconds())
	metrics.ModelAccuracyGauge.Set(set.Accuracy)

	log := logger.WithTrainModel(set.ID)
	persisted := true
	if err := s.storage.Save(set); err != nil {
		persisted = false
		metrics.PersistFailureCount.Inc()
		span.RecordError(err)
		log.Errorf("persist model set failed: %v", err)
	}

	if s.config.Training.ExportDataset && len(req.Samples) == 0 {
		if err := s.storage.SaveDataset(samples); err != nil {
			metrics.PersistFailureCount.Inc()
			log.Errorf("export dataset failed: %v", err)
		}
	}

	span.SetAttributes(AttributeModelID.String(set.ID), AttributeAccuracy.Float64(set.Accuracy), AttributePersisted.Bool(persisted))
	log.Infof("model set swapped in, accuracy %.4f", set.Accuracy)
	return &RetrainResult{
		Success:     true,
		Message:     "Models retrained successfully",
		ModelID:     set.ID,
		NewAccuracy: set.Accuracy,
		Persisted:   persisted,
		Timestamp:   time.Now(),
	}, nil
}
