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

package training

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"github.com/cropwise/cropwise/advisor/dataset"
	"github.com/cropwise/cropwise/advisor/model"
	"github.com/cropwise/cropwise/advisor/training/models"
	logger "github.com/cropwise/cropwise/internal/cwlog"
	"github.com/cropwise/cropwise/version"
)

const (
	// DefaultTestPercent is the share of samples held out for evaluation.
	DefaultTestPercent = 0.2
)

// Trainer fits a model set from labeled samples.
type Trainer struct {
	params      models.ForestParams
	testPercent float64
}

// Option is a functional option for configuring the trainer.
type Option func(t *Trainer)

// WithForestParams sets the forest hyperparameters. MaxFeatures applies
// to the classifier, the regressor always considers every feature.
func WithForestParams(params models.ForestParams) Option {
	return func(t *Trainer) {
		t.params = params
	}
}

// WithSeed sets the seed of the splits and forests.
func WithSeed(seed int64) Option {
	return func(t *Trainer) {
		t.params.Seed = seed
	}
}

// WithTestPercent sets the share of held-out samples.
func WithTestPercent(p float64) Option {
	return func(t *Trainer) {
		t.testPercent = p
	}
}

// New returns a trainer.
func New(options ...Option) *Trainer {
	t := &Trainer{
		params:      models.DefaultForestParams(),
		testPercent: DefaultTestPercent,
	}

	for _, opt := range options {
		opt(t)
	}

	return t
}

// Train fits the label encoder and scaler on all samples, the classifier
// on a stratified split and the yield regressor on a random split.
func (t *Trainer) Train(ctx context.Context, samples []dataset.Sample) (*model.Set, error) {
	if len(samples) == 0 {
		return nil, errors.New("training requires at least one sample")
	}

	start := time.Now()
	id := uuid.NewString()
	log := logger.WithTrainModel(id)
	log.Infof("training on %d samples, distribution %v", len(samples), dataset.Distribution(samples))

	encoder, err := models.NewLabelEncoder(dataset.Labels(samples))
	if err != nil {
		return nil, err
	}

	y, err := encoder.TransformAll(dataset.Labels(samples))
	if err != nil {
		return nil, err
	}

	scaler, err := models.NewStandardScaler(dataset.Matrix(samples))
	if err != nil {
		return nil, err
	}

	x, err := scaler.TransformAll(dataset.Matrix(samples))
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(uint64(t.params.Seed)))
	classifier, accuracy, err := t.trainClassifier(ctx, log, samples, x, y, encoder, rng)
	if err != nil {
		log.Errorf("train classifier failed: %v", err)
		return nil, err
	}
	log.Infof("classifier accuracy %.4f", accuracy)

	regressor, metrics, err := t.trainRegressor(ctx, log, samples, x, scaler, rng)
	if err != nil {
		log.Errorf("train regressor failed: %v", err)
		return nil, err
	}
	log.Infof("regressor mae %.4f rmse %.4f r2 %.4f", metrics.MAE, metrics.RMSE, metrics.R2)

	set := &model.Set{
		ID:         id,
		Version:    version.ModelVersion,
		TrainedAt:  time.Now(),
		Accuracy:   accuracy,
		Regression: metrics,
		Classifier: classifier,
		Regressor:  regressor,
		Encoder:    encoder,
		Scaler:     scaler,
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	log.Infof("training finished in %s", time.Since(start))
	return set, nil
}

func (t *Trainer) trainClassifier(ctx context.Context, log *logger.SugaredLoggerOnWith, samples []dataset.Sample, x [][]float64, y []int, encoder *models.LabelEncoder, rng *rand.Rand) (*models.RandomForestClassifier, float64, error) {
	train, test, err := StratifiedSplit(y, t.testPercent, rng)
	if err != nil {
		return nil, 0, err
	}

	log.Infof("fitting %d classifier trees on %d rows, %d held out", t.params.Trees, len(train), len(test))
	classifier := models.NewRandomForestClassifier(t.params)
	if err := classifier.Fit(ctx, selectRows(x, train), selectInts(y, train), encoder.Len()); err != nil {
		return nil, 0, err
	}

	held := make([]dataset.Sample, len(test))
	predicted := make([]string, len(test))
	for i, r := range test {
		c, err := classifier.Predict(x[r])
		if err != nil {
			return nil, 0, err
		}

		if predicted[i], err = encoder.Inverse(c); err != nil {
			return nil, 0, err
		}
		held[i] = samples[r]
	}

	ref, err := dataset.ToInstances(held)
	if err != nil {
		return nil, 0, err
	}

	accuracy, err := Accuracy(ref, predicted)
	if err != nil {
		return nil, 0, err
	}

	return classifier, accuracy, nil
}

func (t *Trainer) trainRegressor(ctx context.Context, log *logger.SugaredLoggerOnWith, samples []dataset.Sample, x [][]float64, scaler *models.StandardScaler, rng *rand.Rand) (*models.RandomForestRegressor, model.RegressionMetrics, error) {
	yields := dataset.Yields(samples)
	train, test, err := RandomSplit(len(samples), t.testPercent, rng)
	if err != nil {
		return nil, model.RegressionMetrics{}, err
	}

	params := t.params
	params.MaxFeatures = models.MaxFeaturesAll
	log.Infof("fitting %d regressor trees on %d rows, %d held out", params.Trees, len(train), len(test))
	regressor := models.NewRandomForestRegressor(params)
	if err := regressor.Fit(ctx, selectRows(x, train), selectFloats(yields, train)); err != nil {
		return nil, model.RegressionMetrics{}, err
	}

	ref, err := dataset.ToYieldInstances(selectSamples(samples, test))
	if err != nil {
		return nil, model.RegressionMetrics{}, err
	}

	// Held-out rows are read back raw from the grid and scaled again.
	rows := dataset.FromInstances(ref)
	predicted := make([]float64, len(rows))
	for i, row := range rows {
		scaled, err := scaler.Transform(row)
		if err != nil {
			return nil, model.RegressionMetrics{}, err
		}

		if predicted[i], err = regressor.Predict(scaled); err != nil {
			return nil, model.RegressionMetrics{}, err
		}
	}

	metrics, err := Regression(ref, predicted)
	if err != nil {
		return nil, model.RegressionMetrics{}, err
	}

	return regressor, metrics, nil
}
