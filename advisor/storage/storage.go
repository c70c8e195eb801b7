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

//go:generate mockgen -destination mocks/storage_mock.go -source storage.go -package mocks

package storage

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/gofrs/flock"
	"github.com/hashicorp/go-multierror"

	"github.com/cropwise/cropwise/advisor/dataset"
	"github.com/cropwise/cropwise/advisor/model"
	"github.com/cropwise/cropwise/advisor/training/models"
	logger "github.com/cropwise/cropwise/internal/cwlog"
	"github.com/cropwise/cropwise/internal/cwerrors"
	"github.com/cropwise/cropwise/version"
)

const (
	// ClassifierFileName is the file name of the crop classifier.
	ClassifierFileName = "crop_model.gob"

	// RegressorFileName is the file name of the yield regressor.
	RegressorFileName = "yield_model.gob"

	// EncoderFileName is the file name of the label encoder.
	EncoderFileName = "label_encoder.json"

	// ScalerFileName is the file name of the feature scaler.
	ScalerFileName = "scaler.json"

	// MetadataFileName is the file name of the run metadata.
	MetadataFileName = "metadata.json"

	// DatasetFileName is the file name of the exported dataset.
	DatasetFileName = "dataset.csv"

	// lockFileName guards the artifact directory across processes.
	lockFileName = ".lock"
)

// ArtifactFileNames are the files a persisted model set consists of.
var ArtifactFileNames = []string{ClassifierFileName, RegressorFileName, EncoderFileName, ScalerFileName}

// Storage is the interface used for model artifact persistence.
type Storage interface {
	// Save writes every artifact of the set.
	Save(*model.Set) error

	// Load reads the persisted set, all artifacts must come from one run.
	Load() (*model.Set, error)

	// Exists reports whether every artifact file is present.
	Exists() bool

	// Clear removes all artifacts and the exported dataset.
	Clear() error

	// SaveDataset writes samples as csv.
	SaveDataset([]dataset.Sample) error

	// LoadDataset reads samples from the csv written by SaveDataset.
	LoadDataset() ([]dataset.Sample, error)
}

// Metadata describes the persisted run.
type Metadata struct {
	ID           string                  `json:"id"`
	Version      string                  `json:"version"`
	Algorithm    string                  `json:"algorithm"`
	TrainedAt    time.Time               `json:"trained_at"`
	Accuracy     float64                 `json:"accuracy"`
	Regression   model.RegressionMetrics `json:"regression"`
	FeatureNames []string                `json:"feature_names"`
	Classes      []string                `json:"classes"`
}

type classifierArtifact struct {
	ID     string
	Forest *models.RandomForestClassifier
}

type regressorArtifact struct {
	ID     string
	Forest *models.RandomForestRegressor
}

type encoderArtifact struct {
	ID      string   `json:"id"`
	Classes []string `json:"classes"`
}

type scalerArtifact struct {
	ID    string    `json:"id"`
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type storage struct {
	baseDir string

	// mu guards the directory within the process, lock across processes.
	mu   sync.RWMutex
	lock *flock.Flock
}

// New returns a new Storage instance rooted at baseDir.
func New(baseDir string) (Storage, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, cwerrors.Wrap(cwerrors.ErrPersistence, err, "create model directory")
	}

	return &storage{
		baseDir: baseDir,
		lock:    flock.New(filepath.Join(baseDir, lockFileName)),
	}, nil
}

// Save writes every artifact of the set.
func (s *storage) Save(set *model.Set) error {
	if err := set.Validate(); err != nil {
		return cwerrors.Wrap(cwerrors.ErrPersistence, err, "invalid model set")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return cwerrors.Wrap(cwerrors.ErrPersistence, err, "lock model directory")
	}
	defer s.lock.Unlock()

	writes := []struct {
		name   string
		encode func(io.Writer) error
	}{
		{ClassifierFileName, gobEncoder(classifierArtifact{ID: set.ID, Forest: set.Classifier})},
		{RegressorFileName, gobEncoder(regressorArtifact{ID: set.ID, Forest: set.Regressor})},
		{EncoderFileName, jsonEncoder(encoderArtifact{ID: set.ID, Classes: set.Encoder.Classes})},
		{ScalerFileName, jsonEncoder(scalerArtifact{ID: set.ID, Mean: set.Scaler.Mean, Scale: set.Scaler.Scale})},
		{MetadataFileName, jsonEncoder(Metadata{
			ID:           set.ID,
			Version:      set.Version,
			Algorithm:    model.Algorithm,
			TrainedAt:    set.TrainedAt,
			Accuracy:     set.Accuracy,
			Regression:   set.Regression,
			FeatureNames: dataset.FeatureNames,
			Classes:      set.Encoder.Classes,
		})},
	}

	for _, w := range writes {
		if err := s.writeFile(w.name, w.encode); err != nil {
			return cwerrors.Wrap(cwerrors.ErrPersistence, err, fmt.Sprintf("write %s", w.name))
		}
	}

	logger.WithModel(set.ID).Infof("model set saved to %s", s.baseDir)
	return nil
}

// Load reads the persisted set, all artifacts must come from one run.
func (s *storage) Load() (*model.Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.lock.RLock(); err != nil {
		return nil, cwerrors.Wrap(cwerrors.ErrPersistence, err, "lock model directory")
	}
	defer s.lock.Unlock()

	var missing error
	for _, name := range ArtifactFileNames {
		if _, err := os.Stat(s.filename(name)); err != nil {
			missing = multierror.Append(missing, err)
		}
	}
	if missing != nil {
		return nil, cwerrors.Wrap(cwerrors.ErrModelUnavailable, missing, "model artifacts not found")
	}

	var (
		classifier classifierArtifact
		regressor  regressorArtifact
		encoder    encoderArtifact
		scaler     scalerArtifact
		errs       error
	)
	if err := s.readFile(ClassifierFileName, gobDecoder(&classifier)); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", ClassifierFileName, err))
	}
	if err := s.readFile(RegressorFileName, gobDecoder(&regressor)); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", RegressorFileName, err))
	}
	if err := s.readFile(EncoderFileName, jsonDecoder(&encoder)); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", EncoderFileName, err))
	}
	if err := s.readFile(ScalerFileName, jsonDecoder(&scaler)); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", ScalerFileName, err))
	}
	if errs != nil {
		return nil, cwerrors.Wrap(cwerrors.ErrPersistence, errs, "decode model artifacts")
	}

	id := classifier.ID
	if regressor.ID != id || encoder.ID != id || scaler.ID != id {
		return nil, cwerrors.Newf(cwerrors.ErrPersistence, "model artifacts come from different runs: %s, %s, %s, %s",
			classifier.ID, regressor.ID, encoder.ID, scaler.ID)
	}

	set := &model.Set{
		ID:         id,
		Version:    version.ModelVersion,
		Classifier: classifier.Forest,
		Regressor:  regressor.Forest,
		Encoder:    &models.LabelEncoder{Classes: encoder.Classes},
		Scaler:     &models.StandardScaler{Mean: scaler.Mean, Scale: scaler.Scale},
	}

	var metadata Metadata
	if err := s.readFile(MetadataFileName, jsonDecoder(&metadata)); err != nil {
		logger.WithModel(id).Warnf("read metadata failed: %v", err)
	} else if metadata.ID != id {
		logger.WithModel(id).Warnf("metadata belongs to run %s, ignored", metadata.ID)
	} else {
		set.Version = metadata.Version
		set.TrainedAt = metadata.TrainedAt
		set.Accuracy = metadata.Accuracy
		set.Regression = metadata.Regression
	}

	if err := set.Validate(); err != nil {
		return nil, cwerrors.Wrap(cwerrors.ErrPersistence, err, "invalid model artifacts")
	}

	return set, nil
}

// Exists reports whether every artifact file is present.
func (s *storage) Exists() bool {
	for _, name := range ArtifactFileNames {
		if _, err := os.Stat(s.filename(name)); err != nil {
			return false
		}
	}

	return true
}

// Clear removes all artifacts and the exported dataset.
func (s *storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return cwerrors.Wrap(cwerrors.ErrPersistence, err, "lock model directory")
	}
	defer s.lock.Unlock()

	var errs error
	names := []string{MetadataFileName, DatasetFileName}
	for _, name := range append(names, ArtifactFileNames...) {
		if err := os.Remove(s.filename(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = multierror.Append(errs, err)
		}
	}

	return errs
}

// SaveDataset writes samples as csv.
func (s *storage) SaveDataset(samples []dataset.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeFile(DatasetFileName, func(w io.Writer) error {
		return gocsv.Marshal(samples, w)
	}); err != nil {
		return cwerrors.Wrap(cwerrors.ErrPersistence, err, "write dataset")
	}

	return nil
}

// LoadDataset reads samples from the csv written by SaveDataset.
func (s *storage) LoadDataset() ([]dataset.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.filename(DatasetFileName))
	if err != nil {
		return nil, cwerrors.Wrap(cwerrors.ErrPersistence, err, "open dataset")
	}
	defer file.Close()

	var samples []dataset.Sample
	if err := gocsv.UnmarshalFile(file, &samples); err != nil {
		return nil, cwerrors.Wrap(cwerrors.ErrPersistence, err, "read dataset")
	}

	return samples, nil
}

// writeFile writes to a temporary file and renames it into place.
func (s *storage) writeFile(name string, encode func(io.Writer) error) error {
	tmp, err := os.CreateTemp(s.baseDir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.filename(name))
}

func (s *storage) readFile(name string, decode func(io.Reader) error) error {
	file, err := os.Open(s.filename(name))
	if err != nil {
		return err
	}
	defer file.Close()

	return decode(file)
}

func (s *storage) filename(name string) string {
	return filepath.Join(s.baseDir, name)
}

func gobEncoder(v any) func(io.Writer) error {
	return func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(v)
	}
}

func gobDecoder(v any) func(io.Reader) error {
	return func(r io.Reader) error {
		return gob.NewDecoder(r).Decode(v)
	}
}

func jsonEncoder(v any) func(io.Writer) error {
	return func(w io.Writer) error {
		return json.NewEncoder(w).Encode(v)
	}
}

func jsonDecoder(v any) func(io.Reader) error {
	return func(r io.Reader) error {
		return json.NewDecoder(r).Decode(v)
	}
}
