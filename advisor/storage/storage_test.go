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

package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropwise/cropwise/advisor/dataset"
	"github.com/cropwise/cropwise/advisor/knowledge"
	"github.com/cropwise/cropwise/advisor/model"
	"github.com/cropwise/cropwise/advisor/training"
	"github.com/cropwise/cropwise/advisor/training/models"
	"github.com/cropwise/cropwise/internal/cwerrors"
)

func newTestSet(t *testing.T) *model.Set {
	params := models.DefaultForestParams()
	params.Trees = 3
	params.MaxDepth = 4

	samples := dataset.New(knowledge.Default(), dataset.WithSampleCount(200)).Generate()
	set, err := training.New(training.WithForestParams(params)).Train(context.Background(), samples)
	require.NoError(t, err)
	return set
}

func TestStorage_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	assert.False(t, s.Exists())

	_, err = s.Load()
	assert.True(t, cwerrors.IsModelUnavailable(err))

	set := newTestSet(t)
	require.NoError(t, s.Save(set))
	assert.True(t, s.Exists())
	for _, name := range append(ArtifactFileNames, MetadataFileName) {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, set.ID, loaded.ID)
	assert.Equal(t, set.Version, loaded.Version)
	assert.Equal(t, set.Accuracy, loaded.Accuracy)
	assert.Equal(t, set.Regression, loaded.Regression)
	assert.True(t, set.TrainedAt.Equal(loaded.TrainedAt))
	assert.Equal(t, set.Encoder.Classes, loaded.Encoder.Classes)
	assert.Equal(t, set.Scaler, loaded.Scaler)

	row := make([]float64, len(dataset.FeatureNames))
	want, err := set.Classifier.PredictProba(row)
	require.NoError(t, err)
	got, err := loaded.Classifier.PredictProba(row)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Clear())
	assert.False(t, s.Exists())
	require.NoError(t, s.Clear())
}

func TestStorage_Load(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, dir string)
		expect func(t *testing.T, set *model.Set, err error)
	}{
		{
			name: "missing artifact",
			mock: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, ScalerFileName)))
			},
			expect: func(t *testing.T, set *model.Set, err error) {
				assert.ErrorIs(t, err, cwerrors.ErrModelUnavailable)
				assert.Nil(t, set)
			},
		},
		{
			name: "corrupt artifact",
			mock: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ClassifierFileName), []byte("foo"), 0600))
			},
			expect: func(t *testing.T, set *model.Set, err error) {
				assert.ErrorIs(t, err, cwerrors.ErrPersistence)
				assert.Nil(t, set)
			},
		},
		{
			name: "artifacts from different runs",
			mock: func(t *testing.T, dir string) {
				b, err := json.Marshal(encoderArtifact{ID: "bar", Classes: knowledge.Default().CropIDs()})
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(filepath.Join(dir, EncoderFileName), b, 0600))
			},
			expect: func(t *testing.T, set *model.Set, err error) {
				assert.ErrorIs(t, err, cwerrors.ErrPersistence)
				assert.Contains(t, err.Error(), "different runs")
			},
		},
		{
			name: "missing metadata",
			mock: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, MetadataFileName)))
			},
			expect: func(t *testing.T, set *model.Set, err error) {
				assert.NoError(t, err)
				assert.NoError(t, set.Validate())
				assert.Zero(t, set.Accuracy)
			},
		},
	}

	set := newTestSet(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			s, err := New(dir)
			require.NoError(t, err)
			require.NoError(t, s.Save(set))

			tc.mock(t, dir)
			loaded, err := s.Load()
			tc.expect(t, loaded, err)
		})
	}
}

func TestStorage_Save(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	err = s.Save(&model.Set{})
	assert.ErrorIs(t, err, cwerrors.ErrPersistence)
	assert.False(t, s.Exists())
}

func TestStorage_Dataset(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.LoadDataset()
	assert.ErrorIs(t, err, cwerrors.ErrPersistence)

	samples := dataset.New(knowledge.Default(), dataset.WithSampleCount(20)).Generate()
	require.NoError(t, s.SaveDataset(samples))

	loaded, err := s.LoadDataset()
	require.NoError(t, err)
	require.Len(t, loaded, len(samples))
	for i := range samples {
		assert.Equal(t, samples[i].Label, loaded[i].Label)
		assert.InDelta(t, samples[i].PH, loaded[i].PH, 1e-9)
		assert.InDelta(t, samples[i].Yield, loaded[i].Yield, 1e-9)
	}
}

func TestStorage_ConcurrentSaveLoad(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	set := newTestSet(t)
	require.NoError(t, s.Save(set))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Save(set))
		}()
		go func() {
			defer wg.Done()
			loaded, err := s.Load()
			if assert.NoError(t, err) {
				assert.Equal(t, set.ID, loaded.ID)
			}
		}()
	}
	wg.Wait()

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, set.ID, loaded.ID)
}
