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

package config

import (
	"github.com/cropwise/cropwise/advisor/dataset"
	"github.com/cropwise/cropwise/advisor/recommend"
	"github.com/cropwise/cropwise/advisor/training"
	"github.com/cropwise/cropwise/advisor/training/models"
	logger "github.com/cropwise/cropwise/internal/cwlog"
)

const (
	// DefaultServerPort is default port for server.
	DefaultServerPort = 8000

	// DefaultMetricsAddr is default address for metrics server.
	DefaultMetricsAddr = ":8001"
)

const (
	// DefaultLogRotateMaxSize is the default maximum size in megabytes of log files.
	DefaultLogRotateMaxSize = logger.DefaultRotateMaxSize

	// DefaultLogRotateMaxAge is the default number of days to retain old log files.
	DefaultLogRotateMaxAge = logger.DefaultRotateMaxAge

	// DefaultLogRotateMaxBackups is the default number of old log files to keep.
	DefaultLogRotateMaxBackups = logger.DefaultRotateMaxBackups
)

const (
	// DefaultTrainingSampleCount is the default number of generated samples.
	DefaultTrainingSampleCount = dataset.DefaultSampleCount

	// DefaultTrainingSeed is the default random seed.
	DefaultTrainingSeed = dataset.DefaultSeed

	// DefaultTrainingNoiseProbability is the default label noise probability.
	DefaultTrainingNoiseProbability = dataset.DefaultNoiseProbability

	// DefaultTrainingTestPercent is the default held-out share.
	DefaultTrainingTestPercent = training.DefaultTestPercent

	// DefaultTrainingTrees is the default forest size.
	DefaultTrainingTrees = models.DefaultTrees

	// DefaultTrainingMaxDepth is the default tree depth limit.
	DefaultTrainingMaxDepth = models.DefaultMaxDepth

	// DefaultTrainingMinSamplesSplit is the default minimum node size to split.
	DefaultTrainingMinSamplesSplit = models.DefaultMinSamplesSplit

	// DefaultTrainingMinSamplesLeaf is the default minimum leaf size.
	DefaultTrainingMinSamplesLeaf = models.DefaultMinSamplesLeaf
)

const (
	// DefaultRecommendMinConfidence is the default confidence floor.
	DefaultRecommendMinConfidence = recommend.DefaultMinConfidence

	// DefaultRecommendTopK is the default number of recommendations.
	DefaultRecommendTopK = recommend.DefaultTopK
)
