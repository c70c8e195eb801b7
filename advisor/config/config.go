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
	"errors"
	"net"
	"runtime"

	"github.com/cropwise/cropwise/advisor/training/models"
	"github.com/cropwise/cropwise/cmd/dependency/base"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Training configuration.
	Training TrainingConfig `yaml:"training" mapstructure:"training"`

	// Recommend configuration.
	Recommend RecommendConfig `yaml:"recommend" mapstructure:"recommend"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type ServerConfig struct {
	// ListenIP is listen ip, like: 0.0.0.0, 192.168.0.1.
	ListenIP net.IP `yaml:"listenIP" mapstructure:"listenIP"`

	// Server port.
	Port int `yaml:"port" mapstructure:"port"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 200)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 10)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`

	// Server storage data directory, model artifacts live under its models directory.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`
}

type TrainingConfig struct {
	// SampleCount is the number of generated samples.
	SampleCount int `yaml:"sampleCount" mapstructure:"sampleCount"`

	// Seed makes dataset generation and training reproducible.
	Seed int64 `yaml:"seed" mapstructure:"seed"`

	// NoiseProbability is the share of samples drawn independently of their label.
	NoiseProbability float64 `yaml:"noiseProbability" mapstructure:"noiseProbability"`

	// TestPercent is the share of samples held out for evaluation.
	TestPercent float64 `yaml:"testPercent" mapstructure:"testPercent"`

	// Trees is the number of trees per forest.
	Trees int `yaml:"trees" mapstructure:"trees"`

	// MaxDepth is the maximum depth of a tree.
	MaxDepth int `yaml:"maxDepth" mapstructure:"maxDepth"`

	// MinSamplesSplit is the minimum number of samples to split a node.
	MinSamplesSplit int `yaml:"minSamplesSplit" mapstructure:"minSamplesSplit"`

	// MinSamplesLeaf is the minimum number of samples per leaf.
	MinSamplesLeaf int `yaml:"minSamplesLeaf" mapstructure:"minSamplesLeaf"`

	// Parallelism bounds the trees grown concurrently, 0 means GOMAXPROCS.
	Parallelism int `yaml:"parallelism" mapstructure:"parallelism"`

	// ExportDataset writes the generated dataset as csv next to the model artifacts.
	ExportDataset bool `yaml:"exportDataset" mapstructure:"exportDataset"`
}

type RecommendConfig struct {
	// MinConfidence drops crops below this probability.
	MinConfidence float64 `yaml:"minConfidence" mapstructure:"minConfidence"`

	// TopK is the maximum number of recommendations.
	TopK int `yaml:"topK" mapstructure:"topK"`
}

type MetricsConfig struct {
	// Enable metrics service.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Metrics service address.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          DefaultServerPort,
			LogMaxSize:    DefaultLogRotateMaxSize,
			LogMaxAge:     DefaultLogRotateMaxAge,
			LogMaxBackups: DefaultLogRotateMaxBackups,
		},
		Training: TrainingConfig{
			SampleCount:      DefaultTrainingSampleCount,
			Seed:             DefaultTrainingSeed,
			NoiseProbability: DefaultTrainingNoiseProbability,
			TestPercent:      DefaultTrainingTestPercent,
			Trees:            DefaultTrainingTrees,
			MaxDepth:         DefaultTrainingMaxDepth,
			MinSamplesSplit:  DefaultTrainingMinSamplesSplit,
			MinSamplesLeaf:   DefaultTrainingMinSamplesLeaf,
		},
		Recommend: RecommendConfig{
			MinConfidence: DefaultRecommendMinConfidence,
			TopK:          DefaultRecommendTopK,
		},
		Metrics: MetricsConfig{
			Enable: false,
			Addr:   DefaultMetricsAddr,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Server.ListenIP == nil {
		return errors.New("server requires parameter listenIP")
	}

	if cfg.Server.Port <= 0 {
		return errors.New("server requires parameter port")
	}

	if cfg.Training.SampleCount <= 0 {
		return errors.New("training requires parameter sampleCount")
	}

	if cfg.Training.NoiseProbability < 0 || cfg.Training.NoiseProbability > 1 {
		return errors.New("training requires noiseProbability in [0, 1]")
	}

	if cfg.Training.TestPercent <= 0 || cfg.Training.TestPercent >= 1 {
		return errors.New("training requires testPercent in (0, 1)")
	}

	if cfg.Training.Trees <= 0 {
		return errors.New("training requires parameter trees")
	}

	if cfg.Training.MaxDepth <= 0 {
		return errors.New("training requires parameter maxDepth")
	}

	if cfg.Training.MinSamplesSplit < 2 {
		return errors.New("training requires minSamplesSplit of at least 2")
	}

	if cfg.Training.MinSamplesLeaf < 1 {
		return errors.New("training requires minSamplesLeaf of at least 1")
	}

	if cfg.Training.Parallelism < 0 {
		return errors.New("training requires non-negative parallelism")
	}

	if cfg.Recommend.MinConfidence < 0 || cfg.Recommend.MinConfidence > 1 {
		return errors.New("recommend requires minConfidence in [0, 1]")
	}

	if cfg.Recommend.TopK <= 0 {
		return errors.New("recommend requires parameter topK")
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.Addr == "" {
			return errors.New("metrics requires parameter addr")
		}
	}

	return nil
}

// Convert fills derived defaults.
func (cfg *Config) Convert() error {
	if cfg.Server.ListenIP == nil {
		cfg.Server.ListenIP = net.IPv4zero
	}

	if cfg.Training.Parallelism == 0 {
		cfg.Training.Parallelism = runtime.GOMAXPROCS(0)
	}

	return nil
}

// ForestParams returns the forest hyperparameters of the training section.
func (cfg *TrainingConfig) ForestParams() models.ForestParams {
	params := models.DefaultForestParams()
	params.Trees = cfg.Trees
	params.MaxDepth = cfg.MaxDepth
	params.MinSamplesSplit = cfg.MinSamplesSplit
	params.MinSamplesLeaf = cfg.MinSamplesLeaf
	params.Seed = cfg.Seed
	if cfg.Parallelism > 0 {
		params.Parallelism = cfg.Parallelism
	}

	return params
}
