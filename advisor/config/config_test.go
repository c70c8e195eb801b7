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
	"net"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/cropwise/cropwise/cmd/dependency/base"
)

func TestConfig_Load(t *testing.T) {
	config := &Config{
		Options: base.Options{
			Console:   true,
			Verbose:   true,
			PProfPort: 6060,
			Telemetry: base.TelemetryOption{
				Jaeger:      "http://localhost:14268/api/traces",
				ServiceName: "cropwise-test",
			},
		},
		Server: ServerConfig{
			ListenIP:      net.ParseIP("0.0.0.0"),
			Port:          8080,
			LogDir:        "foo",
			LogMaxSize:    512,
			LogMaxAge:     5,
			LogMaxBackups: 3,
			DataDir:       "bar",
		},
		Training: TrainingConfig{
			SampleCount:      1000,
			Seed:             7,
			NoiseProbability: 0.2,
			TestPercent:      0.25,
			Trees:            50,
			MaxDepth:         10,
			MinSamplesSplit:  4,
			MinSamplesLeaf:   1,
			Parallelism:      2,
			ExportDataset:    true,
		},
		Recommend: RecommendConfig{
			MinConfidence: 0.05,
			TopK:          3,
		},
		Metrics: MetricsConfig{
			Enable: true,
			Addr:   ":9000",
		},
	}

	advisorConfigYAML := &Config{}
	contentYAML, _ := os.ReadFile("./testdata/advisor.yaml")
	if err := yaml.Unmarshal(contentYAML, &advisorConfigYAML); err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.EqualValues(config, advisorConfigYAML)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		mock   func(cfg *Config)
		expect func(t *testing.T, err error)
	}{
		{
			name:   "valid config",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:   "server requires parameter listenIP",
			config: New(),
			mock:   func(cfg *Config) {},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "server requires parameter listenIP")
			},
		},
		{
			name:   "server requires parameter port",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Server.Port = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "server requires parameter port")
			},
		},
		{
			name:   "training requires parameter sampleCount",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Training.SampleCount = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires parameter sampleCount")
			},
		},
		{
			name:   "training requires noiseProbability in range",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Training.NoiseProbability = 1.5
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires noiseProbability in [0, 1]")
			},
		},
		{
			name:   "training requires testPercent in range",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Training.TestPercent = 1
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires testPercent in (0, 1)")
			},
		},
		{
			name:   "training requires parameter trees",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Training.Trees = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires parameter trees")
			},
		},
		{
			name:   "training requires parameter maxDepth",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Training.MaxDepth = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires parameter maxDepth")
			},
		},
		{
			name:   "training requires minSamplesSplit",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Training.MinSamplesSplit = 1
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires minSamplesSplit of at least 2")
			},
		},
		{
			name:   "training requires minSamplesLeaf",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Training.MinSamplesLeaf = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires minSamplesLeaf of at least 1")
			},
		},
		{
			name:   "training requires non-negative parallelism",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Training.Parallelism = -1
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires non-negative parallelism")
			},
		},
		{
			name:   "recommend requires minConfidence in range",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Recommend.MinConfidence = -0.1
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "recommend requires minConfidence in [0, 1]")
			},
		},
		{
			name:   "recommend requires parameter topK",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Recommend.TopK = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "recommend requires parameter topK")
			},
		},
		{
			name:   "metrics requires parameter addr",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Metrics.Enable = true
				cfg.Metrics.Addr = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "metrics requires parameter addr")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mock(tc.config)
			tc.expect(t, tc.config.Validate())
		})
	}
}

func TestConfig_Convert(t *testing.T) {
	cfg := New()
	assert := assert.New(t)
	assert.NoError(cfg.Convert())
	assert.Equal(net.IPv4zero, cfg.Server.ListenIP)
	assert.Equal(runtime.GOMAXPROCS(0), cfg.Training.Parallelism)
	assert.NoError(cfg.Validate())

	params := cfg.Training.ForestParams()
	assert.Equal(DefaultTrainingTrees, params.Trees)
	assert.Equal(int64(DefaultTrainingSeed), params.Seed)
	assert.Equal(cfg.Training.Parallelism, params.Parallelism)
	assert.NoError(params.Validate())
}
