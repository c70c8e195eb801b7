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
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cropwise/cropwise/advisor/knowledge"
	"github.com/cropwise/cropwise/advisor/scoring"
)

const (
	// DefaultSampleCount is the default number of generated samples.
	DefaultSampleCount = 5000

	// DefaultSeed is the default random seed.
	DefaultSeed = 42

	// DefaultNoiseProbability is the chance a sample is replaced by a random draw.
	DefaultNoiseProbability = 0.3
)

// Padding applied around the optimal intervals of the sampled crop.
const (
	phPadding          = 0.5
	temperaturePadding = 5.0
	humidityPadding    = 10.0
	rainfallLowFactor  = 0.8
	rainfallHighFactor = 1.2
)

// Wide ranges used by noise samples.
var (
	noisePH          = knowledge.Range{Min: 4.5, Max: 9.0}
	noiseTemperature = knowledge.Range{Min: 5, Max: 45}
	noiseHumidity    = knowledge.Range{Min: 30, Max: 95}
	noiseRainfall    = knowledge.Range{Min: 200, Max: 2500}
)

// Nutrient distributions, independent of the crop.
var (
	nitrogenMean, nitrogenStd     = 50.0, 20.0
	phosphorusMean, phosphorusStd = 40.0, 15.0
	potassiumMean, potassiumStd   = 35.0, 12.0
)

// Generator fabricates labeled samples from the crop knowledge base.
type Generator struct {
	kb               knowledge.KnowledgeBase
	sampleCount      int
	seed             int64
	noiseProbability float64
}

// Option is a functional option for configuring the generator.
type Option func(g *Generator)

// WithSampleCount sets the number of generated samples.
func WithSampleCount(n int) Option {
	return func(g *Generator) {
		g.sampleCount = n
	}
}

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithNoiseProbability sets the probability of replacing a sample with a random draw.
func WithNoiseProbability(p float64) Option {
	return func(g *Generator) {
		g.noiseProbability = p
	}
}

// New returns a generator over the crops of kb.
func New(kb knowledge.KnowledgeBase, options ...Option) *Generator {
	g := &Generator{
		kb:               kb,
		sampleCount:      DefaultSampleCount,
		seed:             DefaultSeed,
		noiseProbability: DefaultNoiseProbability,
	}

	for _, opt := range options {
		opt(g)
	}

	return g
}

// Generate draws the samples. The same seed always yields the same samples.
func (g *Generator) Generate() []Sample {
	src := rand.NewSource(uint64(g.seed))
	rng := rand.New(src)
	nitrogen := distuv.Normal{Mu: nitrogenMean, Sigma: nitrogenStd, Src: src}
	phosphorus := distuv.Normal{Mu: phosphorusMean, Sigma: phosphorusStd, Src: src}
	potassium := distuv.Normal{Mu: potassiumMean, Sigma: potassiumStd, Src: src}

	crops := g.kb.CropIDs()
	uniform := func(r knowledge.Range) float64 {
		return distuv.Uniform{Min: r.Min, Max: r.Max, Src: src}.Rand()
	}

	samples := make([]Sample, 0, g.sampleCount)
	for i := 0; i < g.sampleCount; i++ {
		profile := g.kb.LookupOrDefault(crops[rng.Intn(len(crops))])
		s := Sample{
			Nitrogen:    nitrogen.Rand(),
			Phosphorus:  phosphorus.Rand(),
			Potassium:   potassium.Rand(),
			PH:          uniform(knowledge.Range{Min: profile.PH.Min - phPadding, Max: profile.PH.Max + phPadding}),
			Temperature: uniform(knowledge.Range{Min: profile.Temperature.Min - temperaturePadding, Max: profile.Temperature.Max + temperaturePadding}),
			Humidity:    uniform(knowledge.Range{Min: profile.Humidity.Min - humidityPadding, Max: profile.Humidity.Max + humidityPadding}),
			Rainfall:    uniform(knowledge.Range{Min: profile.Rainfall.Min * rainfallLowFactor, Max: profile.Rainfall.Max * rainfallHighFactor}),
		}

		// Label noise, the climate draw no longer depends on the label.
		if rng.Float64() < g.noiseProbability {
			profile = g.kb.LookupOrDefault(crops[rng.Intn(len(crops))])
			s.PH = uniform(noisePH)
			s.Temperature = uniform(noiseTemperature)
			s.Humidity = uniform(noiseHumidity)
			s.Rainfall = uniform(noiseRainfall)
		}

		s.Label = profile.ID
		s.Yield = profile.MeanYield() * scoring.Score(profile, s.Conditions()) * uniform(knowledge.Range{Min: 0.8, Max: 1.2})
		samples = append(samples, s)
	}

	return samples
}
