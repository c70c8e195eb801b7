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

package base

// Options are the options shared by every command.
type Options struct {
	// Console prints logs to the console instead of log files.
	Console bool `yaml:"console" mapstructure:"console"`

	// Verbose enables debug logs and the pprof server.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// PProfPort is the pprof server port, a free port is picked when 0.
	PProfPort int `yaml:"pprof-port" mapstructure:"pprof-port"`

	// Telemetry exports traces when a jaeger endpoint is set.
	Telemetry TelemetryOption `yaml:"telemetry" mapstructure:"telemetry"`
}

// TelemetryOption is the tracing configuration.
type TelemetryOption struct {
	// Jaeger is the collector endpoint, tracing is off when empty.
	Jaeger string `yaml:"jaeger" mapstructure:"jaeger"`

	// ServiceName is the service name attached to exported spans.
	ServiceName string `yaml:"service-name" mapstructure:"service-name"`
}
