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

package dependency

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/mitchellh/mapstructure"
	"github.com/phayes/freeport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/cropwise/cropwise/cmd/dependency/base"
	logger "github.com/cropwise/cropwise/internal/cwlog"
	"github.com/cropwise/cropwise/version"
)

const (
	// DefaultConfigFile is the config file read when --config is not set.
	DefaultConfigFile = "/etc/cropwise/advisor.yaml"

	// EnvPrefix is the environment prefix bound by viper.
	EnvPrefix = "advisor"

	// DefaultServiceName names exported spans when telemetry sets none.
	DefaultServiceName = "cropwise-advisor"

	// tracerShutdownTimeout bounds the flush of buffered spans.
	tracerShutdownTimeout = 5 * time.Second
)

// InitCommandAndConfig binds the shared flags of cmd and decodes the config
// file and environment into cfg before the command runs.
func InitCommandAndConfig(cmd *cobra.Command, cfg any) {
	// Initialize cobra.
	cobra.OnInitialize(func() {
		if err := initConfig(cmd, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "init config: %v\n", err)
			os.Exit(1)
		}
	})

	flags := cmd.PersistentFlags()
	flags.String("config", DefaultConfigFile, "the path of configuration file with yaml extension name")
	flags.Bool("console", false, "whether logger output records to the stdout")
	flags.Bool("verbose", false, "whether logger use debug level")
	flags.Int("pprof-port", 0, "listen port for pprof, 0 represents random port")

	// Bind common flags.
	for _, name := range []string{"config", "console", "verbose", "pprof-port"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	// Add common cmds only on root cmd.
	if !cmd.HasParent() {
		cmd.AddCommand(VersionCmd)
	}
}

func initConfig(cmd *cobra.Command, cfg any) error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigFile(viper.GetString("config"))
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		// The default config file is optional.
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flag("config").Changed {
			return err
		}
	}

	return viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToIPHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
}

// InitMonitor starts pprof and statsview in verbose mode and the jaeger
// tracer when configured, it returns the function to stop them.
func InitMonitor(verbose bool, pprofPort int, otelOption base.TelemetryOption) func() {
	var fc = make(chan func(), 2)

	if verbose {
		fc <- initPProf(pprofPort)
	}

	if otelOption.Jaeger != "" {
		ff, err := InitJaegerTracer(otelOption)
		if err != nil {
			logger.Warnf("init jaeger tracer error: %v", err)
		} else {
			fc <- ff
		}
	}
	close(fc)

	return func() {
		for f := range fc {
			f()
		}
	}
}

// InitJaegerTracer installs a global tracer provider exporting to the
// jaeger collector, it returns the function flushing and stopping it.
func InitJaegerTracer(otelOption base.TelemetryOption) (func(), error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(otelOption.Jaeger)))
	if err != nil {
		return nil, err
	}

	serviceName := otelOption.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Errorf("shutdown tracer provider error: %v", err)
		}
	}, nil
}

func initPProf(pprofPort int) func() {
	if pprofPort == 0 {
		pprofPort, _ = freeport.GetFreePort()
	}

	debugAddr := fmt.Sprintf("localhost:%d", pprofPort)
	viewer.SetConfiguration(viewer.WithAddr(debugAddr))
	vm := statsview.New()

	go func() {
		logger.With("pprof", fmt.Sprintf("http://%s/debug/pprof", debugAddr),
			"statsview", fmt.Sprintf("http://%s/debug/statsview", debugAddr)).
			Infof("enable pprof at %s", debugAddr)

		if err := vm.Start(); err != nil {
			logger.Warnf("serve pprof error: %v", err)
		}
	}()

	return func() {
		vm.Stop()
	}
}

// SetupQuitSignalHandler calls handler once on SIGINT or SIGTERM.
func SetupQuitSignalHandler(handler func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		logger.Infof("receive %s signal, version: %s", sig, version.GitVersion)
		handler()
	}()
}
