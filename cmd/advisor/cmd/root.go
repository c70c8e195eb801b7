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

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cropwise/cropwise/advisor"
	"github.com/cropwise/cropwise/advisor/config"
	"github.com/cropwise/cropwise/cmd/dependency"
	logger "github.com/cropwise/cropwise/internal/cwlog"
	"github.com/cropwise/cropwise/pkg/cwpath"
	"github.com/cropwise/cropwise/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "the crop advisor of cropwise",
	Long: `Advisor is a long-running process that recommends crops for soil and climate readings.
It trains a random forest on a synthetic agronomic dataset, persists the fitted models
and serves recommendations, input analysis and risk factors over HTTP.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		d, err := initAdvisor()
		if err != nil {
			return err
		}

		return runAdvisor(ctx, d)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default advisor config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, cfg)
	rootCmd.AddCommand(trainCmd)
}

// initAdvisor converts and validates the config, then resolves the
// directories and the logger.
func initAdvisor() (cwpath.Cwpath, error) {
	// Convert config.
	if err := cfg.Convert(); err != nil {
		return nil, err
	}

	// Validate config.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Initialize cwpath.
	d, err := initCwpath(&cfg.Server)
	if err != nil {
		return nil, err
	}

	rotateConfig := logger.LogRotateConfig{
		MaxSize:    cfg.Server.LogMaxSize,
		MaxAge:     cfg.Server.LogMaxAge,
		MaxBackups: cfg.Server.LogMaxBackups,
	}

	// Initialize logger.
	if err := logger.InitAdvisor(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
		return nil, fmt.Errorf("init advisor logger: %w", err)
	}

	return d, nil
}

func initCwpath(cfg *config.ServerConfig) (cwpath.Cwpath, error) {
	var options []cwpath.Option
	if cfg.LogDir != "" {
		options = append(options, cwpath.WithLogDir(cfg.LogDir))
	}

	if cfg.DataDir != "" {
		options = append(options, cwpath.WithDataDir(cfg.DataDir))
	}

	return cwpath.New(options...)
}

func runAdvisor(ctx context.Context, d cwpath.Cwpath) error {
	logger.Infof("version:\n%s", version.Version())

	ff := dependency.InitMonitor(cfg.Verbose, cfg.PProfPort, cfg.Telemetry)
	defer ff()

	svr, err := advisor.New(ctx, cfg, d)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(func() { svr.Stop() })
	return svr.Serve()
}
