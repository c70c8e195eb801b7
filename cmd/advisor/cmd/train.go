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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cropwise/cropwise/advisor"
	logger "github.com/cropwise/cropwise/internal/cwlog"
)

var fromDataset bool

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "train and persist a model set",
	Long: `Generate the synthetic dataset, train the crop classifier and the yield regressor
and persist them to the model directory, then exit. With --from-dataset the dataset
exported by a previous run is trained on instead.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d, err := initAdvisor()
		if err != nil {
			return err
		}

		result, err := advisor.Train(ctx, cfg, d, fromDataset)
		if err != nil {
			return err
		}

		logger.WithModel(result.ModelID).Infof("model set persisted to %s", d.ModelDir())
		fmt.Fprintf(cmd.OutOrStdout(), "model %s trained, accuracy %.4f\n", result.ModelID, result.NewAccuracy)
		return nil
	},
}

func init() {
	trainCmd.Flags().BoolVar(&fromDataset, "from-dataset", false, "train on the dataset exported to the model directory")
}
