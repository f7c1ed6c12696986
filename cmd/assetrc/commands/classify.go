// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewClassifyCmd creates a new classify command
func NewClassifyCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show how every configured file would be typed",
		Long: `Classify prints the extension, type and flags of every configured file
without copying anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx).With().Str("command", "classify").Logger()
			ctx = logger.WithContext(ctx)

			op, err := operation.NewClassifyOperation(operation.Options{
				Config: o.Config,
				Logger: o.Logger,
			})
			if err != nil {
				return errors.Errorf("creating classify operation: %w", err)
			}

			if err := operation.NewRunner(&logger, o.Config.Async).Run(ctx, op); err != nil {
				return errors.Errorf("classifying files: %w", err)
			}

			return renderClassifications(cmd, op.Result())
		},
	}

	return cmd
}

func renderClassifications(cmd *cobra.Command, result []operation.Classification) error {
	data := pterm.TableData{{"source", "ext", "type", "remote", "asset", "image", "ignored"}}
	for _, c := range result {
		data = append(data, []string{
			c.Source,
			c.Extension,
			c.Type,
			strconv.FormatBool(c.Remote),
			strconv.FormatBool(c.Asset),
			strconv.FormatBool(c.Image),
			strconv.FormatBool(c.Ignored),
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		WithWriter(cmd.OutOrStdout()).
		Render()
}
