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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/asset"
	"github.com/walteh/assetrc/pkg/copier"
	"github.com/walteh/assetrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewBuildCmd creates a new build command
func NewBuildCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Copy configured files into dest_root and write the manifest",
		Long: `Build processes every file listed in the config. It will:
1. Skip files matching an ignore pattern
2. Copy local files below dest_root, keeping their layout below src_root
3. Pass CDN files through as URLs
4. Write the manifest of output paths grouped by type`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx).With().Str("command", "build").Logger()
			ctx = logger.WithContext(ctx)

			reg := asset.NewRegistry(o.Config.Classifier())
			defer reg.Dispose()

			op, err := operation.NewBuildOperation(operation.Options{
				Config:     o.Config,
				FileSystem: copier.NewOS(),
				Registry:   reg,
				Logger:     o.Logger,
			})
			if err != nil {
				return errors.Errorf("creating build operation: %w", err)
			}

			if err := operation.NewRunner(&logger, o.Config.Async).Run(ctx, op); err != nil {
				return errors.Errorf("building assets: %w", err)
			}

			res := op.Result()
			o.Logger.Successf("%d files built, %d ignored, manifest at %s",
				len(res.Files), len(res.Ignored), o.Config.Manifest)

			return nil
		},
	}

	return cmd
}
