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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/assetrc/cmd/assetrc/commands"
	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/log"
)

func main() {
	o := &opts.RootOpts{}
	rootCmd := newRootCmd(o)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger := o.Logger
		if logger == nil {
			logger = log.New(os.Stderr, zerolog.Disabled)
		}
		logger.Errorf("command failed: %v", err)
		os.Exit(1)
	}
}

func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "assetrc",
		Short: "Copy web assets into a build tree and record them in a manifest",
		Long: `assetrc copies the files listed in a config into dest_root, mirroring their
layout below src_root. CDN files are passed through as URLs. Every file is
typed by extension and the result is written to a JSON or YAML manifest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			ctx := setupLogging(cmd.Context(), o.Debug)
			cmd.SetContext(ctx)
			return loadRootOpts(ctx, o)
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewBuildCmd(o),
		commands.NewClassifyCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}
