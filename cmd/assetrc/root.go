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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigFile = ".assetrc.yaml"

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", defaultConfigFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.Async, "async", false, "run operations asynchronously")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &l
	return l.WithContext(ctx)
}

// loadRootOpts loads the config and creates the console logger
func loadRootOpts(ctx context.Context, o *opts.RootOpts) error {
	cfg, err := config.LoadConfig(ctx, o.ConfigFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	if err := anchorRoots(cfg); err != nil {
		return errors.Errorf("resolving config roots: %w", err)
	}

	if o.Async {
		cfg.Async = true
	}

	o.Config = cfg
	o.Logger = log.NewWithSink(os.Stdout, *zerolog.Ctx(ctx))
	return nil
}

// anchorRoots makes relative roots and the manifest path relative to the
// directory holding the config file.
func anchorRoots(cfg *config.Config) error {
	dir, err := filepath.Abs(filepath.Dir(cfg.Location()))
	if err != nil {
		return err
	}

	for _, p := range []*string{&cfg.SrcRoot, &cfg.DestRoot, &cfg.Manifest} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return nil
}
