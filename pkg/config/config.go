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

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/assetrc/pkg/asset"
	"gitlab.com/tozd/go/errors"
)

// DefaultManifestName is written below dest_root when no manifest path is configured.
const DefaultManifestName = "assets.manifest.json"

// 📚 Config is a complete asset build configuration
type Config struct {
	SrcRoot            string            `json:"src_root" yaml:"src_root"`
	DestRoot           string            `json:"dest_root" yaml:"dest_root"`
	AssetExtensions    []string          `json:"asset_extensions,omitempty" yaml:"asset_extensions,omitempty"`
	TemplateExtensions []string          `json:"template_extensions,omitempty" yaml:"template_extensions,omitempty"`
	AssetExtensionMap  map[string]string `json:"asset_extension_map,omitempty" yaml:"asset_extension_map,omitempty"`
	IgnorePatterns     []string          `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
	Manifest           string            `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	Async              bool              `json:"async,omitempty" yaml:"async,omitempty"`
	Files              []asset.Ref       `json:"files" yaml:"files"`

	location string
}

// Location returns the path the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🗂️ Classifier builds the extension classifier for this build
func (cfg *Config) Classifier() *asset.Classifier {
	return asset.NewClassifier(cfg.AssetExtensions, cfg.TemplateExtensions)
}

// 🔍 Validate checks the configuration, cleans its paths and fills defaults.
// File references are not resolved here.
func Validate(ctx context.Context, cfg *Config) error {
	logger := zerolog.Ctx(ctx)

	if cfg.SrcRoot == "" {
		return errors.Errorf("src_root is required")
	}
	if cfg.DestRoot == "" {
		return errors.Errorf("dest_root is required")
	}

	cfg.SrcRoot = filepath.Clean(cfg.SrcRoot)
	cfg.DestRoot = filepath.Clean(cfg.DestRoot)

	for _, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	for from, to := range cfg.AssetExtensionMap {
		if !strings.HasPrefix(from, ".") || !strings.HasPrefix(to, ".") {
			return errors.Errorf("asset_extension_map entry %q -> %q: extensions must start with a dot", from, to)
		}
	}

	if cfg.Manifest == "" {
		cfg.Manifest = filepath.Join(cfg.DestRoot, DefaultManifestName)
	}

	logger.Debug().
		Str("src_root", cfg.SrcRoot).
		Str("dest_root", cfg.DestRoot).
		Int("files", len(cfg.Files)).
		Msg("validated config")

	return nil
}

// 📝 String returns a short description of the build
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s (%d files)", cfg.SrcRoot, cfg.DestRoot, len(cfg.Files))
}
