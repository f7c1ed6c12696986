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

package operation

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/assetrc/pkg/asset"
	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/log"
	"github.com/walteh/assetrc/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one unit of work run by an OperationRunner
type Operation interface {
	// Name identifies the operation in logs and errors
	Name() string
	// Execute runs the operation to completion
	Execute(ctx context.Context) error
}

// 💾 FileSystem copies build files and writes the manifest
type FileSystem interface {
	asset.Copier
	manifest.Writer
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config is the build configuration
	Config *config.Config
	// FileSystem performs the physical copies; unused by classify
	FileSystem FileSystem
	// Registry receives the build's files; a fresh one is created when nil
	Registry *asset.Registry
	// Logger reports each file
	Logger *log.Logger
	// Now stamps the manifest; defaults to time.Now
	Now func() time.Time
}

// 🏗️ BaseOperation holds what every operation shares
type BaseOperation struct {
	Config     *config.Config
	FileSystem FileSystem
	Registry   *asset.Registry
	Classifier *asset.Classifier
	Logger     *log.Logger
	Now        func() time.Time
}

// 🏭 NewBaseOperation checks opts and fills defaults
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}
	if opts.Logger == nil {
		return BaseOperation{}, errors.Errorf("logger is required")
	}

	reg := opts.Registry
	if reg == nil {
		reg = asset.NewRegistry(opts.Config.Classifier())
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return BaseOperation{
		Config:     opts.Config,
		FileSystem: opts.FileSystem,
		Registry:   reg,
		Classifier: reg.Classifier(),
		Logger:     opts.Logger,
		Now:        now,
	}, nil
}

// 📍 sourceRef anchors relative local references at the source root. Remote
// references are returned untouched.
func (op *BaseOperation) sourceRef(ref asset.Ref) (asset.Ref, string, error) {
	p, err := asset.ResolvePath(ref)
	if err != nil {
		return ref, "", err
	}

	remote, err := asset.IsRemote(ref)
	if err != nil {
		return ref, "", err
	}

	if remote || filepath.IsAbs(p) {
		return ref, p, nil
	}

	p = filepath.Join(op.Config.SrcRoot, p)
	return ref.WithPath(p), p, nil
}

// 🔍 shouldIgnore checks a source against the ignore patterns, both as
// written and relative to the source root
func (op *BaseOperation) shouldIgnore(ctx context.Context, src string) bool {
	if len(op.Config.IgnorePatterns) == 0 {
		return false
	}

	logger := zerolog.Ctx(ctx)

	candidates := []string{filepath.ToSlash(src)}
	if rel, err := filepath.Rel(op.Config.SrcRoot, src); err == nil {
		candidates = append(candidates, filepath.ToSlash(rel))
	}

	for _, pattern := range op.Config.IgnorePatterns {
		for _, candidate := range candidates {
			matched, err := doublestar.Match(pattern, candidate)
			if err != nil {
				logger.Debug().Str("pattern", pattern).Str("path", candidate).Err(err).Msg("error matching pattern")
				continue
			}
			if matched {
				logger.Debug().Str("file", src).Str("pattern", pattern).Msg("file ignored by pattern")
				return true
			}
		}
	}

	return false
}
