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

package asset

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📋 Copier duplicates file contents from src to dst, creating any missing
// destination directories.
type Copier interface {
	Copy(ctx context.Context, src, dst string) error
}

// 🔧 Config is everything a File can be created from
type Config struct {
	Src        Ref    // Source reference
	OutputPath string // Optional, normally set by Copy
}

// 📄 File is one build asset: where it comes from and, once copied, where it ends up
type File struct {
	Src        Ref
	OutputPath string
}

// 🏭 New creates a file from cfg. Nothing is validated until the source is
// first resolved.
func New(cfg Config) *File {
	return &File{
		Src:        cfg.Src,
		OutputPath: cfg.OutputPath,
	}
}

// Source returns the resolved source path or URL.
func (f *File) Source() (string, error) {
	p, err := ResolvePath(f.Src)
	if err != nil {
		return "", errors.Errorf("%w: %s: %w", ErrMissingPath, f.Src, err)
	}
	return p, nil
}

// IsRemote reports whether the file's source is CDN hosted.
func (f *File) IsRemote() (bool, error) {
	return IsRemote(f.Src)
}

// Extension derives the extension from the source when it is a descriptor,
// otherwise from the output path.
func (f *File) Extension(ctx context.Context) (string, error) {
	if f.Src.IsDescriptor() {
		return ExtensionOf(ctx, f.Src)
	}
	return ExtensionOf(ctx, Path(f.OutputPath))
}

// 📥 Copy resolves the output path of the file below destRoot. Remote files
// keep their URL as output path and are never copied.
func (f *File) Copy(ctx context.Context, copier Copier, srcRoot, destRoot string) error {
	logger := zerolog.Ctx(ctx)

	src, err := f.Source()
	if err != nil {
		return err
	}

	remote, err := IsRemote(f.Src)
	if err != nil {
		return err
	}

	if remote {
		logger.Debug().Str("src", src).Msg("remote file, referencing in place")
		f.OutputPath = src
		return nil
	}

	rel, err := relative(srcRoot, src)
	if err != nil {
		return errors.Errorf("relativizing %s to %s: %w", src, srcRoot, err)
	}
	destPath := filepath.Join(destRoot, rel)

	logger.Debug().Str("src", src).Str("dest", destPath).Msg("copying file")
	if err := copier.Copy(ctx, src, destPath); err != nil {
		return errors.Errorf("copying %s to %s: %w", src, destPath, err)
	}

	f.OutputPath = destPath
	return nil
}

// relative resolves both paths against the working directory when either
// is relative, then returns target relative to base.
func relative(base, target string) (string, error) {
	if !filepath.IsAbs(base) || !filepath.IsAbs(target) {
		var err error
		if base, err = filepath.Abs(base); err != nil {
			return "", err
		}
		if target, err = filepath.Abs(target); err != nil {
			return "", err
		}
	}
	return filepath.Rel(base, target)
}
