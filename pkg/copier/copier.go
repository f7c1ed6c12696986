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

// Package copier provides the filesystem copy capability used to materialize
// local build files.
package copier

import (
	"context"
	"io"
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📋 Billy copies files within a billy filesystem
type Billy struct {
	fs  billy.Filesystem
	abs bool // resolve relative paths against the working directory
}

// 🏭 New wraps an existing filesystem. Paths are passed through unchanged.
func New(fs billy.Filesystem) *Billy {
	return &Billy{fs: fs}
}

// NewOS copies on the host filesystem. Relative paths are resolved against
// the working directory.
func NewOS() *Billy {
	return &Billy{fs: osfs.New("/"), abs: true}
}

// NewMemory copies within an in-memory filesystem.
func NewMemory() *Billy {
	return New(memfs.New())
}

func (c *Billy) Filesystem() billy.Filesystem {
	return c.fs
}

func (c *Billy) path(p string) (string, error) {
	if !c.abs || filepath.IsAbs(p) {
		return p, nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", p, err)
	}
	return abs, nil
}

// 📥 Copy duplicates src at dst, creating parent directories as needed. The
// destination is written to a temp file first and renamed into place.
func (c *Billy) Copy(ctx context.Context, src, dst string) error {
	logger := zerolog.Ctx(ctx)

	src, err := c.path(src)
	if err != nil {
		return err
	}
	dst, err = c.path(dst)
	if err != nil {
		return err
	}

	info, err := c.fs.Stat(src)
	if err != nil {
		return errors.Errorf("stat source file: %w", err)
	}
	if info.IsDir() {
		return errors.Errorf("source %s is a directory", src)
	}

	in, err := c.fs.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	if err := c.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tmp := dst + ".tmp"
	out, err := c.fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = c.fs.Remove(tmp)
		return errors.Errorf("copying file content: %w", err)
	}

	if err := c.fs.Rename(tmp, dst); err != nil {
		_ = c.fs.Remove(tmp)
		return errors.Errorf("renaming temp file: %w", err)
	}

	logger.Debug().Str("src", src).Str("dst", dst).Int64("bytes", n).Msg("copied file")
	return nil
}

// WriteFile writes data to path, creating parent directories as needed.
func (c *Billy) WriteFile(ctx context.Context, path string, data []byte) error {
	path, err := c.path(path)
	if err != nil {
		return err
	}
	if err := c.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}
	if err := util.WriteFile(c.fs, path, data, 0644); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the whole file at path.
func (c *Billy) ReadFile(ctx context.Context, path string) ([]byte, error) {
	path, err := c.path(path)
	if err != nil {
		return nil, err
	}
	data, err := util.ReadFile(c.fs, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
