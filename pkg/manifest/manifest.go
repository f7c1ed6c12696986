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

// Package manifest serializes the output of a build for later build stages.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📜 Manifest lists the output paths of a build grouped by file type
type Manifest struct {
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
	Types       map[string][]string `json:"types" yaml:"types"`
	// Remaps maps an output path to the name it has after extension remapping
	Remaps map[string]string `json:"remaps,omitempty" yaml:"remaps,omitempty"`
}

// Writer is where the manifest ends up.
type Writer interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// Reader is where a manifest is read back from.
type Reader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// 📦 Encode renders m as YAML when path ends in .yaml/.yml, JSON otherwise
func Encode(path string, m *Manifest) ([]byte, error) {
	if isYAML(path) {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, errors.Errorf("encoding YAML manifest: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Errorf("encoding YAML manifest: %w", err)
		}
		return buf.Bytes(), nil
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Errorf("encoding JSON manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode is the inverse of Encode.
func Decode(path string, data []byte) (*Manifest, error) {
	var m Manifest
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.Errorf("parsing YAML manifest: %w", err)
		}
		return &m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Errorf("parsing JSON manifest: %w", err)
	}
	return &m, nil
}

// 💾 Write encodes m and writes it to path
func Write(ctx context.Context, w Writer, path string, m *Manifest) error {
	logger := zerolog.Ctx(ctx)

	data, err := Encode(path, m)
	if err != nil {
		return err
	}

	if err := w.WriteFile(ctx, path, data); err != nil {
		return errors.Errorf("writing manifest: %w", err)
	}

	logger.Debug().Str("path", path).Int("types", len(m.Types)).Msg("wrote manifest")
	return nil
}

// Read reads and decodes the manifest at path.
func Read(ctx context.Context, r Reader, path string) (*Manifest, error) {
	data, err := r.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.Errorf("reading manifest: %w", err)
	}
	return Decode(path, data)
}
