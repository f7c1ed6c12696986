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

package manifest_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/assetrc/pkg/copier"
	"github.com/walteh/assetrc/pkg/manifest"
)

func TestWriteAndRead(t *testing.T) {
	generated := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	m := &manifest.Manifest{
		GeneratedAt: generated,
		Types: map[string][]string{
			"js":  {"/dist/b.js", "/dist/a.js"},
			"css": {"/dist/site.less"},
		},
		Remaps: map[string]string{"/dist/site.less": "/dist/site.css"},
	}

	for _, path := range []string{"/dist/manifest.json", "/dist/manifest.yaml"} {
		t.Run(path, func(t *testing.T) {
			logger := zerolog.New(zerolog.NewTestWriter(t))
			ctx := logger.WithContext(context.Background())
			fs := copier.NewMemory()

			require.NoError(t, manifest.Write(ctx, fs, path, m))

			got, err := manifest.Read(ctx, fs, path)
			require.NoError(t, err)
			assert.True(t, generated.Equal(got.GeneratedAt))
			assert.Equal(t, m.Types, got.Types, "types should keep group order")
			assert.Equal(t, m.Remaps, got.Remaps)
		})
	}
}

func TestEncodeFormat(t *testing.T) {
	m := &manifest.Manifest{Types: map[string][]string{"js": {"a.js"}}}

	data, err := manifest.Encode("out/manifest.yml", m)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "generated_at:"), "yaml output: %s", data)
	assert.Contains(t, string(data), "- a.js")
	assert.NotContains(t, string(data), "remaps", "empty remaps should be omitted")

	data, err = manifest.Encode("out/manifest.json", m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"generated_at": "0001-01-01T00:00:00Z", "types": {"js": ["a.js"]}}`, string(data))
}

func TestReadMissing(t *testing.T) {
	_, err := manifest.Read(context.Background(), copier.NewMemory(), "/nope.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading manifest")
}
