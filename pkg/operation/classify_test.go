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

package operation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/assetrc/pkg/asset"
	"github.com/walteh/assetrc/pkg/operation"
)

func TestClassifyOperation(t *testing.T) {
	ctx, cfg, fs, logger, _ := createTestEnv(t)

	op, err := operation.NewClassifyOperation(operation.Options{Config: cfg, Logger: logger})
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	got := map[string]operation.Classification{}
	for _, c := range op.Result() {
		got[c.Source] = c
	}
	require.Len(t, got, len(cfg.Files))

	tests := []struct {
		source string
		ext    string
		typ    string
		remote bool
		asset  bool
		image  bool
		ignore bool
	}{
		{source: "/web/js/app.js", ext: ".js", typ: "js", asset: true},
		{source: "/web/js/app.js.map", ext: ".map", typ: "map", ignore: true},
		{source: "/web/css/site.less", ext: ".less", typ: "less", asset: true},
		{source: "/web/tmpl/row.tmpl", ext: ".tmpl", typ: asset.TemplateType},
		{source: "/web/img/logo.png", ext: ".png", typ: "png", image: true},
		{source: "https://cdn.example.com/jq.js", ext: ".js", typ: "js", remote: true, asset: true},
		{source: "https://cdn.example.com/x", ext: ".css", typ: "css", remote: true, asset: true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			c, ok := got[tt.source]
			require.True(t, ok, "missing classification")
			assert.Equal(t, tt.ext, c.Extension)
			assert.Equal(t, tt.typ, c.Type)
			assert.Equal(t, tt.remote, c.Remote, "remote")
			assert.Equal(t, tt.asset, c.Asset, "asset")
			assert.Equal(t, tt.image, c.Image, "image")
			assert.Equal(t, tt.ignore, c.Ignored, "ignored")
		})
	}

	// classify never writes
	_, err = fs.Filesystem().Stat("/dist")
	assert.Error(t, err)
}

func TestClassifyOperationKeepsDescriptorShape(t *testing.T) {
	ctx, cfg, _, logger, _ := createTestEnv(t)
	cfg.Files = []asset.Ref{
		asset.FromDescriptor(asset.Descriptor{Path: "js/app.js", Remote: boolPtr(false)}),
	}

	op, err := operation.NewClassifyOperation(operation.Options{Config: cfg, Logger: logger})
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	require.Len(t, op.Result(), 1)
	c := op.Result()[0]
	assert.True(t, c.Ref.IsDescriptor())
	d, ok := c.Ref.Descriptor()
	require.True(t, ok)
	assert.Equal(t, "/web/js/app.js", d.Path)
	assert.Equal(t, ".js", c.Extension)
}

func TestClassifyOperationInvalidReference(t *testing.T) {
	ctx, cfg, _, logger, _ := createTestEnv(t)
	cfg.Files = []asset.Ref{{}}

	op, err := operation.NewClassifyOperation(operation.Options{Config: cfg, Logger: logger})
	require.NoError(t, err)

	err = op.Execute(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, asset.ErrInvalidReference)
	assert.Contains(t, err.Error(), "classifying file <nil>")
}
