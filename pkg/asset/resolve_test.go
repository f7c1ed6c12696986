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

package asset_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/assetrc/pkg/asset"
	"gitlab.com/tozd/go/errors"
	"pgregory.net/rapid"
)

func boolPtr(b bool) *bool { return &b }

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name    string
		ref     asset.Ref
		want    string
		wantErr error
	}{
		{
			name: "plain_path",
			ref:  asset.Path("src/app.js"),
			want: "src/app.js",
		},
		{
			name: "descriptor",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "https://cdn.example.com/x", Ext: "js"}),
			want: "https://cdn.example.com/x",
		},
		{
			name:    "descriptor_without_path",
			ref:     asset.FromDescriptor(asset.Descriptor{Ext: ".js"}),
			wantErr: asset.ErrInvalidReference,
		},
		{
			name:    "zero_ref",
			ref:     asset.Ref{},
			wantErr: asset.ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asset.ResolvePath(tt.ref)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error should be %v, got %v", tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "resolved path should match")
		})
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		name string
		ref  asset.Ref
		want bool
	}{
		{name: "https_url", ref: asset.Path("https://cdn.example.com/a.js"), want: true},
		{name: "http_url", ref: asset.Path("http://cdn.example.com/a.js"), want: true},
		{name: "protocol_relative", ref: asset.Path("//cdn.example.com/a.js"), want: false},
		{name: "ftp_url", ref: asset.Path("ftp://cdn.example.com/a.js"), want: false},
		{name: "local_path", ref: asset.Path("/src/a.js"), want: false},
		{name: "url_not_at_start", ref: asset.Path("vendor/https://x.js"), want: false},
		{
			name: "explicit_remote_on_local_looking_path",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "vendor/lib.css", Remote: boolPtr(true)}),
			want: true,
		},
		{
			name: "explicit_local_on_url",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "https://cdn.example.com/a.js", Remote: boolPtr(false)}),
			want: false,
		},
		{
			name: "descriptor_without_flag",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "https://cdn.example.com/a.js"}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asset.IsRemote(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "remote flag should match")
		})
	}
}

func TestIsRemoteExplicitFlagSkipsResolution(t *testing.T) {
	// the flag is authoritative even without a path
	got, err := asset.IsRemote(asset.FromDescriptor(asset.Descriptor{Remote: boolPtr(true)}))
	require.NoError(t, err)
	assert.True(t, got)

	_, err = asset.IsRemote(asset.FromDescriptor(asset.Descriptor{}))
	assert.True(t, errors.Is(err, asset.ErrInvalidReference), "missing path should fail without a flag")
}

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name string
		ref  asset.Ref
		want string
	}{
		{name: "local_file", ref: asset.Path("/src/a/b.css"), want: ".css"},
		{name: "local_multiple_dots", ref: asset.Path("lib/jquery.min.js"), want: ".js"},
		{name: "local_no_dot", ref: asset.Path("Makefile"), want: "Makefile"},
		{name: "local_dotted_directory", ref: asset.Path("dir.v2/file"), want: ".v2/file"},
		{
			name: "local_descriptor_ignores_ext",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "styles/site.less", Ext: ".css"}),
			want: ".less",
		},
		{name: "cdn_with_extension", ref: asset.Path("https://cdn.example.com/lib/jquery.min.js"), want: ".js"},
		{name: "cdn_query_ignored", ref: asset.Path("https://cdn.example.com/style.css?v=3.1"), want: ".css"},
		{name: "cdn_without_extension", ref: asset.Path("https://cdn.example.com/assets/app"), want: "/app"},
		{name: "cdn_root_slash", ref: asset.Path("https://cdn.example.com/"), want: "/"},
		{name: "cdn_bare_host", ref: asset.Path("https://cdn.example.com"), want: "/"},
		{name: "cdn_bare_host_query", ref: asset.Path("https://cdn.example.com?v=2"), want: "/"},
		{name: "remote_no_path_default", ref: asset.FromDescriptor(asset.Descriptor{Path: "?v=2", Remote: boolPtr(true)}), want: asset.DefaultRemoteExtension},
		{name: "explicit_empty_ext_falls_back", ref: asset.FromDescriptor(asset.Descriptor{Path: "https://cdn.example.com/app.css", Ext: ""}), want: ".css"},
		{name: "cdn_dotted_directory", ref: asset.Path("https://cdn.example.com/v1.2/app"), want: ".2/app"},
		{
			name: "cdn_explicit_ext_filename",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "https://cdn.example.com/x", Ext: "bundle.min.js"}),
			want: ".js",
		},
		{
			name: "cdn_explicit_ext_without_dot",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "https://cdn.example.com/x", Ext: "css"}),
			want: "css",
		},
		{
			name: "explicit_remote_local_looking_path",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "vendor/lib.css", Remote: boolPtr(true)}),
			want: ".css",
		},
		{
			name: "explicit_local_url",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "https://cdn.example.com/a", Remote: boolPtr(false)}),
			want: ".com/a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asset.ExtensionOf(testContext(t), tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "extension should match")
		})
	}
}

func TestExtensionOfInvalid(t *testing.T) {
	_, err := asset.ExtensionOf(testContext(t), asset.FromDescriptor(asset.Descriptor{Ext: ".js", Remote: boolPtr(true)}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asset.ErrInvalidReference))
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		ref  asset.Ref
		want bool
	}{
		{name: "png", ref: asset.Path("img/logo.png"), want: true},
		{name: "jpeg", ref: asset.Path("photo.jpeg"), want: true},
		{name: "bmp", ref: asset.Path("old.bmp"), want: true},
		{name: "uppercase_is_case_sensitive", ref: asset.Path("photo.JPG"), want: false},
		{name: "svg_not_listed", ref: asset.Path("icon.svg"), want: false},
		{name: "cdn_gif", ref: asset.Path("https://cdn.example.com/spinner.gif"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asset.IsImage(testContext(t), tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "image flag should match")
		})
	}
}

func TestRemapAssetExtension(t *testing.T) {
	extMap := map[string]string{
		".less":   ".css",
		".coffee": ".js",
	}

	tests := []struct {
		name string
		ref  asset.Ref
		want asset.Ref
	}{
		{
			name: "mapped_local",
			ref:  asset.Path("styles/site.less"),
			want: asset.Path("styles/site.css"),
		},
		{
			name: "mapped_keeps_inner_dots",
			ref:  asset.Path("js/app.min.coffee"),
			want: asset.Path("js/app.min.js"),
		},
		{
			name: "unmapped_local",
			ref:  asset.Path("img/logo.png"),
			want: asset.Path("img/logo.png"),
		},
		{
			name: "mapped_descriptor_keeps_shape",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "styles/site.less", Ext: "x"}),
			want: asset.FromDescriptor(asset.Descriptor{Path: "styles/site.css", Ext: "x"}),
		},
		{
			name: "remote_never_mapped",
			ref:  asset.Path("https://cdn.example.com/site.less"),
			want: asset.Path("https://cdn.example.com/site.less"),
		},
		{
			name: "explicit_remote_never_mapped",
			ref:  asset.FromDescriptor(asset.Descriptor{Path: "site.less", Remote: boolPtr(true)}),
			want: asset.FromDescriptor(asset.Descriptor{Path: "site.less", Remote: boolPtr(true)}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asset.RemapAssetExtension(testContext(t), tt.ref, extMap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "remapped ref should match")
		})
	}
}

func TestLocalExtensionProperty(t *testing.T) {
	ctx := context.Background()
	rapid.Check(t, func(rt *rapid.T) {
		p := rapid.StringMatching(`[a-z/]{0,12}(\.[a-z]{1,4}){0,2}`).Draw(rt, "path")

		remote, err := asset.IsRemote(asset.Path(p))
		require.NoError(rt, err)
		require.False(rt, remote, "generated paths are never urls")

		ext, err := asset.ExtensionOf(ctx, asset.Path(p))
		require.NoError(rt, err)

		if idx := strings.LastIndex(p, "."); idx >= 0 {
			assert.Equal(rt, p[idx:], ext)
		} else {
			assert.Equal(rt, p, ext, "a path without a dot is its own extension")
		}
	})
}

func TestRemoteRemapProperty(t *testing.T) {
	ctx := context.Background()
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[a-z]{1,8}\.[a-z]{1,3}`).Draw(rt, "name")
		scheme := rapid.SampledFrom([]string{"http://", "https://"}).Draw(rt, "scheme")
		ref := asset.Path(scheme + "cdn.example.com/" + name)

		ext, err := asset.ExtensionOf(ctx, ref)
		require.NoError(rt, err)

		got, err := asset.RemapAssetExtension(ctx, ref, map[string]string{ext: ".out"})
		require.NoError(rt, err)
		assert.Equal(rt, ref, got, "remote refs are never remapped")
	})
}

func TestIsRemoteProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := rapid.SampledFrom([]string{
			"https://cdn.example.com/a.js",
			"http://cdn.example.com/a.js",
			"/local/a.js",
			"a.js",
		}).Draw(rt, "path")
		flag := rapid.SampledFrom([]*bool{nil, boolPtr(true), boolPtr(false)}).Draw(rt, "flag")

		got, err := asset.IsRemote(asset.FromDescriptor(asset.Descriptor{Path: p, Remote: flag}))
		require.NoError(rt, err)

		want := strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
		if flag != nil {
			want = *flag
		}
		assert.Equal(rt, want, got)
	})
}
