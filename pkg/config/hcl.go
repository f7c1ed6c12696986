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
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/walteh/assetrc/pkg/asset"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// hclFile is a `file "<path>" { ... }` block. A block without attributes is a
// plain path reference.
type hclFile struct {
	Path   string  `hcl:"path,label"`
	Ext    *string `hcl:"ext,optional"`
	Remote *bool   `hcl:"remote,optional"`
}

type hclConfig struct {
	SrcRoot            string            `hcl:"src_root"`
	DestRoot           string            `hcl:"dest_root"`
	AssetExtensions    []string          `hcl:"asset_extensions,optional"`
	TemplateExtensions []string          `hcl:"template_extensions,optional"`
	AssetExtensionMap  map[string]string `hcl:"asset_extension_map,optional"`
	IgnorePatterns     []string          `hcl:"ignore_patterns,optional"`
	Manifest           string            `hcl:"manifest,optional"`
	Async              bool              `hcl:"async,optional"`
	Paths              []string          `hcl:"files,optional"`
	Files              []hclFile         `hcl:"file,block"`
}

// envObject exposes the process environment as the `env` variable
func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vars)
}

// loadHCL loads a configuration from HCL data
func loadHCL(ctx context.Context, data []byte, filename string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	parser := hclparse.NewParser()
	hclFileBody, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFileBody.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		SrcRoot:            hclCfg.SrcRoot,
		DestRoot:           hclCfg.DestRoot,
		AssetExtensions:    hclCfg.AssetExtensions,
		TemplateExtensions: hclCfg.TemplateExtensions,
		AssetExtensionMap:  hclCfg.AssetExtensionMap,
		IgnorePatterns:     hclCfg.IgnorePatterns,
		Manifest:           hclCfg.Manifest,
		Async:              hclCfg.Async,
	}

	for _, p := range hclCfg.Paths {
		cfg.Files = append(cfg.Files, asset.Path(p))
	}

	for _, f := range hclCfg.Files {
		if f.Ext == nil && f.Remote == nil {
			cfg.Files = append(cfg.Files, asset.Path(f.Path))
			continue
		}
		d := asset.Descriptor{Path: f.Path, Remote: f.Remote}
		if f.Ext != nil {
			d.Ext = *f.Ext
		}
		cfg.Files = append(cfg.Files, asset.FromDescriptor(d))
	}

	logger.Debug().Int("files", len(cfg.Files)).Msg("decoded HCL config")

	return cfg, nil
}
