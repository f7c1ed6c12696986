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
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// TemplateType is the logical type of every file whose extension is a template extension.
const TemplateType = "tmpl"

// 🗂️ Classifier holds the asset and template extension sets a build is configured with
type Classifier struct {
	assetExts []string
	tmplExts  []string
}

// 🏭 NewClassifier creates a classifier with the given extension sets
func NewClassifier(assetExts, tmplExts []string) *Classifier {
	return &Classifier{
		assetExts: slices.Clone(assetExts),
		tmplExts:  slices.Clone(tmplExts),
	}
}

// SetAssetExtensions replaces the asset extension set.
func (c *Classifier) SetAssetExtensions(exts []string) {
	c.assetExts = slices.Clone(exts)
}

// SetTemplateExtensions replaces the template extension set.
func (c *Classifier) SetTemplateExtensions(exts []string) {
	c.tmplExts = slices.Clone(exts)
}

func (c *Classifier) AssetExtensions() []string {
	return slices.Clone(c.assetExts)
}

func (c *Classifier) TemplateExtensions() []string {
	return slices.Clone(c.tmplExts)
}

// 📦 IsAsset reports whether the reference's extension is in the asset set
func (c *Classifier) IsAsset(ctx context.Context, ref Ref) (bool, error) {
	ext, err := ExtensionOf(ctx, ref)
	if err != nil {
		return false, err
	}
	return slices.Contains(c.assetExts, ext), nil
}

// 🏷️ TypeOf returns the logical type of a file: "tmpl" for template
// extensions, otherwise the extension without its leading dot.
func (c *Classifier) TypeOf(ctx context.Context, f *File) (string, error) {
	ext, err := f.Extension(ctx)
	if err != nil {
		return "", err
	}
	return c.typeOfExtension(ext), nil
}

func (c *Classifier) typeOfExtension(ext string) string {
	bare := strings.TrimPrefix(ext, ".")
	// template sets are accepted both as ".tmpl" and "tmpl"
	if slices.Contains(c.tmplExts, ext) || slices.Contains(c.tmplExts, bare) {
		return TemplateType
	}
	if ext == "" {
		return ""
	}
	return ext[1:]
}

// 📊 GroupByType groups the output paths of files by their type. Within a
// group, paths keep the order of files.
func (c *Classifier) GroupByType(ctx context.Context, files []*File) (map[string][]string, error) {
	groups := make(map[string][]string)
	for _, f := range files {
		t, err := c.TypeOf(ctx, f)
		if err != nil {
			return nil, errors.Errorf("typing file %s: %w", f.Src, err)
		}
		groups[t] = append(groups[t], f.OutputPath)
	}
	return groups, nil
}
