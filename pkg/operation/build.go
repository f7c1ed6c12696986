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

	"github.com/rs/zerolog"
	"github.com/walteh/assetrc/pkg/asset"
	"github.com/walteh/assetrc/pkg/log"
	"github.com/walteh/assetrc/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

// 📦 BuildResult is what a finished build produced
type BuildResult struct {
	Files    []*asset.File
	Ignored  []string
	Manifest *manifest.Manifest
}

// 📦 BuildOperation copies the configured files and writes the manifest
type BuildOperation struct {
	BaseOperation
	result *BuildResult
}

// 🏭 NewBuildOperation creates a new build operation
func NewBuildOperation(opts Options) (*BuildOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	if base.FileSystem == nil {
		return nil, errors.Errorf("file system is required")
	}
	return &BuildOperation{BaseOperation: base}, nil
}

func (op *BuildOperation) Name() string { return "build" }

// Result returns the outcome of the last successful Execute.
func (op *BuildOperation) Result() *BuildResult {
	return op.result
}

// 🏃 Execute copies every configured file, then rebuilds the output index and
// writes the manifest. The first file that fails aborts the build.
func (op *BuildOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	cfg := op.Config

	op.Logger.StartBuild(ctx, log.BuildOperation{
		SrcRoot:  cfg.SrcRoot,
		DestRoot: cfg.DestRoot,
		Files:    len(cfg.Files),
		Async:    cfg.Async,
	})
	defer op.Logger.EndBuild(ctx)

	result := &BuildResult{}

	for _, ref := range cfg.Files {
		f, src, err := op.processFile(ctx, ref)
		if err != nil {
			return errors.Errorf("processing file %s: %w", ref, err)
		}
		if f == nil {
			result.Ignored = append(result.Ignored, src)
			continue
		}
		result.Files = append(result.Files, f)
	}

	// every file has an output path by now
	op.Registry.RebuildOutputIndex()

	groups, err := op.Registry.GroupBySourceType(ctx, result.Files)
	if err != nil {
		return errors.Errorf("grouping files by type: %w", err)
	}

	remaps, err := op.remaps(ctx, result.Files)
	if err != nil {
		return errors.Errorf("remapping asset extensions: %w", err)
	}

	result.Manifest = &manifest.Manifest{
		GeneratedAt: op.Now().UTC(),
		Types:       groups,
		Remaps:      remaps,
	}

	if err := manifest.Write(ctx, op.FileSystem, cfg.Manifest, result.Manifest); err != nil {
		return err
	}

	logger.Debug().
		Int("files", len(result.Files)).
		Int("ignored", len(result.Ignored)).
		Str("manifest", cfg.Manifest).
		Msg("build finished")

	op.result = result
	return nil
}

// 📄 processFile registers and copies a single file. An ignored file comes
// back as nil.
func (op *BuildOperation) processFile(ctx context.Context, ref asset.Ref) (*asset.File, string, error) {
	ref, src, err := op.sourceRef(ref)
	if err != nil {
		return nil, "", err
	}

	if op.shouldIgnore(ctx, src) {
		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:      src,
			Status:    "ignored",
			IsIgnored: true,
		})
		return nil, src, nil
	}

	f, err := op.Registry.CreateAndRegister(asset.Config{Src: ref})
	if err != nil {
		return nil, src, err
	}

	if err := f.Copy(ctx, op.FileSystem, op.Config.SrcRoot, op.Config.DestRoot); err != nil {
		return nil, src, err
	}

	fileType, err := op.Classifier.TypeOf(ctx, f)
	if err != nil {
		return nil, src, err
	}

	isAsset, err := op.Classifier.IsAsset(ctx, f.Src)
	if err != nil {
		return nil, src, err
	}

	remote, err := f.IsRemote()
	if err != nil {
		return nil, src, err
	}

	fop := log.FileOperation{
		Path:     src,
		Output:   f.OutputPath,
		Type:     fileType,
		Status:   "copied",
		IsRemote: remote,
		IsAsset:  isAsset,
	}
	if remote {
		fop.Status = "remote"
	} else if mapped, ok := op.remap(ctx, f, isAsset); ok {
		fop.Status = "remapped → " + mapped
		fop.IsRemapped = true
	}
	op.Logger.LogFileOperation(ctx, fop)

	return f, src, nil
}

// remap returns the remapped output name of an asset file, if its extension is mapped.
func (op *BuildOperation) remap(ctx context.Context, f *asset.File, isAsset bool) (string, bool) {
	if !isAsset || len(op.Config.AssetExtensionMap) == 0 {
		return "", false
	}
	// keep the source shape so an explicit remote flag still applies
	mapped, err := asset.RemapAssetExtension(ctx, f.Src.WithPath(f.OutputPath), op.Config.AssetExtensionMap)
	if err != nil {
		return "", false
	}
	name, _ := asset.ResolvePath(mapped)
	if name == f.OutputPath {
		return "", false
	}
	return name, true
}

// 🔀 remaps collects the output names asset files take after extension remapping
func (op *BuildOperation) remaps(ctx context.Context, files []*asset.File) (map[string]string, error) {
	out := map[string]string{}
	for _, f := range files {
		remote, err := f.IsRemote()
		if err != nil {
			return nil, err
		}
		if remote {
			continue
		}
		isAsset, err := op.Classifier.IsAsset(ctx, f.Src)
		if err != nil {
			return nil, err
		}
		if name, ok := op.remap(ctx, f, isAsset); ok {
			out[f.OutputPath] = name
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
