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
	"gitlab.com/tozd/go/errors"
)

// 🏷️ Classification describes one configured file without touching the disk
type Classification struct {
	Ref       asset.Ref
	Source    string
	Extension string
	Type      string
	Remote    bool
	Asset     bool
	Image     bool
	Ignored   bool
}

// 🔍 ClassifyOperation reports how every configured file would be treated
type ClassifyOperation struct {
	BaseOperation
	result []Classification
}

// 🏭 NewClassifyOperation creates a new classify operation
func NewClassifyOperation(opts Options) (*ClassifyOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &ClassifyOperation{BaseOperation: base}, nil
}

func (op *ClassifyOperation) Name() string { return "classify" }

func (op *ClassifyOperation) Result() []Classification {
	return op.result
}

// 🏃 Execute classifies every configured file
func (op *ClassifyOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(op.Config.Files)).Msg("classifying files")

	result := make([]Classification, 0, len(op.Config.Files))
	for _, ref := range op.Config.Files {
		c, err := op.classify(ctx, ref)
		if err != nil {
			return errors.Errorf("classifying file %s: %w", ref, err)
		}
		result = append(result, c)
	}

	op.result = result
	return nil
}

func (op *ClassifyOperation) classify(ctx context.Context, ref asset.Ref) (Classification, error) {
	ref, src, err := op.sourceRef(ref)
	if err != nil {
		return Classification{}, err
	}

	// nothing is copied, so the source stands in for the output path
	f := asset.New(asset.Config{Src: ref, OutputPath: src})

	c := Classification{
		Ref:     ref,
		Source:  src,
		Ignored: op.shouldIgnore(ctx, src),
	}

	if c.Extension, err = f.Extension(ctx); err != nil {
		return c, err
	}
	if c.Type, err = op.Classifier.TypeOf(ctx, f); err != nil {
		return c, err
	}
	if c.Remote, err = f.IsRemote(); err != nil {
		return c, err
	}
	if c.Asset, err = op.Classifier.IsAsset(ctx, ref); err != nil {
		return c, err
	}
	if c.Image, err = asset.IsImage(ctx, ref); err != nil {
		return c, err
	}

	return c, nil
}
