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

	"gitlab.com/tozd/go/errors"
)

// 📚 Registry tracks the files of one build, keyed by source and, after
// RebuildOutputIndex, by output path.
//
// The output index is derived and is not kept in sync with registrations:
// it reflects the sources as of the last rebuild, and Clear leaves it alone.
// A Registry is not safe for concurrent use.
type Registry struct {
	classifier   *Classifier
	bySource     map[string]*File
	order        []string
	byOutputPath map[string]*File
}

// 🏭 NewRegistry creates an empty registry that types files with classifier
func NewRegistry(classifier *Classifier) *Registry {
	if classifier == nil {
		classifier = NewClassifier(nil, nil)
	}
	return &Registry{
		classifier:   classifier,
		bySource:     make(map[string]*File),
		byOutputPath: make(map[string]*File),
	}
}

func (r *Registry) Classifier() *Classifier {
	return r.classifier
}

// 📝 Register stores f under its resolved source, replacing any file already
// registered under that key
func (r *Registry) Register(f *File) error {
	key, err := f.Source()
	if err != nil {
		return errors.Errorf("registering file: %w", err)
	}
	if _, ok := r.bySource[key]; !ok {
		r.order = append(r.order, key)
	}
	r.bySource[key] = f
	return nil
}

// CreateAndRegister creates a file from cfg and registers it.
func (r *Registry) CreateAndRegister(cfg Config) (*File, error) {
	f := New(cfg)
	if err := r.Register(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Clear forgets every registered source. The output index is untouched.
func (r *Registry) Clear() {
	r.bySource = make(map[string]*File)
	r.order = nil
}

// Dispose empties both the source map and the output index.
func (r *Registry) Dispose() {
	r.Clear()
	r.byOutputPath = make(map[string]*File)
}

func (r *Registry) LookupBySource(key string) (*File, bool) {
	f, ok := r.bySource[key]
	return f, ok
}

func (r *Registry) LookupByOutputPath(key string) (*File, bool) {
	f, ok := r.byOutputPath[key]
	return f, ok
}

// 🔄 RebuildOutputIndex discards the output index and recomputes it from
// the registered files. Files without an output path all land under "".
func (r *Registry) RebuildOutputIndex() {
	r.byOutputPath = make(map[string]*File, len(r.bySource))
	for _, key := range r.order {
		f := r.bySource[key]
		r.byOutputPath[f.OutputPath] = f
	}
}

func (r *Registry) Len() int {
	return len(r.bySource)
}

// OutputIndexLen returns the size of the output index as of the last rebuild.
func (r *Registry) OutputIndexLen() int {
	return len(r.byOutputPath)
}

// Files returns the registered files in order of first registration.
func (r *Registry) Files() []*File {
	files := make([]*File, 0, len(r.order))
	for _, key := range r.order {
		files = append(files, r.bySource[key])
	}
	return slices.Clip(files)
}

// GroupBySourceType groups the output paths of files by type.
func (r *Registry) GroupBySourceType(ctx context.Context, files []*File) (map[string][]string, error) {
	return r.classifier.GroupByType(ctx, files)
}
