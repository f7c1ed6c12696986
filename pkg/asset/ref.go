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
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🏷️ refKind tags which shape a Ref was built from
type refKind int

const (
	refNone refKind = iota
	refPath
	refDescriptor
)

// 📎 Descriptor is the object form of a file reference
type Descriptor struct {
	Path   string `json:"path" yaml:"path"`                         // Local path or URL
	Ext    string `json:"ext,omitempty" yaml:"ext,omitempty"`       // Optional explicit extension, "" when absent
	Remote *bool  `json:"remote,omitempty" yaml:"remote,omitempty"` // Optional explicit CDN flag
}

// descriptorFields are the only keys a descriptor mapping may carry
var descriptorFields = []string{"path", "ext", "remote"}

// 🔗 Ref is a reference to a file: either a plain path/URL or a Descriptor.
// The zero Ref is neither and never resolves.
type Ref struct {
	kind refKind
	path string
	desc Descriptor
}

// Path returns a plain string reference.
func Path(p string) Ref {
	return Ref{kind: refPath, path: p}
}

// FromDescriptor returns an object-form reference.
func FromDescriptor(d Descriptor) Ref {
	return Ref{kind: refDescriptor, desc: d}
}

// IsDescriptor reports whether the ref was built from a Descriptor.
func (r Ref) IsDescriptor() bool {
	return r.kind == refDescriptor
}

// Descriptor returns the object form, if any.
func (r Ref) Descriptor() (Descriptor, bool) {
	return r.desc, r.kind == refDescriptor
}

// IsZero reports whether the ref carries no shape at all.
func (r Ref) IsZero() bool {
	return r.kind == refNone
}

func (r Ref) String() string {
	switch r.kind {
	case refPath:
		return r.path
	case refDescriptor:
		s := fmt.Sprintf("{path: %q", r.desc.Path)
		if r.desc.Ext != "" {
			s += fmt.Sprintf(", ext: %q", r.desc.Ext)
		}
		if r.desc.Remote != nil {
			s += fmt.Sprintf(", remote: %t", *r.desc.Remote)
		}
		return s + "}"
	default:
		return "<nil>"
	}
}

// WithPath returns a copy of the ref pointing at p, keeping its shape.
func (r Ref) WithPath(p string) Ref {
	switch r.kind {
	case refDescriptor:
		d := r.desc
		d.Path = p
		return FromDescriptor(d)
	default:
		return Path(p)
	}
}

// 📥 UnmarshalYAML accepts either a scalar path or a {path, ext, remote} mapping
func (r *Ref) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return errors.Errorf("decoding file path: %w", err)
		}
		*r = Path(s)
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if !slices.Contains(descriptorFields, key.Value) {
				return errors.Errorf("line %d: unknown file descriptor field %q", key.Line, key.Value)
			}
		}
		var d Descriptor
		if err := node.Decode(&d); err != nil {
			return errors.Errorf("decoding file descriptor: %w", err)
		}
		*r = FromDescriptor(d)
		return nil
	default:
		return errors.Errorf("line %d: file reference must be a string or a mapping", node.Line)
	}
}

// 📤 MarshalYAML writes the ref back in the shape it was read in
func (r Ref) MarshalYAML() (interface{}, error) {
	switch r.kind {
	case refPath:
		return r.path, nil
	case refDescriptor:
		return r.desc, nil
	default:
		return nil, nil
	}
}

// 📥 UnmarshalJSON accepts either a string or an object
func (r *Ref) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ref{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Path(s)
		return nil
	}

	var d Descriptor
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return errors.Errorf("file reference must be a string or a {path, ext, remote} object: %w", err)
	}
	*r = FromDescriptor(d)
	return nil
}

// 📤 MarshalJSON writes the ref back in the shape it was read in
func (r Ref) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case refPath:
		return json.Marshal(r.path)
	case refDescriptor:
		return json.Marshal(r.desc)
	default:
		return []byte("null"), nil
	}
}
