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

import "gitlab.com/tozd/go/errors"

var (
	// ErrInvalidReference is returned when a file reference cannot yield a path string.
	ErrInvalidReference = errors.Base("invalid file reference")

	// ErrMissingPath is returned when a File's source has no usable path.
	ErrMissingPath = errors.Base("file has no source path")
)
