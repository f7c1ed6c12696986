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
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultRemoteExtension is used when nothing resembling an extension can be
// read from a CDN URL.
const DefaultRemoteExtension = ".js"

var cdnFileRegex = regexp.MustCompile(`^https?://`)

// imageExtensions is matched case-sensitively: "photo.JPG" is not an image.
var imageExtensions = []string{".jpg", ".png", ".gif", ".bmp", ".jpeg"}

// 📍 ResolvePath returns the path or URL a reference points at
func ResolvePath(ref Ref) (string, error) {
	switch ref.kind {
	case refPath:
		return ref.path, nil
	case refDescriptor:
		if ref.desc.Path == "" {
			return "", errors.Errorf("%w: descriptor has no path: %s", ErrInvalidReference, ref)
		}
		return ref.desc.Path, nil
	default:
		return "", errors.Errorf("%w: neither a path nor a descriptor", ErrInvalidReference)
	}
}

// 🌐 IsRemote reports whether a reference is CDN hosted. An explicit
// descriptor Remote flag wins over the URL pattern.
func IsRemote(ref Ref) (bool, error) {
	if ref.kind == refDescriptor && ref.desc.Remote != nil {
		return *ref.desc.Remote, nil
	}

	p, err := ResolvePath(ref)
	if err != nil {
		return false, err
	}
	return cdnFileRegex.MatchString(p), nil
}

// 🔍 ExtensionOf returns the extension of a reference, dot included.
//
// Local paths yield everything from the last dot; a path without a dot is
// returned whole. Remote references prefer an explicit descriptor Ext, then
// the URL path, then the last path segment, then DefaultRemoteExtension.
// None of the remote fallbacks are errors.
func ExtensionOf(ctx context.Context, ref Ref) (string, error) {
	p, err := ResolvePath(ref)
	if err != nil {
		return "", err
	}

	remote, err := IsRemote(ref)
	if err != nil {
		return "", err
	}

	if !remote {
		return fromLast(p, "."), nil
	}

	if ref.kind == refDescriptor && ref.desc.Ext != "" {
		return fromLast(ref.desc.Ext, "."), nil
	}

	return remoteExtension(ctx, p), nil
}

func remoteExtension(ctx context.Context, rawURL string) string {
	logger := zerolog.Ctx(ctx)

	pathname := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		pathname = u.Path
		// a bare host has the root path
		if pathname == "" && u.Host != "" {
			pathname = "/"
		}
	} else {
		logger.Debug().Err(err).Str("url", rawURL).Msg("unparsable CDN url, using it as a path")
	}

	if ext := fromLast(pathname, "."); ext != pathname {
		return ext
	}

	logger.Warn().Str("url", rawURL).Msg("could not obtain an extension from CDN file, trying to guess")
	if possible := fromLast(pathname, "/"); possible != "" {
		return possible
	}

	logger.Warn().Str("url", rawURL).Str("default", DefaultRemoteExtension).Msg("could not guess an extension from CDN file")
	return DefaultRemoteExtension
}

// fromLast returns s from the last occurrence of sep, or all of s when sep is absent.
func fromLast(s, sep string) string {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s
	}
	return s[idx:]
}

// 🖼️ IsImage reports whether the reference has a known image extension
func IsImage(ctx context.Context, ref Ref) (bool, error) {
	ext, err := ExtensionOf(ctx, ref)
	if err != nil {
		return false, err
	}
	return slices.Contains(imageExtensions, ext), nil
}

// 🔀 RemapAssetExtension swaps the trailing extension of a local reference
// using extMap. Remote references and unmapped extensions come back unchanged.
func RemapAssetExtension(ctx context.Context, ref Ref, extMap map[string]string) (Ref, error) {
	remote, err := IsRemote(ref)
	if err != nil {
		return ref, err
	}
	if remote {
		return ref, nil
	}

	ext, err := ExtensionOf(ctx, ref)
	if err != nil {
		return ref, err
	}

	outExt, ok := extMap[ext]
	if !ok {
		return ref, nil
	}

	p, _ := ResolvePath(ref)
	// a mapped path without a dot is replaced wholesale
	idx := max(strings.LastIndex(p, "."), 0)
	return ref.WithPath(p[:idx] + outExt), nil
}
