// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"maps"

	"github.com/matt-FFFFFF/cmdbind/internal/commands"
	"github.com/matt-FFFFFF/cmdbind/internal/manifest"
)

type options struct {
	declared     bool
	declarations []commands.Declaration
	annotations  map[string]commands.Annotation
	bestEffort   bool
}

// Option configures how New discovers and installs commands.
type Option func(o *options)

// WithDeclarations registers an explicit table of commands instead of discovering them on the host.
func WithDeclarations(decls ...commands.Declaration) Option {
	return func(o *options) {
		o.declared = true
		o.declarations = append(o.declarations, decls...)
	}
}

// WithAnnotations supplies the method annotations used for reflective discovery.
// It replaces any annotations the host provides itself.
func WithAnnotations(annotations map[string]commands.Annotation) Option {
	return func(o *options) {
		if o.annotations == nil {
			o.annotations = make(map[string]commands.Annotation, len(annotations))
		}

		maps.Copy(o.annotations, annotations)
	}
}

// WithManifest supplies method annotations loaded from a manifest file.
func WithManifest(m *manifest.Manifest) Option {
	return WithAnnotations(m.Annotations())
}

// WithBestEffort disables rollback on a failed installation.
// Names installed before the failure stay installed and New returns the
// registry alongside the error so the caller can Close it. The registry only
// owns, and Close only removes, the names that were installed.
func WithBestEffort() Option {
	return func(o *options) {
		o.bestEffort = true
	}
}
