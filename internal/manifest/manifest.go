// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/cmdbind/internal/commands"
	"github.com/matt-FFFFFF/cmdbind/internal/ctxlog"
	"github.com/spf13/afero"
)

// Format is a manifest file format.
type Format string

const (
	// FormatYAML is the YAML manifest format.
	FormatYAML Format = "yaml"
	// FormatHCL is the HCL manifest format.
	FormatHCL Format = "hcl"

	// DefaultPrefix is the value of the HCL prefix variable when none is set.
	DefaultPrefix = "/"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
	// ErrReadManifest is returned when the manifest file cannot be read.
	ErrReadManifest = errors.New("failed to read manifest")
	// ErrParseManifest is returned when the manifest cannot be decoded.
	ErrParseManifest = errors.New("failed to parse manifest")
	// ErrMissingMethod is returned when a manifest command does not name a method.
	ErrMissingMethod = errors.New("manifest command does not name a method")
	// ErrDuplicateMethod is returned when a method is annotated twice in one manifest.
	ErrDuplicateMethod = errors.New("method annotated more than once")
)

// Command annotates a single host method.
type Command struct {
	Method              string `yaml:"method"`
	commands.Annotation `yaml:",inline"`
}

// Manifest is the decoded content of a manifest file.
type Manifest struct {
	Commands []Command `yaml:"commands"`
}

type parseOptions struct {
	prefix string
}

// Option configures manifest parsing.
type Option func(o *parseOptions)

// WithPrefix sets the HCL prefix variable.
func WithPrefix(prefix string) Option {
	return func(o *parseOptions) {
		o.prefix = prefix
	}
}

// FormatFromPath returns the format implied by the extension of path.
// A go-getter query string is ignored.
func FormatFromPath(path string) (Format, error) {
	path, _, _ = strings.Cut(path, "?")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads and parses the manifest at path from FsFactory.
func Load(ctx context.Context, path string, opts ...Option) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "loading manifest", "path", path, "format", format)

	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadManifest, err)
	}

	return Parse(format, path, data, opts...)
}

// LoadURL loads the manifest at url. Paths that exist on FsFactory are read
// directly, anything else is fetched using go-getter syntax.
func LoadURL(ctx context.Context, url string, opts ...Option) (*Manifest, error) {
	if ok, _ := afero.Exists(FsFactory(), url); ok {
		return Load(ctx, url, opts...)
	}

	return Fetch(ctx, url, opts...)
}

// Parse decodes data in the given format. filename is only used in diagnostics.
func Parse(format Format, filename string, data []byte, opts ...Option) (*Manifest, error) {
	o := &parseOptions{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(o)
	}

	var (
		m   *Manifest
		err error
	)

	switch format {
	case FormatYAML:
		m, err = parseYAML(data)
	case FormatHCL:
		m, err = parseHCL(filename, data, o)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, err
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	return m, nil
}

func parseYAML(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, errors.Join(ErrParseManifest, err)
	}

	return m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]struct{}, len(m.Commands))

	for i, c := range m.Commands {
		if c.Method == "" {
			return fmt.Errorf("%w: command %d (%q)", ErrMissingMethod, i, c.Command)
		}

		if _, ok := seen[c.Method]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateMethod, c.Method)
		}

		seen[c.Method] = struct{}{}
	}

	return nil
}

// Annotations returns the annotations keyed by method name.
func (m *Manifest) Annotations() map[string]commands.Annotation {
	out := make(map[string]commands.Annotation, len(m.Commands))
	for _, c := range m.Commands {
		out[c.Method] = c.Annotation
	}

	return out
}
