// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/cmdbind/internal/commands"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlManifest = `
commands:
  - method: Hunt
    command: /hunt
    aliases: [/h, /hb]
    help: Show the hunt window
  - method: Debug
    command: /huntdebug
    hidden: true
`

const hclManifest = `
command "Hunt" {
  name    = "${prefix}hunt"
  aliases = ["${prefix}h", "${prefix}hb"]
  help    = "Show the hunt window"
}

command "Debug" {
  name   = format("%shuntdebug", prefix)
  hidden = true
}
`

func wantAnnotations() map[string]commands.Annotation {
	return map[string]commands.Annotation{
		"Hunt": {
			Command:     "/hunt",
			Aliases:     []string{"/h", "/hb"},
			HelpMessage: "Show the hunt window",
		},
		"Debug": {
			Command: "/huntdebug",
			Hidden:  true,
		},
	}
}

func TestParse_FormatsAgree(t *testing.T) {
	y, err := Parse(FormatYAML, "m.yaml", []byte(yamlManifest))
	require.NoError(t, err)

	h, err := Parse(FormatHCL, "m.hcl", []byte(hclManifest))
	require.NoError(t, err)

	assert.Equal(t, wantAnnotations(), y.Annotations())
	assert.Equal(t, wantAnnotations(), h.Annotations())
	assert.Equal(t, "Hunt", y.Commands[0].Method)
	assert.Equal(t, "Hunt", h.Commands[0].Method)
}

func TestParse_HCLPrefix(t *testing.T) {
	m, err := Parse(FormatHCL, "m.hcl", []byte(`
command "Hunt" {
  name    = "${prefix}hunt"
  aliases = [upper("${prefix}h")]
}
`), WithPrefix("!"))
	require.NoError(t, err)

	a := m.Annotations()["Hunt"]
	assert.Equal(t, "!hunt", a.Command)
	assert.Equal(t, []string{"!H"}, a.Aliases)
}

func TestParse_HCLMissingNameIsLeftForRegistration(t *testing.T) {
	m, err := Parse(FormatHCL, "m.hcl", []byte(`
command "Hunt" {
  help = "no name"
}
`))
	require.NoError(t, err)
	assert.Empty(t, m.Annotations()["Hunt"].Command)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		data    string
		wantErr error
	}{
		{
			name:    "bad yaml",
			format:  FormatYAML,
			data:    "commands: [",
			wantErr: ErrParseManifest,
		},
		{
			name:    "bad hcl",
			format:  FormatHCL,
			data:    `command "Hunt" {`,
			wantErr: ErrParseManifest,
		},
		{
			name:    "unknown hcl attribute",
			format:  FormatHCL,
			data:    "command \"Hunt\" {\n  nope = 1\n}\n",
			wantErr: ErrParseManifest,
		},
		{
			name:    "unknown hcl variable",
			format:  FormatHCL,
			data:    "command \"Hunt\" {\n  name = var.x\n}\n",
			wantErr: ErrParseManifest,
		},
		{
			name:    "missing method",
			format:  FormatYAML,
			data:    "commands:\n  - command: /x\n",
			wantErr: ErrMissingMethod,
		},
		{
			name:    "duplicate method yaml",
			format:  FormatYAML,
			data:    "commands:\n  - method: A\n    command: /a\n  - method: A\n    command: /b\n",
			wantErr: ErrDuplicateMethod,
		},
		{
			name:    "duplicate method hcl",
			format:  FormatHCL,
			data:    "command \"A\" {\n  name = \"a\"\n}\ncommand \"A\" {\n  name = \"b\"\n}\n",
			wantErr: ErrDuplicateMethod,
		},
		{
			name:    "unsupported format",
			format:  Format("toml"),
			data:    "",
			wantErr: ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.format, "m", []byte(tt.data))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, m)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "commands.yaml", want: FormatYAML},
		{path: "dir/commands.YML", want: FormatYAML},
		{path: "commands.hcl", want: FormatHCL},
		{path: "git::https://example.com/repo//commands.hcl?ref=v1", want: FormatHCL},
		{path: "commands.json", wantErr: true},
		{path: "commands", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/manifests/commands.yaml", []byte(yamlManifest), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/manifests/commands.hcl", []byte(hclManifest), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	defer stubs.Reset()

	ctx := context.Background()

	y, err := Load(ctx, "/manifests/commands.yaml")
	require.NoError(t, err)
	assert.Equal(t, wantAnnotations(), y.Annotations())

	h, err := LoadURL(ctx, "/manifests/commands.hcl")
	require.NoError(t, err)
	assert.Equal(t, wantAnnotations(), h.Annotations())

	_, err = Load(ctx, "/manifests/missing.yaml")
	require.ErrorIs(t, err, ErrReadManifest)

	_, err = Load(ctx, "/manifests/commands.txt")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "manifests"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifests", "commands.yaml"), []byte(yamlManifest), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifests", "commands.hcl"), []byte(hclManifest), 0o600))

	ctx := context.Background()

	t.Run("single file", func(t *testing.T) {
		m, err := Fetch(ctx, filepath.Join(dir, "manifests", "commands.hcl"))
		require.NoError(t, err)
		assert.Equal(t, wantAnnotations(), m.Annotations())
	})

	t.Run("file inside a directory source", func(t *testing.T) {
		m, err := Fetch(ctx, dir+"//manifests/commands.yaml")
		require.NoError(t, err)
		assert.Equal(t, wantAnnotations(), m.Annotations())
	})

	t.Run("prefix reaches the parser", func(t *testing.T) {
		m, err := Fetch(ctx, filepath.Join(dir, "manifests", "commands.hcl"), WithPrefix("!"))
		require.NoError(t, err)
		assert.Equal(t, "!hunt", m.Annotations()["Hunt"].Command)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Fetch(ctx, filepath.Join(dir, "manifests", "missing.yaml"))
		require.ErrorIs(t, err, ErrFetchManifest)
	})
}

func TestFetch_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		url     string
		wantErr error
	}{
		{url: "", wantErr: ErrFetchManifest},
		{url: "git::http://notexist//commands.yaml", wantErr: ErrFetchManifest},
		{url: "git::https://github.com/org/repo//dir/", wantErr: ErrFetchManifest},
		{url: "git::https://github.com/org/repo//../commands.yaml", wantErr: ErrFetchManifest},
		{url: "https://example.com/commands.toml", wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			m, err := Fetch(ctx, tt.url)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, m)
		})
	}
}

func TestSourceFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want source
	}{
		{
			url:  "git::https://github.com/org/repo//dir/commands.yaml?ref=v1",
			want: source{url: "git::https://github.com/org/repo?ref=v1", file: "dir/commands.yaml", name: "commands.yaml"},
		},
		{
			url:  "git::https://github.com/org/repo//commands.hcl",
			want: source{url: "git::https://github.com/org/repo", file: "commands.hcl", name: "commands.hcl"},
		},
		{
			url:  "https://example.com/manifests/commands.yaml?archive=false",
			want: source{url: "https://example.com/manifests/commands.yaml?archive=false", name: "commands.yaml"},
		},
		{
			url:  "./commands.yml",
			want: source{url: "./commands.yml", name: "commands.yml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := sourceFromURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
