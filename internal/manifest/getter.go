// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/cmdbind/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrFetchManifest is returned when a manifest cannot be retrieved.
var ErrFetchManifest = errors.New("failed to fetch manifest")

// source locates a manifest file within something go-getter can download.
type source struct {
	// url is handed to go-getter.
	url string
	// file is the manifest path inside the download. It is empty when url is the manifest itself.
	file string
	// name is the manifest file name, which selects the format.
	name string
}

// sourceFromURL splits url the way go-getter does. A manifest inside a
// repository is written as `<repo>//<path/to/file>`; the repository is
// downloaded and the file read from it, since go-getter only copies
// directories out of a subdir.
func sourceFromURL(url string) (source, error) {
	if url == "" {
		return source{}, fmt.Errorf("%w: empty URL", ErrFetchManifest)
	}

	src, sub := getter.SourceDirSubdir(url)
	if sub != "" {
		if strings.HasSuffix(sub, "/") || !filepath.IsLocal(sub) {
			return source{}, fmt.Errorf("%w: %q does not name a file in the repository", ErrFetchManifest, url)
		}

		return source{url: src, file: sub, name: path.Base(sub)}, nil
	}

	p, _, _ := strings.Cut(url, "?")
	if strings.HasSuffix(p, "/") {
		return source{}, fmt.Errorf("%w: %q does not name a file", ErrFetchManifest, url)
	}

	return source{url: url, name: path.Base(p)}, nil
}

// Fetch downloads the manifest at url using Hashicorp's go-getter syntax and parses it.
// The format follows from the manifest file name. Downloads go to a temporary
// directory that is removed before Fetch returns.
func Fetch(ctx context.Context, url string, opts ...Option) (*Manifest, error) {
	src, err := sourceFromURL(url)
	if err != nil {
		return nil, err
	}

	format, err := FormatFromPath(src.name)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "cmdbind-manifest-*")
	if err != nil {
		return nil, errors.Join(ErrFetchManifest, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetchManifest, err)
	}

	req := &getter.Request{
		Src:     src.url,
		Dst:     filepath.Join(tmpDir, src.name),
		Pwd:     wd,
		GetMode: getter.ModeFile,
		Copy:    true,
	}

	if src.file != "" {
		req.Dst = filepath.Join(tmpDir, "src")
		req.GetMode = getter.ModeDir
	}

	ctxlog.Debug(ctx, "fetching manifest", "src", req.Src, "file", src.file, "format", format)

	client := getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetchManifest, err)
	}

	fs := afero.NewOsFs()
	file := res.Dst

	if src.file != "" {
		fs = afero.NewBasePathFs(fs, res.Dst)
		file = filepath.FromSlash(src.file)
	}

	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return nil, errors.Join(ErrFetchManifest, err)
	}

	return Parse(format, src.name, data, opts...)
}
