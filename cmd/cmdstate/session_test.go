// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdstate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/cmdbind/internal/commandregistry"
	"github.com/matt-FFFFFF/cmdbind/internal/dispatcher"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAction = errors.New("action failed")

func TestUseClosesSession(t *testing.T) {
	out := &bytes.Buffer{}

	var d *dispatcher.Dispatcher

	err := Use(context.Background(), Options{}, out, func(s *Session) error {
		d = s.Dispatcher
		assert.NotEmpty(t, d.Names())

		return s.Dispatcher.Dispatch("/echo hi")
	})
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
	assert.Empty(t, d.Names())
}

func TestUseReturnsCloseErrors(t *testing.T) {
	stubs := gostub.Stub(&DispatcherFactory, func() *dispatcher.Dispatcher {
		return dispatcher.New(dispatcher.WithStrictRemove())
	})
	defer stubs.Reset()

	err := Use(context.Background(), Options{}, &bytes.Buffer{}, func(s *Session) error {
		require.NoError(t, s.Dispatcher.RemoveHandler("/echo"))

		return errAction
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errAction)
	assert.ErrorIs(t, err, commandregistry.ErrRemove)
	assert.ErrorIs(t, err, dispatcher.ErrUnknownCommand)
	assert.Contains(t, err.Error(), `"/echo"`)
}

func TestOpenWithManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`command "Echo" {
  name = "${prefix}say"
}
`), 0o600))

	s, err := Open(context.Background(), Options{Manifest: path, Prefix: "!"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"!say"}, s.Dispatcher.Names())
	require.NoError(t, s.Close())
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(context.Background(), Options{Manifest: "commands.toml"}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrLoadManifest)

	path := filepath.Join(t.TempDir(), "commands.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commands:\n  - method: Fly\n    command: /fly\n"), 0o600))

	_, err = Open(context.Background(), Options{Manifest: path}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrRegister)
	require.ErrorIs(t, err, commandregistry.ErrDiscovery)
}
