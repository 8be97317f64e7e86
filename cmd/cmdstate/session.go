// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate wires the pieces every subcommand needs: the environment
// configuration, the manifest, the demo host, a dispatcher and the registry
// binding them together.
package cmdstate

import (
	"context"
	"errors"
	"io"

	"github.com/matt-FFFFFF/cmdbind/internal/commandregistry"
	"github.com/matt-FFFFFF/cmdbind/internal/config"
	"github.com/matt-FFFFFF/cmdbind/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdbind/internal/demohost"
	"github.com/matt-FFFFFF/cmdbind/internal/dispatcher"
	"github.com/matt-FFFFFF/cmdbind/internal/manifest"
	"github.com/urfave/cli/v3"
)

const (
	// ManifestFlagName is the name of the manifest flag.
	ManifestFlagName = "manifest"
	// PrefixFlagName is the name of the HCL prefix flag.
	PrefixFlagName = "prefix"
)

var (
	// ErrLoadManifest is returned when the manifest cannot be loaded.
	ErrLoadManifest = errors.New("failed to load manifest")
	// ErrRegister is returned when the host's commands cannot be registered.
	ErrRegister = errors.New("failed to register commands")
)

// ManifestFlag selects a manifest with method annotations for the demo host.
func ManifestFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    ManifestFlagName,
		Aliases: []string{"m"},
		Usage: "URL of a YAML or HCL manifest annotating the host's methods. " +
			"Supports Hashicorp's go-getter syntax. Defaults to $CMDBIND_MANIFEST, " +
			"or the host's built-in annotations when neither is set.",
		TakesFile: true,
		OnlyOnce:  true,
	}
}

// PrefixFlag sets the prefix variable available to HCL manifests.
func PrefixFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     PrefixFlagName,
		Usage:    "Value of the `prefix` variable in HCL manifests. Defaults to $CMDBIND_PREFIX.",
		OnlyOnce: true,
	}
}

// Options selects how a session is built.
type Options struct {
	Manifest string
	Prefix   string
}

// OptionsFromCommand merges the command flags over the environment configuration.
func OptionsFromCommand(cmd *cli.Command, cfg config.Config) Options {
	o := Options{
		Manifest: cfg.Manifest,
		Prefix:   cfg.Prefix,
	}

	if v := cmd.String(ManifestFlagName); v != "" {
		o.Manifest = v
	}

	if v := cmd.String(PrefixFlagName); v != "" {
		o.Prefix = v
	}

	return o
}

// Session is a demo host whose commands are installed in a dispatcher.
type Session struct {
	Host       *demohost.Host
	Dispatcher *dispatcher.Dispatcher
	Registry   *commandregistry.Registry
}

// DispatcherFactory returns the dispatcher a new session installs its commands into.
var DispatcherFactory = func() *dispatcher.Dispatcher {
	return dispatcher.New()
}

// Open builds a session. The host writes its replies to out.
// Callers must Close the session.
func Open(ctx context.Context, o Options, out io.Writer) (*Session, error) {
	host := demohost.New(out)
	d := DispatcherFactory()

	var regOpts []commandregistry.Option

	if o.Manifest != "" {
		var mOpts []manifest.Option
		if o.Prefix != "" {
			mOpts = append(mOpts, manifest.WithPrefix(o.Prefix))
		}

		m, err := manifest.LoadURL(ctx, o.Manifest, mOpts...)
		if err != nil {
			return nil, errors.Join(ErrLoadManifest, err)
		}

		ctxlog.Debug(ctx, "manifest loaded", "url", o.Manifest, "commands", len(m.Commands))

		regOpts = append(regOpts, commandregistry.WithManifest(m))
	}

	reg, err := commandregistry.New(ctx, host, d, regOpts...)
	if err != nil {
		return nil, errors.Join(ErrRegister, err)
	}

	return &Session{
		Host:       host,
		Dispatcher: d,
		Registry:   reg,
	}, nil
}

// Close uninstalls the session's commands.
func (s *Session) Close() error {
	return s.Registry.Close()
}

// Use opens a session, calls fn with it and closes it again.
// Errors from fn and from closing the session are returned together.
func Use(ctx context.Context, o Options, out io.Writer, fn func(s *Session) error) (err error) {
	s, err := Open(ctx, o, out)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, s.Close())
	}()

	return fn(s)
}
