// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package check implements the check command, which validates a manifest against the host.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/cmdbind/cmd/cmdstate"
	"github.com/matt-FFFFFF/cmdbind/internal/config"
	"github.com/matt-FFFFFF/cmdbind/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// ErrNoManifest is returned when no manifest is given.
var ErrNoManifest = errors.New("no manifest given, use --manifest or set CMDBIND_MANIFEST")

// CheckCmd validates a manifest.
var CheckCmd = NewCommand()

// NewCommand returns a new check command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate a manifest against the host",
		Description: `Register the host's commands using the given manifest and unregister them again.
Reports missing command names, unknown or mismatched methods and duplicate names.`,
		Flags: []cli.Flag{
			cmdstate.ManifestFlag(),
			cmdstate.PrefixFlag(),
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	cfg, err := config.FromEnv()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	opts := cmdstate.OptionsFromCommand(cmd, cfg)
	if opts.Manifest == "" {
		return cli.Exit(ErrNoManifest.Error(), 1)
	}

	s, err := cmdstate.Open(ctx, opts, io.Discard)
	if err != nil {
		logger.Debug("manifest rejected", "manifest", opts.Manifest, "error", err)
		return cli.Exit(err.Error(), 1)
	}

	commands, names := len(s.Registry.Entries()), s.Registry.Len()

	if err := s.Close(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	_, _ = fmt.Fprintf(cmd.Root().Writer, "%s: ok, %d commands, %d names\n", opts.Manifest, commands, names)

	return nil
}
