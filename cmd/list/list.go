// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list implements the list command, which prints the help listing of the registered commands.
package list

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/cmdbind/cmd/cmdstate"
	"github.com/matt-FFFFFF/cmdbind/internal/config"
	"github.com/urfave/cli/v3"
)

const allFlag = "all"

// ErrWriteListing is returned when the listing cannot be written.
var ErrWriteListing = errors.New("failed to write command listing")

// ListCmd prints the registered commands.
var ListCmd = NewCommand()

// NewCommand returns a new list command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the commands registered for the host",
		Description: `Register the host's commands in a fresh dispatcher, print the help listing
and unregister them again. Hidden commands are only shown with --all.`,
		Flags: []cli.Flag{
			cmdstate.ManifestFlag(),
			cmdstate.PrefixFlag(),
			&cli.BoolFlag{
				Name:        allFlag,
				Aliases:     []string{"a"},
				Usage:       "Include commands hidden from help",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	out := cmd.Root().Writer

	err = cmdstate.Use(ctx, cmdstate.OptionsFromCommand(cmd, cfg), out, func(s *cmdstate.Session) error {
		if err := s.Dispatcher.WriteHelp(out, cmd.Bool(allFlag)); err != nil {
			return errors.Join(ErrWriteListing, err)
		}

		return nil
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
