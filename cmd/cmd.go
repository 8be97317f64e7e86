// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/cmdbind"
	"github.com/matt-FFFFFF/cmdbind/cmd/check"
	"github.com/matt-FFFFFF/cmdbind/cmd/list"
	"github.com/matt-FFFFFF/cmdbind/cmd/shell"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = NewRootCommand()

// NewRootCommand returns a new root command with fresh subcommands.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			shell.NewCommand(),
			list.NewCommand(),
			check.NewCommand(),
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "cmdbind",
		Version:   cmdbind.Version + " (" + cmdbind.Commit + ")",
		Description: `cmdbind discovers the command handlers a host exposes, registers every
command name and alias with a dispatcher and removes them again when the host
is closed. Handlers can be annotated in code, or by a YAML or HCL manifest.`,
		Usage:     "cmdbind shell --manifest commands.yaml",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}
