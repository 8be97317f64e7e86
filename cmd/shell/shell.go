// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell implements an interactive prompt dispatching lines to the registered commands.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matt-FFFFFF/cmdbind/cmd/cmdstate"
	"github.com/matt-FFFFFF/cmdbind/internal/config"
	"github.com/matt-FFFFFF/cmdbind/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdbind/internal/dispatcher"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

const promptFlag = "prompt"

// ShellCmd starts the interactive shell.
var ShellCmd = NewCommand()

// NewCommand returns a new shell command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Run commands interactively",
		Description: `Register the host's commands and read command lines from the terminal.
Type help to list the commands, quit or exit (or Ctrl+C) to leave.
The commands are unregistered when the shell exits.`,
		Flags: []cli.Flag{
			cmdstate.ManifestFlag(),
			cmdstate.PrefixFlag(),
			&cli.StringFlag{
				Name:     promptFlag,
				Usage:    "Prompt to display. Defaults to $CMDBIND_PROMPT.",
				OnlyOnce: true,
			},
		},
		Action: actionFunc,
	}
}

// Prompter reads lines from the user.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	prompt := cfg.Prompt
	if v := cmd.String(promptFlag); v != "" {
		prompt = v
	}

	out := cmd.Root().Writer

	// Log records go to stderr without colour so they do not garble the prompt.
	ctx = ctxlog.NewForShell(ctx, os.Stderr)

	return cmdstate.Use(ctx, cmdstate.OptionsFromCommand(cmd, cfg), out, func(s *cmdstate.Session) error {
		line := liner.NewLiner()

		defer func() {
			_ = line.Close()
		}()

		line.SetCtrlCAborts(true)
		line.SetCompleter(completer(s.Dispatcher))

		if cfg.History != "" {
			if f, err := os.Open(cfg.History); err == nil {
				_, _ = line.ReadHistory(f)
				_ = f.Close()
			}

			defer writeHistory(ctx, line, cfg.History)
		}

		_, _ = fmt.Fprintln(out, "Type `help` to list commands, `quit` or `exit` to leave.")

		return Run(ctx, line, s.Dispatcher, prompt, out)
	})
}

// Run reads lines from p and dispatches them to d until the user quits,
// the input ends or ctx is cancelled.
func Run(ctx context.Context, p Prompter, d *dispatcher.Dispatcher, prompt string, out io.Writer) error {
	for ctx.Err() == nil {
		input, err := p.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("error reading line: %w", err)
		}

		input = strings.TrimSpace(input)

		switch input {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		p.AppendHistory(input)

		if input == "help" {
			if err := d.WriteHelp(out, false); err != nil {
				return err
			}

			continue
		}

		if err := d.Dispatch(input); err != nil {
			_, _ = fmt.Fprintln(out, err)
		}
	}

	return nil
}

func completer(d *dispatcher.Dispatcher) liner.Completer {
	return func(line string) []string {
		var out []string

		for _, name := range d.Names() {
			if strings.HasPrefix(name, line) {
				out = append(out, name)
			}
		}

		return out
	}
}

func writeHistory(ctx context.Context, line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		ctxlog.Warn(ctx, "cannot write shell history", "path", path, "error", err)
		return
	}

	defer f.Close() //nolint:errcheck

	if _, err := line.WriteHistory(f); err != nil {
		ctxlog.Warn(ctx, "cannot write shell history", "path", path, "error", err)
	}
}
