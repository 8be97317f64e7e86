// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package demohost is a small host whose methods are exposed as commands.
// It keeps a list of hunt marks and a window toggle, and writes its replies to an io.Writer.
package demohost

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/cmdbind/internal/commands"
)

// Host is the demo command host.
type Host struct {
	out        io.Writer
	marks      []string
	windowOpen bool
}

// New returns a Host writing to out.
func New(out io.Writer) *Host {
	return &Host{out: out}
}

// CommandAnnotations implements commands.Annotated.
func (h *Host) CommandAnnotations() map[string]commands.Annotation {
	return map[string]commands.Annotation{
		"Hunt": {
			Command:     "/hunt",
			Aliases:     []string{"/h"},
			HelpMessage: "Toggle the hunt window, or add a mark with /hunt <target>",
		},
		"Marks": {
			Command:     "/marks",
			HelpMessage: "List the hunt marks, /marks clear removes them",
		},
		"Echo": {
			Command:     "/echo",
			HelpMessage: "Print the arguments back",
		},
		"Debug": {
			Command: "/huntdebug",
			Hidden:  true,
		},
	}
}

// Hunt toggles the window when called without arguments, otherwise it records a mark.
func (h *Host) Hunt(_, args string) {
	if args == "" {
		h.windowOpen = !h.windowOpen
		h.printf("hunt window %s\n", map[bool]string{true: "opened", false: "closed"}[h.windowOpen])

		return
	}

	if slices.Contains(h.marks, args) {
		h.printf("already tracking %s\n", args)
		return
	}

	h.marks = append(h.marks, args)
	h.printf("tracking %s\n", args)
}

// Marks lists the recorded marks, or clears them.
func (h *Host) Marks(_, args string) {
	if strings.EqualFold(args, "clear") {
		h.marks = nil
		h.printf("marks cleared\n")

		return
	}

	if len(h.marks) == 0 {
		h.printf("no marks\n")
		return
	}

	for i, m := range h.marks {
		h.printf("%d. %s\n", i+1, m)
	}
}

// Echo prints the arguments back.
func (h *Host) Echo(_, args string) {
	h.printf("%s\n", args)
}

// Debug prints the internal state, including the name it was invoked as.
func (h *Host) Debug(command, _ string) {
	h.printf("%s: window=%t marks=%d\n", command, h.windowOpen, len(h.marks))
}

// MarkList returns a copy of the recorded marks.
func (h *Host) MarkList() []string {
	return slices.Clone(h.marks)
}

// WindowOpen reports whether the hunt window is open.
func (h *Host) WindowOpen() bool {
	return h.windowOpen
}

func (h *Host) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(h.out, format, args...)
}
