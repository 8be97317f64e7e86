// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"slices"
)

var (
	// ErrMissingCommandName is returned when a marked method has no primary command name.
	ErrMissingCommandName = errors.New("command declaration is missing a command name")
	// ErrEmptyAlias is returned when an alias list contains an empty string.
	ErrEmptyAlias = errors.New("command declaration contains an empty alias")
	// ErrSignatureMismatch is returned when a marked method cannot be bound as a Handler.
	ErrSignatureMismatch = errors.New("method signature does not match func(command, args string)")
	// ErrUnknownMethod is returned when an annotation names a method the host does not have.
	ErrUnknownMethod = errors.New("annotation refers to an unknown or unexported method")
	// ErrNilHandler is returned when a declaration has no handler.
	ErrNilHandler = errors.New("command declaration has a nil handler")
)

// Handler is the shape every command handler is bound to.
// It receives the command name used to invoke it and the raw argument text.
type Handler func(command, args string)

// Entry is what gets installed into a dispatcher for every command name.
// The primary name and all aliases of one command share the same *Entry.
type Entry struct {
	// Names holds the primary name followed by the aliases.
	Names    []string
	Handler  Handler
	HelpText string
	Visible  bool
	// Method is the host method the entry was bound from, empty for declarations.
	Method string
}

// NewEntry validates the annotation and returns the entry bound to h.
func NewEntry(a Annotation, h Handler) (*Entry, error) {
	if a.Command == "" {
		return nil, ErrMissingCommandName
	}

	if h == nil {
		return nil, ErrNilHandler
	}

	if slices.Contains(a.Aliases, "") {
		return nil, ErrEmptyAlias
	}

	names := make([]string, 0, len(a.Aliases)+1)
	names = append(names, a.Command)
	names = append(names, a.Aliases...)

	return &Entry{
		Names:    names,
		Handler:  h,
		HelpText: a.HelpMessage,
		Visible:  !a.Hidden,
	}, nil
}

// Name returns the primary command name.
func (e *Entry) Name() string {
	if len(e.Names) == 0 {
		return ""
	}

	return e.Names[0]
}

// Aliases returns the alternate names of the entry.
func (e *Entry) Aliases() []string {
	if len(e.Names) < 2 { //nolint:mnd
		return nil
	}

	return e.Names[1:]
}

// Invoke calls the bound handler.
func (e *Entry) Invoke(command, args string) {
	e.Handler(command, args)
}
