// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

// Annotation is the metadata attached to a single host method.
type Annotation struct {
	// Command is the primary command name. It is required.
	Command string `yaml:"command"`
	// Aliases are alternate names resolving to the same handler.
	Aliases []string `yaml:"aliases,omitempty"`
	// HelpMessage is shown by the dispatcher help listing.
	HelpMessage string `yaml:"help,omitempty"`
	// Hidden removes the command from the help listing.
	Hidden bool `yaml:"hidden,omitempty"`
}

// Declaration is an explicit registration of a handler, without reflection.
type Declaration struct {
	Name    string
	Aliases []string
	Help    string
	Hidden  bool
	Handler Handler
}

// Annotation returns the metadata part of the declaration.
func (d Declaration) Annotation() Annotation {
	return Annotation{
		Command:     d.Name,
		Aliases:     d.Aliases,
		HelpMessage: d.Help,
		Hidden:      d.Hidden,
	}
}
