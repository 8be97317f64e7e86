// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

// Dispatcher is the external sink that owns the live table of command names.
// It routes command text to handlers and renders help, neither of which is the
// concern of the registry.
type Dispatcher interface {
	// AddHandler installs entry under name. It must fail if name is already registered.
	AddHandler(name string, entry *Entry) error
	// RemoveHandler uninstalls name. Behaviour for unknown names is dispatcher-defined.
	RemoveHandler(name string) error
}

// Declarer is implemented by hosts that list their commands explicitly.
// Declarations are checked at compile time and take precedence over annotations.
type Declarer interface {
	CommandDeclarations() []Declaration
}

// Annotated is implemented by hosts that attach metadata to their methods.
// The map is keyed by method name; only methods present in the map are commands.
type Annotated interface {
	CommandAnnotations() map[string]Annotation
}
