// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatcher

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/matt-FFFFFF/cmdbind/internal/commands"
)

var (
	// ErrEmptyName is returned when a handler is added without a name.
	ErrEmptyName = errors.New("command name must not be empty")
	// ErrNilHandler is returned when a nil entry or an entry without a handler is added.
	ErrNilHandler = errors.New("command entry must have a handler")
	// ErrDuplicateCommand is returned when a name is already registered.
	ErrDuplicateCommand = errors.New("command already registered")
	// ErrUnknownCommand is returned when a name is not registered.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrEmptyLine is returned when Dispatch is called with blank input.
	ErrEmptyLine = errors.New("no command given")
)

// Dispatcher maps command names to entries.
type Dispatcher struct {
	mu           sync.RWMutex
	handlers     map[string]*commands.Entry
	strictRemove bool
}

var _ commands.Dispatcher = (*Dispatcher)(nil)

// Option configures a Dispatcher.
type Option func(d *Dispatcher)

// WithStrictRemove makes RemoveHandler fail for names that are not registered.
// By default removing an unknown name is a no-op.
func WithStrictRemove() Option {
	return func(d *Dispatcher) {
		d.strictRemove = true
	}
}

// New creates an empty dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]*commands.Entry),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// AddHandler installs entry under name.
func (d *Dispatcher) AddHandler(name string, entry *commands.Entry) error {
	if name == "" {
		return ErrEmptyName
	}

	if entry == nil || entry.Handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}

	d.handlers[name] = entry

	return nil
}

// RemoveHandler uninstalls name.
func (d *Dispatcher) RemoveHandler(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[name]; !exists {
		if d.strictRemove {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}

		return nil
	}

	delete(d.handlers, name)

	return nil
}

// Lookup returns the entry installed under name.
func (d *Dispatcher) Lookup(name string) (*commands.Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entry, ok := d.handlers[name]

	return entry, ok
}

// Names returns every registered name, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Dispatch routes line to the handler registered under its first word.
// The rest of the line, trimmed, is passed as the raw argument text.
func (d *Dispatcher) Dispatch(line string) error {
	name, args := Split(line)
	if name == "" {
		return ErrEmptyLine
	}

	entry, ok := d.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	entry.Invoke(name, args)

	return nil
}

// Split separates a command line into the command name and its raw argument text.
func Split(line string) (string, string) {
	line = strings.TrimSpace(line)

	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}

	return line[:i], strings.TrimSpace(line[i:])
}
