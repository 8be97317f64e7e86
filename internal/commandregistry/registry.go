// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cmdbind/internal/commands"
	"github.com/matt-FFFFFF/cmdbind/internal/ctxlog"
)

var (
	// ErrNilHost is returned when New is called without a host.
	ErrNilHost = errors.New("command host must not be nil")
	// ErrNilDispatcher is returned when New is called without a dispatcher.
	ErrNilDispatcher = errors.New("command dispatcher must not be nil")
	// ErrNonPointerHost is returned when a host is passed by value but declares its commands on pointer receivers.
	ErrNonPointerHost = errors.New("command host must be passed by pointer")
	// ErrDiscovery is returned when the host's command declarations are invalid.
	ErrDiscovery = errors.New("failed to discover commands")
	// ErrInstall is returned when the dispatcher rejects a command name.
	ErrInstall = errors.New("failed to install command")
	// ErrRemove is returned when the dispatcher fails to remove a command name.
	ErrRemove = errors.New("failed to remove command")
)

// Binding pairs an installed name with its entry.
type Binding struct {
	Name  string
	Entry *commands.Entry
}

// Registry owns the commands discovered on one host and keeps them installed
// in a dispatcher until Close is called.
// It is not safe for concurrent use.
type Registry struct {
	id         uuid.UUID
	host       any
	dispatcher commands.Dispatcher
	bindings   []Binding
	logger     *slog.Logger
	closed     bool
}

// New discovers the commands of host and installs every name into d.
//
// Discovery errors are reported before the dispatcher is touched. If the
// dispatcher rejects a name, the names installed so far are removed again and
// the combined error is returned, unless WithBestEffort is set.
func New(ctx context.Context, host any, d commands.Dispatcher, opts ...Option) (*Registry, error) {
	if isNil(host) {
		return nil, ErrNilHost
	}

	if isNil(d) {
		return nil, ErrNilDispatcher
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	r := &Registry{
		id:         uuid.New(),
		host:       host,
		dispatcher: d,
	}
	r.logger = ctxlog.Logger(ctx).With("registry", r.id.String(), "host", fmt.Sprintf("%T", host))

	bindings, err := discover(host, o)
	if err != nil {
		r.logger.Error("command discovery failed", "error", err)
		return nil, errors.Join(ErrDiscovery, err)
	}

	r.bindings = bindings

	if err := r.install(o.bestEffort); err != nil {
		if o.bestEffort {
			return r, err
		}

		return nil, err
	}

	r.logger.Info("commands installed", "names", len(r.bindings), "commands", len(r.Entries()))

	return r, nil
}

func (r *Registry) install(bestEffort bool) error {
	for i, b := range r.bindings {
		r.logger.Debug("installing command", "name", b.Name, "method", b.Entry.Method)

		err := r.dispatcher.AddHandler(b.Name, b.Entry)
		if err == nil {
			continue
		}

		installErr := fmt.Errorf("%w %q: %w", ErrInstall, b.Name, err)
		if bestEffort {
			r.logger.Warn("command installation failed, leaving earlier commands installed",
				"name", b.Name, "installed", i, "error", err)

			r.bindings = r.bindings[:i:i]

			return installErr
		}

		r.logger.Warn("command installation failed, rolling back", "name", b.Name, "installed", i, "error", err)

		result := multierror.Append(nil, installErr)

		for j := i - 1; j >= 0; j-- {
			if rerr := r.dispatcher.RemoveHandler(r.bindings[j].Name); rerr != nil {
				result = multierror.Append(result, fmt.Errorf("%w %q: %w", ErrRemove, r.bindings[j].Name, rerr))
			}
		}

		return result.ErrorOrNil()
	}

	return nil
}

// Close removes every name the registry installed, aliases included.
// Removal continues past failures and all failures are returned together.
// Only the first call touches the dispatcher; later calls return nil.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true

	var result *multierror.Error

	for _, b := range r.bindings {
		r.logger.Debug("removing command", "name", b.Name)

		if err := r.dispatcher.RemoveHandler(b.Name); err != nil {
			result = multierror.Append(result, fmt.Errorf("%w %q: %w", ErrRemove, b.Name, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		r.logger.Error("failed to remove some commands", "error", err)
		return err
	}

	r.logger.Info("commands removed", "names", len(r.bindings))

	return nil
}

// ID identifies the registry in log records.
func (r *Registry) ID() uuid.UUID {
	return r.id
}

// Closed reports whether Close has been called.
func (r *Registry) Closed() bool {
	return r.closed
}

// Len returns the number of installed names.
func (r *Registry) Len() int {
	return len(r.bindings)
}

// Bindings returns a copy of the name to entry table in installation order.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)

	return out
}

// Names returns every installed name in installation order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b.Name)
	}

	return out
}

// Entries returns each distinct entry once, in the order of its primary name.
func (r *Registry) Entries() []*commands.Entry {
	var out []*commands.Entry

	seen := make(map[*commands.Entry]struct{})

	for _, b := range r.bindings {
		if _, ok := seen[b.Entry]; ok {
			continue
		}

		seen[b.Entry] = struct{}{}
		out = append(out, b.Entry)
	}

	return out
}

// isNil reports whether v is nil or a nil pointer held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
