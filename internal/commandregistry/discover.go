// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/matt-FFFFFF/cmdbind/internal/commands"
)

var handlerType = reflect.TypeFor[func(string, string)]()

// discover builds the ordered binding table for host.
// Explicit declarations win over annotations. Annotated methods are visited in
// method set order, which reflect guarantees to be sorted by name.
func discover(host any, o *options) ([]Binding, error) {
	if o.declared {
		return fromDeclarations(o.declarations)
	}

	if d, ok := host.(commands.Declarer); ok {
		return fromDeclarations(d.CommandDeclarations())
	}

	annotations := o.annotations
	if annotations == nil {
		if a, ok := host.(commands.Annotated); ok {
			annotations = a.CommandAnnotations()
		} else if err := checkAddressable(host); err != nil {
			return nil, err
		}
	}

	return fromAnnotations(host, annotations)
}

var (
	declarerType  = reflect.TypeFor[commands.Declarer]()
	annotatedType = reflect.TypeFor[commands.Annotated]()
)

// checkAddressable fails for a host passed by value whose pointer type
// declares or annotates commands. The value's method set lacks those methods,
// so discovery would otherwise find nothing.
func checkAddressable(host any) error {
	t := reflect.TypeOf(host)
	if t.Kind() == reflect.Pointer {
		return nil
	}

	pt := reflect.PointerTo(t)

	switch {
	case pt.Implements(declarerType):
		return fmt.Errorf("%w: %s implements CommandDeclarations on *%s", ErrNonPointerHost, t, t)
	case pt.Implements(annotatedType):
		return fmt.Errorf("%w: %s implements CommandAnnotations on *%s", ErrNonPointerHost, t, t)
	default:
		return nil
	}
}

func fromDeclarations(decls []commands.Declaration) ([]Binding, error) {
	var (
		bindings []Binding
		errs     []error
	)

	for i, d := range decls {
		entry, err := commands.NewEntry(d.Annotation(), d.Handler)
		if err != nil {
			errs = append(errs, fmt.Errorf("declaration %d (%q): %w", i, d.Name, err))
			continue
		}

		bindings = appendBindings(bindings, entry)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return bindings, nil
}

func fromAnnotations(host any, annotations map[string]commands.Annotation) ([]Binding, error) {
	if len(annotations) == 0 {
		return nil, nil
	}

	var (
		bindings []Binding
		errs     []error
	)

	v := reflect.ValueOf(host)
	t := v.Type()
	seen := make(map[string]struct{}, len(annotations))

	for i := range t.NumMethod() {
		method := t.Method(i)

		a, ok := annotations[method.Name]
		if !ok {
			continue
		}

		seen[method.Name] = struct{}{}

		fn := v.Method(i)
		if fn.Type() != handlerType {
			errs = append(errs, fmt.Errorf("%w: method %s has type %s", commands.ErrSignatureMismatch, method.Name, fn.Type()))
			continue
		}

		entry, err := commands.NewEntry(a, commands.Handler(fn.Interface().(func(string, string))))
		if err != nil {
			errs = append(errs, fmt.Errorf("method %s: %w", method.Name, err))
			continue
		}

		entry.Method = method.Name
		bindings = appendBindings(bindings, entry)
	}

	var unknown []string

	for name := range annotations {
		if _, ok := seen[name]; !ok {
			unknown = append(unknown, name)
		}
	}

	slices.Sort(unknown)

	for _, name := range unknown {
		if _, ok := reflect.PointerTo(t).MethodByName(name); ok && t.Kind() != reflect.Pointer {
			errs = append(errs, fmt.Errorf("%w: %s has a pointer receiver, pass *%s: %w", commands.ErrUnknownMethod, name, t, ErrNonPointerHost))
			continue
		}

		errs = append(errs, fmt.Errorf("%w: %s on %s", commands.ErrUnknownMethod, name, t))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return bindings, nil
}

// appendBindings emits one binding for the primary name and one per alias, all sharing entry.
func appendBindings(bindings []Binding, entry *commands.Entry) []Binding {
	for _, name := range entry.Names {
		bindings = append(bindings, Binding{Name: name, Entry: entry})
	}

	return bindings
}
