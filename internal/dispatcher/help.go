// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatcher

import (
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/cmdbind/internal/commands"
)

// ErrWriteHelp is returned when the help listing cannot be written.
var ErrWriteHelp = errors.New("failed to write help listing")

// HelpStyles holds the styles used to render the help listing.
type HelpStyles struct {
	Name   lipgloss.Style
	Alias  lipgloss.Style
	Help   lipgloss.Style
	Hidden lipgloss.Style
}

// DefaultHelpStyles returns the default styles for the help listing.
func DefaultHelpStyles() HelpStyles {
	return HelpStyles{
		Name:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Alias:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Help:   lipgloss.NewStyle(),
		Hidden: lipgloss.NewStyle().Faint(true),
	}
}

// HelpLine is one command in the help listing.
type HelpLine struct {
	Name    string
	Aliases []string
	Help    string
	Visible bool
}

// HelpLines groups the registered names per entry, sorted by primary name.
// Hidden entries are left out unless includeHidden is set.
func (d *Dispatcher) HelpLines(includeHidden bool) []HelpLine {
	d.mu.RLock()

	installed := make(map[*commands.Entry]map[string]struct{})

	for name, entry := range d.handlers {
		if !entry.Visible && !includeHidden {
			continue
		}

		if installed[entry] == nil {
			installed[entry] = make(map[string]struct{})
		}

		installed[entry][name] = struct{}{}
	}

	d.mu.RUnlock()

	lines := make([]HelpLine, 0, len(installed))

	for entry, names := range installed {
		var ordered []string

		for _, n := range entry.Names {
			if _, ok := names[n]; ok {
				ordered = append(ordered, n)
				delete(names, n)
			}
		}

		// Names installed for an entry that does not list them go last.
		extra := make([]string, 0, len(names))
		for n := range names {
			extra = append(extra, n)
		}

		slices.Sort(extra)
		ordered = append(ordered, extra...)

		lines = append(lines, HelpLine{
			Name:    ordered[0],
			Aliases: ordered[1:],
			Help:    entry.HelpText,
			Visible: entry.Visible,
		})
	}

	slices.SortFunc(lines, func(a, b HelpLine) int {
		return strings.Compare(a.Name, b.Name)
	})

	return lines
}

// WriteHelp renders the help listing to w using the default styles.
func (d *Dispatcher) WriteHelp(w io.Writer, includeHidden bool) error {
	return d.WriteHelpWithStyles(w, includeHidden, DefaultHelpStyles())
}

// WriteHelpWithStyles renders the help listing to w.
func (d *Dispatcher) WriteHelpWithStyles(w io.Writer, includeHidden bool, styles HelpStyles) error {
	sb := strings.Builder{}

	for _, l := range d.HelpLines(includeHidden) {
		sb.WriteString(styles.Name.Render(l.Name))

		if len(l.Aliases) > 0 {
			sb.WriteString(" ")
			sb.WriteString(styles.Alias.Render("(" + strings.Join(l.Aliases, ", ") + ")"))
		}

		if l.Help != "" {
			sb.WriteString(" → ")
			sb.WriteString(styles.Help.Render(l.Help))
		}

		if !l.Visible {
			sb.WriteString(" ")
			sb.WriteString(styles.Hidden.Render("[hidden]"))
		}

		sb.WriteString("\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Join(ErrWriteHelp, err)
	}

	return nil
}
