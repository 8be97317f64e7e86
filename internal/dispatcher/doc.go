// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatcher is an in-memory command dispatcher.
// It owns the live table of command names, routes a line of text to the
// handler installed under its first word, and renders a help listing.
//
// All methods are safe for concurrent use. Handlers are invoked without the
// table lock held, so a handler may add or remove commands itself.
package dispatcher
