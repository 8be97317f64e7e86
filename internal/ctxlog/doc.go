// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger uses PrettyHandler, a console handler that prints a
// timestamp, the level, the message and the attributes as indented JSON.
// The level is read from the CMDBIND_LOG_LEVEL environment variable.
package ctxlog
