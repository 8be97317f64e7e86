// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/cmdbind/internal/ctxlog"
)

// Watch reads sigCh until it is closed or the same signal arrives twice.
// On the second occurrence it calls cancel and returns without closing sigCh.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Warn(ctx, "watchdog", "detail", "second signal received, cancelling", "signal", sig.String())
			cancel()

			return
		}

		ctxlog.Info(ctx, "watchdog", "detail", "first signal received, send again to force exit", "signal", sig.String())

		seen[sig] = struct{}{}
	}
}
