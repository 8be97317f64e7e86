// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/matt-FFFFFF/cmdbind/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func quietContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	return ctxlog.New(ctx, slog.New(slog.NewTextHandler(io.Discard, nil))), cancel
}

func runWatch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, cancel)
	}()

	return done
}

func TestWatch_FirstSignalNoCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := quietContext()
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	done := runWatch(ctx, sigCh, cancel)

	sigCh <- os.Interrupt

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, ctx.Err(), "context should not be cancelled after first signal")

	close(sigCh)
	<-done
}

func TestWatch_SecondSignalCancels(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := quietContext()
	sigCh := make(chan os.Signal, 2)

	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	<-runWatch(ctx, sigCh, cancel)

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestWatch_DifferentSignalsNoCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := quietContext()
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	sigCh <- os.Interrupt
	sigCh <- os.Kill
	close(sigCh)

	<-runWatch(ctx, sigCh, cancel)

	assert.NoError(t, ctx.Err())
}

func TestNewAndStop(t *testing.T) {
	ctx, cancel := quietContext()
	defer cancel()

	ch := New(ctx)
	assert.NotNil(t, ch)

	Stop(ch)

	_, ok := <-ch
	assert.False(t, ok)
}
