//go:build windows

package display

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/openscreens/desktopdup/internal/d3d"
)

// VSyncSignal delivers a tick for every vertical blank of one display.
//
// WaitForVBlank is a blocking OS wait with no async variant, so the signal
// runs it on a dedicated OS-locked thread and forwards completions over a
// channel; Wait is the cooperative suspension point and honors context
// cancellation without leaving the wait thread stuck (the thread exits on
// Close or on the first vblank after cancellation).
type VSyncSignal struct {
	ticks chan error
	stop  chan struct{}
	once  sync.Once
}

// VSync starts a vblank wait thread for this display and returns its
// signal. Close it when pacing is no longer needed.
func (dp *Display) VSync() *VSyncSignal {
	v := &VSyncSignal{
		ticks: make(chan error, 1),
		stop:  make(chan struct{}),
	}
	// The wait thread holds its own reference so a caller releasing the
	// Display cannot yank the output from under a pending wait.
	d3d.AddRef(dp.handle)
	out := &Display{handle: dp.handle}
	go func() {
		defer out.Release()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		for {
			err := out.WaitForVBlank()
			select {
			case v.ticks <- err:
			case <-v.stop:
				return
			}
			if err != nil {
				slog.Warn("vblank wait failed, stopping vsync signal", "error", err)
				return
			}
		}
	}()
	return v
}

// Wait suspends until the next vblank tick, the signal is closed, or ctx is
// done. It never blocks other goroutines.
func (v *VSyncSignal) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err, ok := <-v.ticks:
		if !ok {
			return context.Canceled
		}
		return err
	}
}

// Close stops the wait thread. Idempotent.
func (v *VSyncSignal) Close() {
	v.once.Do(func() { close(v.stop) })
}
