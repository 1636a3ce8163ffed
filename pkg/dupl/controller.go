// Package dupl implements the desktop duplication frame pipeline: a
// self-healing acquisition state machine over the OS capture session, with
// cursor compositing and vsync-paced delivery.
package dupl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/openscreens/desktopdup/pkg/texture"
)

// State is the controller's lifecycle state.
type State uint32

const (
	StateIdle State = iota
	StateActive
	StateRecovering
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateRecovering:
		return "recovering"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", uint32(s))
}

// Options configures a Controller.
type Options struct {
	// SkipCursor disables cursor compositing onto returned frames.
	SkipCursor bool

	// AcquireTimeout bounds each OS acquisition call. Defaults to one
	// refresh interval of the captured display.
	AcquireTimeout time.Duration

	// MaxRecoveryAttempts caps session recreation tries per recovery
	// episode before the controller fails.
	MaxRecoveryAttempts int

	// RecoveryDelay is the pause between recreation attempts, giving
	// transient conditions (secure desktop, mode switch) time to settle.
	RecoveryDelay time.Duration
}

func (o *Options) applyDefaults() {
	if o.AcquireTimeout <= 0 {
		o.AcquireTimeout = 17 * time.Millisecond
	}
	if o.MaxRecoveryAttempts <= 0 {
		o.MaxRecoveryAttempts = 10
	}
	if o.RecoveryDelay <= 0 {
		o.RecoveryDelay = 200 * time.Millisecond
	}
}

// acquiredFrame is one successful OS acquisition. tex is nil when the
// acquisition carried only cursor metadata. done releases the OS frame
// reference and must be called exactly once.
type acquiredFrame struct {
	tex  *texture.Texture
	info FrameInfo
	done func()
}

// frameSource is one live capture session for one display.
type frameSource interface {
	// tryAcquire requests the next frame within timeout. Returns
	// (nil, nil) when no update arrived, ErrAccessLost when the session
	// was invalidated, or a wrapped ErrDeviceLost on device errors.
	tryAcquire(timeout time.Duration) (*acquiredFrame, error)

	// release tears down the session, dropping any held frame reference.
	// Idempotent.
	release()
}

// vsyncWaiter suspends until the display's next vertical blank.
type vsyncWaiter interface {
	Wait(ctx context.Context) error
}

// gpuOps is the small set of GPU commands the controller issues.
type gpuOps interface {
	regionBlender
	createFrame(desc texture.Desc) (*texture.Texture, error)
	copyTexture(dst, src *texture.Texture) error
	close()
}

// Controller owns one capture session for one display and transparently
// rebuilds it when the OS invalidates it. One controller supports one
// acquisition at a time; concurrent calls fail with ErrBusy rather than
// queueing. Multiple controllers (multi-display capture) are independent:
// all retry state lives on the controller itself.
type Controller struct {
	mu sync.Mutex

	state   State
	lastErr error

	src       frameSource
	newSource func() (frameSource, error)
	preBuild  func() // runs before each session (re)build, e.g. desktop switch
	vsync     vsyncWaiter
	ops       gpuOps

	opts Options
	comp Compositor

	// cache holds the last full desktop image; returned frames are copies
	// of it so previously returned textures are never mutated.
	cache *texture.Texture

	device, devctx uintptr
	closeExtra     func()
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// DeviceAndContext exposes the underlying GPU device and immediate context
// so callers (texture readers, encoders) can operate on returned textures.
// This is a read-only capability handoff, not a transfer of ownership; the
// handles stay valid for the controller's lifetime.
func (c *Controller) DeviceAndContext() (device, ctx uintptr) {
	return c.device, c.devctx
}

// AcquireNextVSyncFrame waits for the display's vertical blank, then
// acquires the next frame with a bounded timeout. The wait suspends
// cooperatively and honors ctx cancellation. The returned texture has the
// cursor pre-rendered (unless SkipCursor) and is owned by the caller, who
// must Release it.
func (c *Controller) AcquireNextVSyncFrame(ctx context.Context) (*texture.Texture, FrameInfo, error) {
	if !c.mu.TryLock() {
		return nil, FrameInfo{}, ErrBusy
	}
	defer c.mu.Unlock()
	if err := c.vsync.Wait(ctx); err != nil {
		return nil, FrameInfo{}, err
	}
	return c.acquireLocked(ctx)
}

// AcquireNextFrameNow acquires immediately without waiting for vblank, for
// callers that pace themselves externally.
func (c *Controller) AcquireNextFrameNow(ctx context.Context) (*texture.Texture, FrameInfo, error) {
	if !c.mu.TryLock() {
		return nil, FrameInfo{}, ErrBusy
	}
	defer c.mu.Unlock()
	return c.acquireLocked(ctx)
}

func (c *Controller) acquireLocked(ctx context.Context) (*texture.Texture, FrameInfo, error) {
	if c.state == StateFailed {
		if c.lastErr != nil {
			return nil, FrameInfo{}, fmt.Errorf("%w: %w", ErrFailed, c.lastErr)
		}
		return nil, FrameInfo{}, ErrFailed
	}
	if c.src == nil {
		if err := c.rebuildSource(ctx); err != nil {
			return nil, FrameInfo{}, err
		}
	}

	frame, err := c.src.tryAcquire(c.opts.AcquireTimeout)
	if errors.Is(err, ErrAccessLost) {
		if rerr := c.recoverSession(ctx); rerr != nil {
			return nil, FrameInfo{}, rerr
		}
		frame, err = c.src.tryAcquire(c.opts.AcquireTimeout)
		if errors.Is(err, ErrAccessLost) {
			err = fmt.Errorf("session invalidated immediately after recovery: %w", ErrAccessLost)
		}
	}
	if err != nil {
		if errors.Is(err, ErrDeviceLost) {
			c.state = StateFailed
			c.lastErr = err
		}
		return nil, FrameInfo{}, err
	}

	var info FrameInfo
	if frame != nil {
		info = frame.info
		if frame.tex != nil {
			cerr := c.ensureCache(frame.tex.Desc())
			if cerr == nil {
				cerr = c.ops.copyTexture(c.cache, frame.tex)
			}
			if cerr != nil {
				frame.done()
				return nil, FrameInfo{}, cerr
			}
		}
		frame.done()
		if uerr := c.comp.Update(info.Cursor); uerr != nil {
			// Stale sprite keeps rendering; the frame itself is fine.
			slog.Warn("cursor shape update rejected", "error", uerr)
		}
	}

	if c.cache == nil {
		// Static desktop before the first real frame.
		return nil, FrameInfo{}, ErrNoFrame
	}

	out, err := c.ops.createFrame(c.cache.Desc())
	if err != nil {
		return nil, FrameInfo{}, err
	}
	if err := c.ops.copyTexture(out, c.cache); err != nil {
		out.Release()
		return nil, FrameInfo{}, err
	}
	if !c.opts.SkipCursor {
		if berr := c.comp.Blend(c.ops, out); berr != nil {
			slog.Warn("cursor blend failed", "error", berr)
		}
	}
	return out, info, nil
}

func (c *Controller) ensureCache(desc texture.Desc) error {
	if c.cache != nil && c.cache.Desc() == desc {
		return nil
	}
	if c.cache != nil {
		c.cache.Release()
		c.cache = nil
	}
	cache, err := c.ops.createFrame(desc)
	if err != nil {
		return err
	}
	c.cache = cache
	return nil
}

// recoverSession tears down the invalidated session and rebuilds it
// against the same display. The cached image is dropped: the next frame
// after a recovery is a fresh full image, never a delta, and the display
// geometry may have changed.
func (c *Controller) recoverSession(ctx context.Context) error {
	c.state = StateRecovering
	slog.Warn("capture access lost, recovering session")
	if c.src != nil {
		c.src.release()
		c.src = nil
	}
	if c.cache != nil {
		c.cache.Release()
		c.cache = nil
	}
	return c.rebuildSource(ctx)
}

func (c *Controller) rebuildSource(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= c.opts.MaxRecoveryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.preBuild != nil {
			c.preBuild()
		}
		src, err := c.newSource()
		if err == nil {
			c.src = src
			c.state = StateActive
			return nil
		}
		lastErr = err
		slog.Warn("capture session rebuild failed",
			"attempt", attempt, "maxAttempts", c.opts.MaxRecoveryAttempts, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.opts.RecoveryDelay):
		}
	}
	c.state = StateFailed
	c.lastErr = lastErr
	return fmt.Errorf("%w after %d attempts: %w", ErrRecoveryExhausted, c.opts.MaxRecoveryAttempts, lastErr)
}

// Close releases the capture session, cached textures and, when the
// controller created them, the GPU device and context. Idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.src != nil {
		c.src.release()
		c.src = nil
	}
	if c.cache != nil {
		c.cache.Release()
		c.cache = nil
	}
	if c.ops != nil {
		c.ops.close()
		c.ops = nil
	}
	if c.closeExtra != nil {
		c.closeExtra()
		c.closeExtra = nil
	}
	if c.state != StateFailed {
		c.state = StateIdle
	}
}
