package dupl

import "errors"

// Error taxonomy for the acquisition pipeline. Transient, expected
// conditions are handled internally wherever a safe recovery path exists;
// only conditions with no internal recovery propagate.
var (
	// ErrNoFrame is returned when no frame arrived within the acquisition
	// timeout and no previous frame exists yet to hand out. Expected on a
	// freshly started, static desktop; callers should retry.
	ErrNoFrame = errors.New("no frame available yet")

	// ErrBusy is returned when an acquisition is already in flight on this
	// controller. Acquisitions must be serialized by the caller.
	ErrBusy = errors.New("acquisition already in flight")

	// ErrAccessLost reports that the capture session was invalidated
	// (desktop switch, mode change, secure desktop). Handled internally by
	// recovery; surfaced only when it strikes again immediately after a
	// successful recovery.
	ErrAccessLost = errors.New("capture access lost")

	// ErrDeviceLost reports GPU device removal or reset. Unrecoverable by
	// the controller; the caller must rebuild it, likely re-enumerating
	// displays.
	ErrDeviceLost = errors.New("graphics device lost")

	// ErrRecoveryExhausted reports that session recreation failed more
	// times than the configured ceiling. The controller is Failed.
	ErrRecoveryExhausted = errors.New("session recovery attempts exhausted")

	// ErrFailed is returned by every acquisition once the controller has
	// entered the Failed state.
	ErrFailed = errors.New("controller failed; construct a new one")

	// ErrUnsupportedCursorShape reports a pointer shape encoding the
	// compositor cannot decode. Non-fatal: the previous shape is retained
	// and the frame pipeline continues.
	ErrUnsupportedCursorShape = errors.New("unsupported cursor shape encoding")
)
