//go:build windows

package display

import (
	"errors"
	"fmt"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var procSetProcessDpiAwarenessContext = modUser32.NewProc("SetProcessDpiAwarenessContext")

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2
const dpiAwarenessPerMonitorV2 = ^uintptr(3) // (DPI_AWARENESS_CONTEXT)-4

// InitializeCOM initializes COM on the calling thread with the
// multithreaded apartment model. Host processes call this once before
// constructing any duplication controller. Returns nil when COM was
// already initialized.
func InitializeCOM() error {
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		var oleErr *ole.OleError
		// S_FALSE / RPC_E_CHANGED_MODE mean COM is already up.
		if errors.As(err, &oleErr) && (oleErr.Code() == 1 || oleErr.Code() == 0x80010106) {
			return nil
		}
		return fmt.Errorf("display: CoInitializeEx: %w", err)
	}
	return nil
}

// SetProcessDPIAware marks the process per-monitor-v2 DPI aware so capture
// geometry matches physical pixels. Call once at startup, before any
// window or capture resource is created.
func SetProcessDPIAware() error {
	ret, _, err := procSetProcessDpiAwarenessContext.Call(dpiAwarenessPerMonitorV2)
	if ret == 0 {
		// ERROR_ACCESS_DENIED means awareness was already set, which is
		// fine for our purposes.
		if errno, ok := err.(windows.Errno); ok && errno == windows.ERROR_ACCESS_DENIED {
			return nil
		}
		return fmt.Errorf("display: SetProcessDpiAwarenessContext: %w", err)
	}
	return nil
}
