//go:build windows

package dupl

import (
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/openscreens/desktopdup/internal/d3d"
	"github.com/openscreens/desktopdup/pkg/display"
)

var (
	modUser32           = windows.NewLazySystemDLL("user32.dll")
	procOpenInputDesk   = modUser32.NewProc("OpenInputDesktop")
	procSetThreadDesk   = modUser32.NewProc("SetThreadDesktop")
	procCloseDesktopWin = modUser32.NewProc("CloseDesktop")
)

const desktopGenericAll = 0x10000000

// switchToInputDesktop attaches the calling thread to whatever desktop
// currently receives input. DuplicateOutput fails with E_ACCESSDENIED when
// the duplicating thread sits on a stale desktop after a secure-desktop or
// fast-user-switch transition, so this runs before every session build.
func switchToInputDesktop() {
	desk, _, _ := procOpenInputDesk.Call(0, 0, desktopGenericAll)
	if desk == 0 {
		return
	}
	if ok, _, _ := procSetThreadDesk.Call(desk); ok == 0 {
		slog.Debug("SetThreadDesktop failed; continuing on current desktop")
	}
	procCloseDesktopWin.Call(desk)
}

// newDevice creates a D3D11 device and immediate context on the adapter.
func newDevice(adapter uintptr) (device, devctx uintptr, err error) {
	driverType := uintptr(d3d.D3DDriverTypeHardware)
	if adapter != 0 {
		driverType = d3d.D3DDriverTypeUnknown
	}
	levels := []uint32{d3d.D3DFeatureLevel11_0}
	var picked uint32
	hr, _, _ := d3d.ProcD3D11CreateDevice.Call(
		adapter,
		driverType,
		0, // no software rasterizer
		d3d.D3D11CreateDeviceBGRASupport,
		uintptr(unsafe.Pointer(&levels[0])),
		uintptr(len(levels)),
		d3d.D3D11SDKVersion,
		uintptr(unsafe.Pointer(&device)),
		uintptr(unsafe.Pointer(&picked)),
		uintptr(unsafe.Pointer(&devctx)),
	)
	if d3d.Failed(hr) {
		return 0, 0, fmt.Errorf("D3D11CreateDevice: %w", d3d.HRESULT(hr))
	}
	return device, devctx, nil
}

// New builds a capture controller for the given adapter and display
// indices, creating its own D3D11 device. The returned controller owns the
// device; Close releases everything.
func New(adapterIdx, displayIdx int, opts Options) (*Controller, error) {
	factory, err := display.NewFactory()
	if err != nil {
		return nil, err
	}
	defer factory.Release()

	adapter, err := factory.Adapter(adapterIdx)
	if err != nil {
		return nil, err
	}
	defer adapter.Release()

	device, devctx, err := newDevice(adapter.Handle())
	if err != nil {
		return nil, err
	}

	dp, err := adapter.Display(displayIdx)
	if err != nil {
		d3d.Release(devctx)
		d3d.Release(device)
		return nil, err
	}

	ctrl, err := newController(device, devctx, dp, opts)
	if err != nil {
		// newController released dp via its own cleanup.
		d3d.Release(devctx)
		d3d.Release(device)
		return nil, err
	}
	prev := ctrl.closeExtra
	ctrl.closeExtra = func() {
		prev()
		d3d.Release(devctx)
		d3d.Release(device)
	}
	return ctrl, nil
}

// NewWithDevice builds a controller over a caller-owned D3D11 device and
// immediate context, for callers sharing the device with an encoder. The
// display's reference is adopted; the device handles are borrowed.
func NewWithDevice(device, devctx uintptr, dp *display.Display, opts Options) (*Controller, error) {
	return newController(device, devctx, dp, opts)
}

func newController(device, devctx uintptr, dp *display.Display, opts Options) (*Controller, error) {
	if opts.AcquireTimeout <= 0 {
		if mode, err := dp.CurrentMode(); err == nil && mode.Refresh() > 0 {
			opts.AcquireTimeout = time.Second / time.Duration(mode.Refresh())
		}
	}
	opts.applyDefaults()

	vsync := dp.VSync()
	ctrl := &Controller{
		newSource: func() (frameSource, error) { return duplicateDisplay(device, dp) },
		preBuild:  switchToInputDesktop,
		vsync:     vsync,
		ops:       newD3DOps(device, devctx),
		opts:      opts,
		device:    device,
		devctx:    devctx,
		closeExtra: func() {
			vsync.Close()
			dp.Release()
		},
	}

	// First session is built eagerly so construction reports a broken
	// setup immediately instead of on the first acquisition.
	src, err := ctrl.newSource()
	if err != nil {
		ctrl.Close()
		return nil, fmt.Errorf("duplicate output: %w", err)
	}
	ctrl.src = src
	ctrl.state = StateActive
	return ctrl, nil
}

func duplicateDisplay(device uintptr, dp *display.Display) (frameSource, error) {
	var dupl uintptr
	if _, err := d3d.Call(dp.Handle(), d3d.DXGIOutput1DuplicateOutput,
		device, uintptr(unsafe.Pointer(&dupl))); err != nil {
		return nil, err
	}
	return newDXGISession(dupl), nil
}
