//go:build windows

package display

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/openscreens/desktopdup/internal/d3d"
	"github.com/openscreens/desktopdup/pkg/texture"
)

var (
	modUser32 = windows.NewLazySystemDLL("user32.dll")

	procEnumDisplaySettingsExW   = modUser32.NewProc("EnumDisplaySettingsExW")
	procChangeDisplaySettingsExW = modUser32.NewProc("ChangeDisplaySettingsExW")
)

const (
	enumCurrentSettings = 0xFFFFFFFF

	dmBitsPerPel       = 0x00040000
	dmPelsWidth        = 0x00080000
	dmPelsHeight       = 0x00100000
	dmDisplayFrequency = 0x00400000

	dispChangeSuccessful = 0
)

// devModeW matches DEVMODEW for display devices.
type devModeW struct {
	DeviceName         [32]uint16
	SpecVersion        uint16
	DriverVersion      uint16
	Size               uint16
	DriverExtra        uint16
	Fields             uint32
	PositionX          int32
	PositionY          int32
	DisplayOrientation uint32
	DisplayFixedOutput uint32
	Color              int16
	Duplex             int16
	YResolution        int16
	TTOption           int16
	Collate            int16
	FormName           [32]uint16
	LogPixels          uint16
	BitsPerPel         uint32
	PelsWidth          uint32
	PelsHeight         uint32
	DisplayFlags       uint32
	DisplayFrequency   uint32
	ICMMethod          uint32
	ICMIntent          uint32
	MediaType          uint32
	DitherType         uint32
	Reserved1          uint32
	Reserved2          uint32
	PanningWidth       uint32
	PanningHeight      uint32
}

// Info is a display's static geometry as reported by the OS.
type Info struct {
	Name        string
	Width       int // effective, post-rotation
	Height      int
	Left        int
	Top         int
	Orientation texture.Orientation
}

// Mode is one display mode: resolution plus refresh rate expressed as a
// fraction. HDR modes use a 64-bit pixel layout.
type Mode struct {
	Width      int
	Height     int
	RefreshNum int
	RefreshDen int
	HDR        bool
}

// Refresh returns the refresh rate in Hz, 0 for an empty mode.
func (m Mode) Refresh() int {
	if m.RefreshDen == 0 {
		return 0
	}
	return m.RefreshNum / m.RefreshDen
}

// Display is one output attached to an adapter. It owns an IDXGIOutput1
// reference used both for duplication and for vblank waits.
type Display struct {
	handle uintptr // IDXGIOutput1
}

// Handle returns the raw IDXGIOutput1 pointer.
func (dp *Display) Handle() uintptr { return dp.handle }

func (dp *Display) desc() (d3d.OutputDesc, error) {
	var desc d3d.OutputDesc
	if _, err := d3d.Call(dp.handle, d3d.DXGIOutputGetDesc,
		uintptr(unsafe.Pointer(&desc)),
	); err != nil {
		return desc, fmt.Errorf("display: IDXGIOutput::GetDesc: %w", err)
	}
	return desc, nil
}

// Name returns the OS device name for this display (e.g. `\\.\DISPLAY1`).
func (dp *Display) Name() string {
	desc, err := dp.desc()
	if err != nil {
		return ""
	}
	return windows.UTF16ToString(desc.DeviceName[:])
}

// Info returns the display's bounds and orientation. Width/Height are the
// effective post-rotation dimensions, matching what captured textures
// contain.
func (dp *Display) Info() (Info, error) {
	desc, err := dp.desc()
	if err != nil {
		return Info{}, err
	}
	o := texture.FromDXGIRotation(desc.Rotation)
	w := int(desc.DesktopCoordinates.Right - desc.DesktopCoordinates.Left)
	h := int(desc.DesktopCoordinates.Bottom - desc.DesktopCoordinates.Top)
	return Info{
		Name:        windows.UTF16ToString(desc.DeviceName[:]),
		Width:       w,
		Height:      h,
		Left:        int(desc.DesktopCoordinates.Left),
		Top:         int(desc.DesktopCoordinates.Top),
		Orientation: o,
	}, nil
}

// CurrentMode returns the display's active mode.
func (dp *Display) CurrentMode() (Mode, error) {
	return dp.mode(enumCurrentSettings)
}

// Modes lists the modes the display supports.
func (dp *Display) Modes() ([]Mode, error) {
	var out []Mode
	for i := uint32(0); ; i++ {
		m, err := dp.mode(i)
		if err != nil {
			return out, nil // enumeration past the end
		}
		out = append(out, m)
	}
}

func (dp *Display) mode(idx uint32) (Mode, error) {
	name, err := windows.UTF16PtrFromString(dp.Name())
	if err != nil {
		return Mode{}, err
	}
	var dm devModeW
	dm.Size = uint16(unsafe.Sizeof(dm))
	ret, _, _ := procEnumDisplaySettingsExW.Call(
		uintptr(unsafe.Pointer(name)),
		uintptr(idx),
		uintptr(unsafe.Pointer(&dm)),
		0,
	)
	if ret == 0 {
		return Mode{}, fmt.Errorf("display: EnumDisplaySettingsExW(%s, %d) failed", dp.Name(), idx)
	}
	return Mode{
		Width:      int(dm.PelsWidth),
		Height:     int(dm.PelsHeight),
		RefreshNum: int(dm.DisplayFrequency),
		RefreshDen: 1,
		HDR:        dm.BitsPerPel != 32,
	}, nil
}

// SetMode switches the display to the given mode.
func (dp *Display) SetMode(m Mode) error {
	name, err := windows.UTF16PtrFromString(dp.Name())
	if err != nil {
		return err
	}
	var dm devModeW
	dm.Size = uint16(unsafe.Sizeof(dm))
	dm.PelsWidth = uint32(m.Width)
	dm.PelsHeight = uint32(m.Height)
	dm.DisplayFrequency = uint32(m.Refresh())
	dm.BitsPerPel = 32
	if m.HDR {
		dm.BitsPerPel = 64
	}
	dm.Fields = dmPelsWidth | dmPelsHeight | dmDisplayFrequency | dmBitsPerPel

	ret, _, _ := procChangeDisplaySettingsExW.Call(
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(&dm)),
		0, // hwnd
		0, // flags
		0, // lParam
	)
	if ret != dispChangeSuccessful {
		return fmt.Errorf("display: ChangeDisplaySettingsExW: DISP_CHANGE=%d", int32(ret))
	}
	return nil
}

// WaitForVBlank blocks the calling thread until the display's next vertical
// blank. Prefer VSync for cooperative waits.
func (dp *Display) WaitForVBlank() error {
	if _, err := d3d.Call(dp.handle, d3d.DXGIOutputWaitForVBlank); err != nil {
		return fmt.Errorf("display: WaitForVBlank: %w", err)
	}
	return nil
}

// Release drops the display handle. Idempotent.
func (dp *Display) Release() {
	if dp.handle != 0 {
		d3d.Release(dp.handle)
		dp.handle = 0
	}
}
