//go:build windows

package display

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/openscreens/desktopdup/internal/d3d"
)

// ErrNotFound is returned when an adapter or display index is out of range.
var ErrNotFound = errors.New("display: not found")

// Factory enumerates the GPU adapters present on the system.
type Factory struct {
	handle uintptr // IDXGIFactory1
}

// NewFactory creates a DXGI factory for adapter enumeration.
func NewFactory() (*Factory, error) {
	var handle uintptr
	hr, _, _ := d3d.ProcCreateDXGIFactory1.Call(
		uintptr(unsafe.Pointer(&d3d.IIDIDXGIFactory1)),
		uintptr(unsafe.Pointer(&handle)),
	)
	if d3d.Failed(hr) {
		return nil, fmt.Errorf("display: CreateDXGIFactory1: %w", d3d.HRESULT(hr))
	}
	return &Factory{handle: handle}, nil
}

// Adapter returns the adapter at idx, ErrNotFound past the end.
func (f *Factory) Adapter(idx int) (*Adapter, error) {
	var handle uintptr
	hr := d3d.RawCall(f.handle, d3d.DXGIFactoryEnumAdapters1,
		uintptr(idx),
		uintptr(unsafe.Pointer(&handle)),
	)
	if d3d.HRESULT(hr) == d3d.DXGIErrNotFound {
		return nil, ErrNotFound
	}
	if d3d.Failed(hr) {
		return nil, fmt.Errorf("display: EnumAdapters1(%d): %w", idx, d3d.HRESULT(hr))
	}
	return &Adapter{handle: handle}, nil
}

// Adapters enumerates all adapters. The caller releases each.
func (f *Factory) Adapters() ([]*Adapter, error) {
	var out []*Adapter
	for i := 0; ; i++ {
		a, err := f.Adapter(i)
		if errors.Is(err, ErrNotFound) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
}

// Release drops the factory handle. Idempotent.
func (f *Factory) Release() {
	if f.handle != 0 {
		d3d.Release(f.handle)
		f.handle = 0
	}
}

// Adapter represents a single GPU and the displays attached to it.
type Adapter struct {
	handle uintptr // IDXGIAdapter1
}

// Handle returns the raw IDXGIAdapter1 pointer.
func (a *Adapter) Handle() uintptr { return a.handle }

func (a *Adapter) desc() (d3d.AdapterDesc1, error) {
	var desc d3d.AdapterDesc1
	if _, err := d3d.Call(a.handle, d3d.DXGIAdapterGetDesc1,
		uintptr(unsafe.Pointer(&desc)),
	); err != nil {
		return desc, fmt.Errorf("display: IDXGIAdapter1::GetDesc1: %w", err)
	}
	return desc, nil
}

// Name returns the adapter's human-readable description.
func (a *Adapter) Name() string {
	desc, err := a.desc()
	if err != nil {
		return ""
	}
	return windows.UTF16ToString(desc.Description[:])
}

// Luid returns the adapter's locally-unique identifier.
func (a *Adapter) Luid() (low uint32, high int32) {
	desc, err := a.desc()
	if err != nil {
		return 0, 0
	}
	return desc.AdapterLuid.LowPart, desc.AdapterLuid.HighPart
}

// Display returns the display output at idx on this adapter.
func (a *Adapter) Display(idx int) (*Display, error) {
	var output uintptr
	hr := d3d.RawCall(a.handle, d3d.DXGIAdapterEnumOutputs,
		uintptr(idx),
		uintptr(unsafe.Pointer(&output)),
	)
	if d3d.HRESULT(hr) == d3d.DXGIErrNotFound {
		return nil, ErrNotFound
	}
	if d3d.Failed(hr) {
		return nil, fmt.Errorf("display: EnumOutputs(%d): %w", idx, d3d.HRESULT(hr))
	}
	// Duplication needs IDXGIOutput1.
	output1, err := d3d.QueryInterface(output, &d3d.IIDIDXGIOutput1)
	d3d.Release(output)
	if err != nil {
		return nil, fmt.Errorf("display: IDXGIOutput1 unavailable: %w", err)
	}
	return &Display{handle: output1}, nil
}

// Displays enumerates all displays attached to this adapter.
func (a *Adapter) Displays() ([]*Display, error) {
	var out []*Display
	for i := 0; ; i++ {
		di, err := a.Display(i)
		if errors.Is(err, ErrNotFound) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, di)
	}
}

// Release drops the adapter handle. Idempotent.
func (a *Adapter) Release() {
	if a.handle != 0 {
		d3d.Release(a.handle)
		a.handle = 0
	}
}
