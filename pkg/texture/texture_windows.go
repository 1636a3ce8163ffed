//go:build windows

package texture

import (
	"fmt"
	"unsafe"

	"github.com/openscreens/desktopdup/internal/d3d"
)

func releaseHandle(h uintptr) { d3d.Release(h) }
func addRefHandle(h uintptr)  { d3d.AddRef(h) }

// FromHandle wraps an ID3D11Texture2D handle, reading its description from
// the resource. Ownership of the handle's reference moves to the returned
// Texture. Textures with a pixel format the pipeline does not understand
// are rejected.
func FromHandle(handle uintptr) (*Texture, error) {
	var raw d3d.Texture2DDesc
	d3d.RawCall(handle, d3d.D3D11Texture2DGetDesc, uintptr(unsafe.Pointer(&raw)))
	format := FromDXGI(raw.Format)
	if !format.Valid() {
		return nil, fmt.Errorf("texture: unsupported DXGI format %d", raw.Format)
	}
	desc := Desc{
		Width:     int(raw.Width),
		Height:    int(raw.Height),
		Format:    format,
		ArraySize: int(raw.ArraySize),
	}
	// R8/R16-backed planar textures carry three stacked planes.
	if format == YUV444 || format == YUV444_10 {
		desc.Height /= 3
	}
	return New(handle, desc), nil
}
