//go:build windows

package reader

import (
	"fmt"
	"unsafe"

	"github.com/openscreens/desktopdup/internal/d3d"
	"github.com/openscreens/desktopdup/pkg/texture"
)

// New builds a TextureReader over a D3D11 device and immediate context,
// typically the pair returned by the capture controller's
// DeviceAndContext. The handles are borrowed, not owned.
func New(device, devctx uintptr) *TextureReader {
	st := &d3dStager{device: device, devctx: devctx}
	st.pool = newTexturePool(st.createStaging, d3d.Release)
	return &TextureReader{st: st}
}

type d3dStager struct {
	device uintptr
	devctx uintptr
	pool   *texturePool
}

func (s *d3dStager) createStaging(desc texture.Desc) (uintptr, error) {
	h := uint32(desc.Height)
	if desc.Format == texture.YUV444 || desc.Format == texture.YUV444_10 {
		h *= 3
	}
	raw := d3d.Texture2DDesc{
		Width:          uint32(desc.Width),
		Height:         h,
		MipLevels:      1,
		ArraySize:      1,
		Format:         desc.Format.ToDXGI(),
		SampleCount:    1,
		Usage:          d3d.D3D11UsageStaging,
		CPUAccessFlags: d3d.D3D11CPUAccessRead,
	}
	var handle uintptr
	if _, err := d3d.Call(s.device, d3d.D3D11DeviceCreateTexture2D,
		uintptr(unsafe.Pointer(&raw)), 0, uintptr(unsafe.Pointer(&handle))); err != nil {
		return 0, fmt.Errorf("create readback staging %dx%d %s: %w",
			desc.Width, desc.Height, desc.Format, err)
	}
	return handle, nil
}

func (s *d3dStager) readback(tex *texture.Texture) (data []byte, rowPitch int, done func(), err error) {
	desc := tex.Desc()
	desc.ArraySize = 1
	staging, err := s.pool.get(desc)
	if err != nil {
		return nil, 0, nil, err
	}

	d3d.RawCall(s.devctx, d3d.D3D11CtxCopyResource, staging, tex.Handle())
	d3d.RawCall(s.devctx, d3d.D3D11CtxFlush)

	var mapped d3d.MappedSubresource
	if _, err := d3d.Call(s.devctx, d3d.D3D11CtxMap,
		staging, 0, d3d.D3D11MapRead, 0, uintptr(unsafe.Pointer(&mapped))); err != nil {
		return nil, 0, nil, fmt.Errorf("map readback staging: %w", err)
	}
	data = unsafe.Slice((*byte)(unsafe.Pointer(mapped.PData)), int(mapped.DepthPitch))
	done = func() {
		d3d.RawCall(s.devctx, d3d.D3D11CtxUnmap, staging, 0)
	}
	return data, int(mapped.RowPitch), done, nil
}

func (s *d3dStager) close() {
	s.pool.close()
}
