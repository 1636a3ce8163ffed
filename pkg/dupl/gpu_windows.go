//go:build windows

package dupl

import (
	"fmt"
	"unsafe"

	"github.com/openscreens/desktopdup/internal/d3d"
	"github.com/openscreens/desktopdup/pkg/texture"
)

// nativeHeight is the GPU texture height for a description; the planar
// 4:4:4 formats stack three planes into one texture.
func nativeHeight(desc texture.Desc) uint32 {
	h := uint32(desc.Height)
	if desc.Format == texture.YUV444 || desc.Format == texture.YUV444_10 {
		h *= 3
	}
	return h
}

type stagingKey struct {
	w, h   int
	format texture.ColorFormat
}

// d3dOps issues the GPU commands the controller needs through the D3D11
// immediate context. Not safe for concurrent use; the controller
// serializes access.
type d3dOps struct {
	device uintptr
	devctx uintptr

	// Cursor regions are small and reuse the same few sizes; keep the
	// staging textures alive between blends.
	staging map[stagingKey]uintptr
}

func newD3DOps(device, devctx uintptr) *d3dOps {
	return &d3dOps{device: device, devctx: devctx, staging: make(map[stagingKey]uintptr)}
}

func (g *d3dOps) createFrame(desc texture.Desc) (*texture.Texture, error) {
	raw := d3d.Texture2DDesc{
		Width:       uint32(desc.Width),
		Height:      nativeHeight(desc),
		MipLevels:   1,
		ArraySize:   1,
		Format:      desc.Format.ToDXGI(),
		SampleCount: 1,
		Usage:       d3d.D3D11UsageDefault,
		BindFlags:   d3d.D3D11BindRenderTarget,
	}
	var handle uintptr
	if _, err := d3d.Call(g.device, d3d.D3D11DeviceCreateTexture2D,
		uintptr(unsafe.Pointer(&raw)), 0, uintptr(unsafe.Pointer(&handle))); err != nil {
		return nil, fmt.Errorf("CreateTexture2D %dx%d %s: %w", desc.Width, desc.Height, desc.Format, err)
	}
	d := desc
	d.ArraySize = 1
	return texture.New(handle, d), nil
}

func (g *d3dOps) copyTexture(dst, src *texture.Texture) error {
	if dst.Desc().Width != src.Desc().Width || dst.Desc().Height != src.Desc().Height ||
		dst.Desc().Format != src.Desc().Format {
		return fmt.Errorf("texture copy mismatch: %+v -> %+v", src.Desc(), dst.Desc())
	}
	d3d.RawCall(g.devctx, d3d.D3D11CtxCopyResource, dst.Handle(), src.Handle())
	return nil
}

// blendRegion round-trips a rectangle of tex through a CPU-mappable
// staging texture: copy out, mutate via fn, copy back.
func (g *d3dOps) blendRegion(tex *texture.Texture, x, y, w, h int, fn func(pix []byte, stride int)) error {
	staging, err := g.stagingFor(w, h, tex.Desc().Format)
	if err != nil {
		return err
	}

	srcBox := d3d.Box{
		Left: uint32(x), Top: uint32(y), Front: 0,
		Right: uint32(x + w), Bottom: uint32(y + h), Back: 1,
	}
	d3d.RawCall(g.devctx, d3d.D3D11CtxCopySubresourceRegion,
		staging, 0, 0, 0, 0,
		tex.Handle(), 0, uintptr(unsafe.Pointer(&srcBox)))

	var mapped d3d.MappedSubresource
	if _, err := d3d.Call(g.devctx, d3d.D3D11CtxMap,
		staging, 0, d3d.D3D11MapReadWrite, 0, uintptr(unsafe.Pointer(&mapped))); err != nil {
		return fmt.Errorf("map staging region: %w", err)
	}
	pix := unsafe.Slice((*byte)(unsafe.Pointer(mapped.PData)), int(mapped.RowPitch)*h)
	fn(pix, int(mapped.RowPitch))
	d3d.RawCall(g.devctx, d3d.D3D11CtxUnmap, staging, 0)

	regionBox := d3d.Box{Right: uint32(w), Bottom: uint32(h), Back: 1}
	d3d.RawCall(g.devctx, d3d.D3D11CtxCopySubresourceRegion,
		tex.Handle(), 0, uintptr(uint32(x)), uintptr(uint32(y)), 0,
		staging, 0, uintptr(unsafe.Pointer(&regionBox)))
	return nil
}

func (g *d3dOps) stagingFor(w, h int, format texture.ColorFormat) (uintptr, error) {
	key := stagingKey{w: w, h: h, format: format}
	if handle, ok := g.staging[key]; ok {
		return handle, nil
	}
	raw := d3d.Texture2DDesc{
		Width:          uint32(w),
		Height:         uint32(h),
		MipLevels:      1,
		ArraySize:      1,
		Format:         format.ToDXGI(),
		SampleCount:    1,
		Usage:          d3d.D3D11UsageStaging,
		CPUAccessFlags: d3d.D3D11CPUAccessRead | d3d.D3D11CPUAccessWrite,
	}
	var handle uintptr
	if _, err := d3d.Call(g.device, d3d.D3D11DeviceCreateTexture2D,
		uintptr(unsafe.Pointer(&raw)), 0, uintptr(unsafe.Pointer(&handle))); err != nil {
		return 0, fmt.Errorf("create blend staging %dx%d %s: %w", w, h, format, err)
	}
	if len(g.staging) >= 4 {
		for k, v := range g.staging {
			d3d.Release(v)
			delete(g.staging, k)
			break
		}
	}
	g.staging[key] = handle
	return handle, nil
}

func (g *d3dOps) close() {
	for k, v := range g.staging {
		d3d.Release(v)
		delete(g.staging, k)
	}
}
