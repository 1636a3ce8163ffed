//go:build windows

package dupl

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/openscreens/desktopdup/internal/d3d"
	"github.com/openscreens/desktopdup/pkg/texture"
)

// dxgiSession wraps one IDXGIOutputDuplication instance. The OS allows at
// most one unreleased frame per duplication; tryAcquire releases any frame
// still held from the previous call before acquiring, so a caller that
// leaked a done() cannot wedge the session.
type dxgiSession struct {
	dupl      uintptr
	frameHeld bool
	shapeBuf  []byte
}

func newDXGISession(dupl uintptr) *dxgiSession {
	return &dxgiSession{dupl: dupl}
}

func (s *dxgiSession) tryAcquire(timeout time.Duration) (*acquiredFrame, error) {
	s.releaseFrame()

	var info d3d.OutDuplFrameInfo
	var resource uintptr
	hr := d3d.RawCall(s.dupl, d3d.DXGIDuplAcquireNextFrame,
		uintptr(timeout/time.Millisecond),
		uintptr(unsafe.Pointer(&info)),
		uintptr(unsafe.Pointer(&resource)))
	switch d3d.HRESULT(hr) {
	case 0:
	case d3d.DXGIErrWaitTimeout:
		return nil, nil
	case d3d.DXGIErrAccessLost, d3d.DXGIErrAccessDenied, d3d.DXGIErrInvalidCall:
		return nil, fmt.Errorf("AcquireNextFrame: %w: %w", ErrAccessLost, d3d.HRESULT(hr))
	case d3d.DXGIErrDeviceRemoved, d3d.DXGIErrDeviceReset:
		return nil, fmt.Errorf("AcquireNextFrame: %w: %w", ErrDeviceLost, d3d.HRESULT(hr))
	default:
		return nil, fmt.Errorf("AcquireNextFrame: %w", d3d.HRESULT(hr))
	}
	s.frameHeld = true

	frame := &acquiredFrame{
		info: FrameInfo{
			PresentTime:       info.LastPresentTime,
			AccumulatedFrames: int(info.AccumulatedFrames),
		},
		done: s.releaseFrame,
	}
	if info.LastMouseUpdateTime != 0 {
		frame.info.Cursor = CursorDelta{
			UpdateTime: info.LastMouseUpdateTime,
			Visible:    info.PointerPosition.Visible != 0,
			X:          int(info.PointerPosition.Position.X),
			Y:          int(info.PointerPosition.Position.Y),
		}
		if info.PointerShapeBufferSize > 0 {
			shape, err := s.readPointerShape(info.PointerShapeBufferSize)
			if err != nil {
				s.releaseFrame()
				if resource != 0 {
					d3d.Release(resource)
				}
				return nil, err
			}
			frame.info.Cursor.Shape = shape
		}
	}

	// LastPresentTime of 0 means the desktop image did not change; the
	// acquisition carried cursor metadata only.
	if info.LastPresentTime == 0 {
		if resource != 0 {
			d3d.Release(resource)
		}
		return frame, nil
	}

	tex2d, err := d3d.QueryInterface(resource, &d3d.IIDID3D11Texture2D)
	d3d.Release(resource)
	if err != nil {
		s.releaseFrame()
		return nil, fmt.Errorf("frame resource is not a texture: %w", err)
	}
	tex, err := texture.FromHandle(tex2d)
	if err != nil {
		d3d.Release(tex2d)
		s.releaseFrame()
		return nil, err
	}
	frame.tex = tex
	held := frame.done
	frame.done = func() {
		tex.Release()
		held()
	}
	return frame, nil
}

// readPointerShape pulls the new cursor sprite accumulated with the
// current frame. The buffer is reused across calls.
func (s *dxgiSession) readPointerShape(size uint32) (*PointerShape, error) {
	if cap(s.shapeBuf) < int(size) {
		s.shapeBuf = make([]byte, size)
	}
	s.shapeBuf = s.shapeBuf[:size]

	var required uint32
	var si d3d.PointerShapeInfo
	if _, err := d3d.Call(s.dupl, d3d.DXGIDuplGetFramePointerShape,
		uintptr(size),
		uintptr(unsafe.Pointer(&s.shapeBuf[0])),
		uintptr(unsafe.Pointer(&required)),
		uintptr(unsafe.Pointer(&si))); err != nil {
		return nil, fmt.Errorf("GetFramePointerShape: %w", err)
	}
	data := make([]byte, required)
	copy(data, s.shapeBuf[:required])
	return &PointerShape{
		Kind:     ShapeKind(si.Type),
		Width:    int(si.Width),
		Height:   int(si.Height),
		Pitch:    int(si.Pitch),
		HotspotX: int(si.HotSpot.X),
		HotspotY: int(si.HotSpot.Y),
		Data:     data,
	}, nil
}

func (s *dxgiSession) releaseFrame() {
	if s.frameHeld {
		d3d.RawCall(s.dupl, d3d.DXGIDuplReleaseFrame)
		s.frameHeld = false
	}
}

func (s *dxgiSession) release() {
	if s.dupl != 0 {
		s.releaseFrame()
		d3d.Release(s.dupl)
		s.dupl = 0
	}
}
