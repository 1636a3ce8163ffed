// Package texture provides value types describing captured desktop frames:
// pixel color formats, display orientation and texture descriptions, plus a
// thin owning wrapper over a GPU texture handle.
package texture

import "fmt"

// ColorFormat enumerates the pixel layouts the capture pipeline understands.
// Every format produced by duplication or consumed by the reader must have
// an entry here; anything else is a reportable error, never a silent
// fallback.
type ColorFormat uint32

const (
	FormatUnknown ColorFormat = iota

	// BGRA8 is packed 8-bit per channel BGRA, the native desktop format.
	BGRA8

	// RGBA8 is packed 8-bit per channel RGBA.
	RGBA8

	// RGBA10 is packed 10 bits per color channel plus 2 bits alpha.
	RGBA10

	// RGBA16F is packed 16-bit float per channel, used for HDR desktops.
	RGBA16F

	// AYUV is packed 8-bit 4:4:4 YUV with alpha.
	AYUV

	// NV12 is semi-planar 8-bit 4:2:0: a full-resolution Y plane followed
	// by an interleaved half-height UV plane.
	NV12

	// P010 is semi-planar 16-bit 4:2:0 with data in the top 10 bits,
	// laid out like NV12 with 2-byte samples.
	P010

	// Y410 is packed 10-bit 4:4:4 YUV with 2 bits alpha.
	Y410

	// YUV444 is planar 8-bit 4:4:4 backed by an R8 texture three planes
	// tall. Desc heights for this format are the per-plane height.
	YUV444

	// YUV444_10 is planar 16-bit 4:4:4 (10 significant bits) backed by an
	// R16 texture three planes tall.
	YUV444_10
)

func (f ColorFormat) String() string {
	switch f {
	case BGRA8:
		return "BGRA8"
	case RGBA8:
		return "RGBA8"
	case RGBA10:
		return "RGBA10"
	case RGBA16F:
		return "RGBA16F"
	case AYUV:
		return "AYUV"
	case NV12:
		return "NV12"
	case P010:
		return "P010"
	case Y410:
		return "Y410"
	case YUV444:
		return "YUV444"
	case YUV444_10:
		return "YUV444_10"
	}
	return fmt.Sprintf("ColorFormat(%d)", uint32(f))
}

// BytesPerPixel returns the byte width of one plane-0 sample. For the
// semi-planar and planar formats this is the Y-plane sample size.
func (f ColorFormat) BytesPerPixel() int {
	switch f {
	case BGRA8, RGBA8, RGBA10, AYUV, Y410:
		return 4
	case RGBA16F:
		return 8
	case NV12, YUV444:
		return 1
	case P010, YUV444_10:
		return 2
	}
	return 0
}

// PlaneCount returns the number of planes in the CPU layout emitted by the
// reader: 1 for packed formats, 2 for the NV12-style semi-planar formats
// and 3 for the planar 4:4:4 formats.
func (f ColorFormat) PlaneCount() int {
	switch f {
	case BGRA8, RGBA8, RGBA10, RGBA16F, AYUV, Y410:
		return 1
	case NV12, P010:
		return 2
	case YUV444, YUV444_10:
		return 3
	}
	return 0
}

// BufferSize returns the tightly-packed CPU buffer size for a w×h frame of
// this format, with planes stored contiguously in documented order.
func (f ColorFormat) BufferSize(w, h int) int {
	bpp := f.BytesPerPixel()
	switch f.PlaneCount() {
	case 1:
		return w * h * bpp
	case 2:
		// Y plane + half-height interleaved UV plane.
		return w*h*bpp + w*(h/2)*bpp
	case 3:
		return 3 * w * h * bpp
	}
	return 0
}

// Valid reports whether the format is one the pipeline understands.
func (f ColorFormat) Valid() bool {
	return f != FormatUnknown && f.BytesPerPixel() != 0
}

// DXGI format values mirrored here so the mapping stays testable on every
// platform.
const (
	dxgiFormatR16G16B16A16Float = 10
	dxgiFormatR10G10B10A2UNorm  = 24
	dxgiFormatR8G8B8A8UNorm     = 28
	dxgiFormatR16UNorm          = 56
	dxgiFormatR8UNorm           = 61
	dxgiFormatB8G8R8A8UNorm     = 87
	dxgiFormatAYUV              = 100
	dxgiFormatY410              = 101
	dxgiFormatNV12              = 103
	dxgiFormatP010              = 104
)

// FromDXGI maps a DXGI_FORMAT value onto a ColorFormat. Unrecognized
// values map to FormatUnknown, which callers must treat as an error.
func FromDXGI(v uint32) ColorFormat {
	switch v {
	case dxgiFormatB8G8R8A8UNorm:
		return BGRA8
	case dxgiFormatR8G8B8A8UNorm:
		return RGBA8
	case dxgiFormatR10G10B10A2UNorm:
		return RGBA10
	case dxgiFormatR16G16B16A16Float:
		return RGBA16F
	case dxgiFormatAYUV:
		return AYUV
	case dxgiFormatNV12:
		return NV12
	case dxgiFormatP010:
		return P010
	case dxgiFormatY410:
		return Y410
	case dxgiFormatR8UNorm:
		return YUV444
	case dxgiFormatR16UNorm:
		return YUV444_10
	}
	return FormatUnknown
}

// ToDXGI maps a ColorFormat back onto its DXGI_FORMAT value, 0 (UNKNOWN)
// for unmapped formats.
func (f ColorFormat) ToDXGI() uint32 {
	switch f {
	case BGRA8:
		return dxgiFormatB8G8R8A8UNorm
	case RGBA8:
		return dxgiFormatR8G8B8A8UNorm
	case RGBA10:
		return dxgiFormatR10G10B10A2UNorm
	case RGBA16F:
		return dxgiFormatR16G16B16A16Float
	case AYUV:
		return dxgiFormatAYUV
	case NV12:
		return dxgiFormatNV12
	case P010:
		return dxgiFormatP010
	case Y410:
		return dxgiFormatY410
	case YUV444:
		return dxgiFormatR8UNorm
	case YUV444_10:
		return dxgiFormatR16UNorm
	}
	return 0
}
