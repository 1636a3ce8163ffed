package texture

import "testing"

func TestFormatProperties(t *testing.T) {
	tests := []struct {
		format ColorFormat
		bpp    int
		planes int
	}{
		{BGRA8, 4, 1},
		{RGBA8, 4, 1},
		{RGBA10, 4, 1},
		{RGBA16F, 8, 1},
		{AYUV, 4, 1},
		{Y410, 4, 1},
		{NV12, 1, 2},
		{P010, 2, 2},
		{YUV444, 1, 3},
		{YUV444_10, 2, 3},
	}
	for _, tt := range tests {
		if got := tt.format.BytesPerPixel(); got != tt.bpp {
			t.Errorf("%s BytesPerPixel = %d, want %d", tt.format, got, tt.bpp)
		}
		if got := tt.format.PlaneCount(); got != tt.planes {
			t.Errorf("%s PlaneCount = %d, want %d", tt.format, got, tt.planes)
		}
		if !tt.format.Valid() {
			t.Errorf("%s should be valid", tt.format)
		}
	}
	if FormatUnknown.Valid() {
		t.Error("FormatUnknown should not be valid")
	}
}

func TestBufferSize(t *testing.T) {
	tests := []struct {
		format ColorFormat
		w, h   int
		want   int
	}{
		{BGRA8, 1920, 1080, 1920 * 1080 * 4},
		{RGBA16F, 1920, 1080, 1920 * 1080 * 8},
		{NV12, 1920, 1080, 1920*1080 + 1920*540},
		{P010, 1920, 1080, (1920*1080 + 1920*540) * 2},
		{YUV444, 1280, 720, 3 * 1280 * 720},
		{YUV444_10, 1280, 720, 3 * 1280 * 720 * 2},
		{FormatUnknown, 1920, 1080, 0},
	}
	for _, tt := range tests {
		if got := tt.format.BufferSize(tt.w, tt.h); got != tt.want {
			t.Errorf("%s BufferSize(%d, %d) = %d, want %d", tt.format, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestDXGIRoundTrip(t *testing.T) {
	formats := []ColorFormat{
		BGRA8, RGBA8, RGBA10, RGBA16F, AYUV, NV12, P010, Y410, YUV444, YUV444_10,
	}
	for _, f := range formats {
		v := f.ToDXGI()
		if v == 0 {
			t.Errorf("%s has no DXGI mapping", f)
			continue
		}
		if got := FromDXGI(v); got != f {
			t.Errorf("FromDXGI(ToDXGI(%s)) = %s", f, got)
		}
	}
}

func TestFromDXGIUnknown(t *testing.T) {
	// DXGI_FORMAT_BC1_UNORM, a compressed format duplication never emits.
	if got := FromDXGI(71); got != FormatUnknown {
		t.Fatalf("FromDXGI(71) = %s, want FormatUnknown", got)
	}
}

func TestPlanarFormatsBackedBySinglePlaneTextures(t *testing.T) {
	if YUV444.ToDXGI() != dxgiFormatR8UNorm {
		t.Error("YUV444 should be backed by R8")
	}
	if YUV444_10.ToDXGI() != dxgiFormatR16UNorm {
		t.Error("YUV444_10 should be backed by R16")
	}
}
