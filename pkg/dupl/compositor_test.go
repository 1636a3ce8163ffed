package dupl

import (
	"errors"
	"testing"

	"github.com/openscreens/desktopdup/pkg/texture"
)

// fakeBlender records the blended region and runs fn over a zeroed buffer.
type fakeBlender struct {
	calls      int
	x, y, w, h int
	pix        []byte
	stride     int
}

func (f *fakeBlender) blendRegion(_ *texture.Texture, x, y, w, h int, fn func(pix []byte, stride int)) error {
	f.calls++
	f.x, f.y, f.w, f.h = x, y, w, h
	f.stride = w * 4
	f.pix = make([]byte, h*f.stride)
	fn(f.pix, f.stride)
	return nil
}

func opaqueShape(w, h int) *PointerShape {
	data := make([]byte, w*h*4)
	for i := 3; i < len(data); i += 4 {
		data[i] = 255
	}
	return &PointerShape{Kind: ShapeColor, Width: w, Height: h, Pitch: w * 4, Data: data}
}

func bgraFrame(w, h int) *texture.Texture {
	return texture.New(1, texture.Desc{Width: w, Height: h, Format: texture.BGRA8, ArraySize: 1})
}

func TestCompositorTracksPositionWithoutShape(t *testing.T) {
	var cc Compositor
	if err := cc.Update(CursorDelta{UpdateTime: 1, Visible: true, X: 10, Y: 20}); err != nil {
		t.Fatal(err)
	}
	if x, y := cc.Position(); x != 10 || y != 20 {
		t.Fatalf("position = (%d, %d), want (10, 20)", x, y)
	}
	if !cc.Visible() {
		t.Fatal("cursor should be visible")
	}
	if cc.Generation() != 0 {
		t.Fatal("position updates must not advance the shape generation")
	}

	// Zero UpdateTime means no cursor change this frame.
	if err := cc.Update(CursorDelta{X: 99, Y: 99}); err != nil {
		t.Fatal(err)
	}
	if x, y := cc.Position(); x != 10 || y != 20 {
		t.Fatalf("stale delta moved the cursor to (%d, %d)", x, y)
	}
}

func TestCompositorDecodesShapeOnce(t *testing.T) {
	var cc Compositor
	if err := cc.Update(CursorDelta{UpdateTime: 1, Visible: true, Shape: opaqueShape(4, 4)}); err != nil {
		t.Fatal(err)
	}
	if cc.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", cc.Generation())
	}

	// Position-only deltas must not re-decode.
	for i := 0; i < 5; i++ {
		if err := cc.Update(CursorDelta{UpdateTime: int64(i + 2), Visible: true, X: i}); err != nil {
			t.Fatal(err)
		}
	}
	if cc.Generation() != 1 {
		t.Fatalf("generation = %d after position updates, want 1", cc.Generation())
	}
}

func TestCompositorRetainsShapeOnDecodeFailure(t *testing.T) {
	var cc Compositor
	if err := cc.Update(CursorDelta{UpdateTime: 1, Visible: true, Shape: opaqueShape(4, 4)}); err != nil {
		t.Fatal(err)
	}

	bad := &PointerShape{Kind: 0x8, Width: 4, Height: 4, Pitch: 16, Data: make([]byte, 64)}
	err := cc.Update(CursorDelta{UpdateTime: 2, Visible: true, X: 3, Y: 4, Shape: bad})
	if !errors.Is(err, ErrUnsupportedCursorShape) {
		t.Fatalf("err = %v, want ErrUnsupportedCursorShape", err)
	}
	if cc.Generation() != 1 {
		t.Fatal("failed decode must not advance the generation")
	}
	// Position from the failed delta still applies and the old sprite
	// still blends.
	if x, y := cc.Position(); x != 3 || y != 4 {
		t.Fatalf("position = (%d, %d), want (3, 4)", x, y)
	}
	b := &fakeBlender{}
	if err := cc.Blend(b, bgraFrame(100, 100)); err != nil {
		t.Fatal(err)
	}
	if b.calls != 1 {
		t.Fatal("previous sprite should still blend")
	}
}

func TestCompositorBlendSkipsWhenHiddenOrShapeless(t *testing.T) {
	var cc Compositor
	b := &fakeBlender{}

	// No shape yet.
	cc.Update(CursorDelta{UpdateTime: 1, Visible: true})
	if err := cc.Blend(b, bgraFrame(100, 100)); err != nil || b.calls != 0 {
		t.Fatalf("blend without shape: calls=%d err=%v", b.calls, err)
	}

	// Hidden.
	cc.Update(CursorDelta{UpdateTime: 2, Visible: true, Shape: opaqueShape(4, 4)})
	cc.Update(CursorDelta{UpdateTime: 3, Visible: false})
	if err := cc.Blend(b, bgraFrame(100, 100)); err != nil || b.calls != 0 {
		t.Fatalf("blend while hidden: calls=%d err=%v", b.calls, err)
	}
}

func TestCompositorBlendOnlyTouchesByteChannelFormats(t *testing.T) {
	var cc Compositor
	cc.Update(CursorDelta{UpdateTime: 1, Visible: true, Shape: opaqueShape(4, 4)})

	// 10-bit packed, float, packed-YUV and planar frames all pass through
	// unblended; 8-bit sprite math would corrupt their pixels.
	skipped := []texture.ColorFormat{
		texture.RGBA10, texture.RGBA16F, texture.AYUV, texture.Y410,
		texture.NV12, texture.P010, texture.YUV444, texture.YUV444_10,
	}
	for _, format := range skipped {
		b := &fakeBlender{}
		frame := texture.New(1, texture.Desc{Width: 100, Height: 100, Format: format, ArraySize: 1})
		if err := cc.Blend(b, frame); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if b.calls != 0 {
			t.Errorf("%s frames must pass through unblended", format)
		}
	}

	for _, format := range []texture.ColorFormat{texture.BGRA8, texture.RGBA8} {
		b := &fakeBlender{}
		frame := texture.New(1, texture.Desc{Width: 100, Height: 100, Format: format, ArraySize: 1})
		if err := cc.Blend(b, frame); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if b.calls != 1 {
			t.Errorf("%s frames should blend, calls = %d", format, b.calls)
		}
	}
}

func TestCompositorBlendClipsAtFrameEdge(t *testing.T) {
	var cc Compositor
	cc.Update(CursorDelta{UpdateTime: 1, Visible: true, X: 98, Y: 99, Shape: opaqueShape(4, 4)})

	b := &fakeBlender{}
	if err := cc.Blend(b, bgraFrame(100, 100)); err != nil {
		t.Fatal(err)
	}
	if b.x != 98 || b.y != 99 || b.w != 2 || b.h != 1 {
		t.Fatalf("region = (%d,%d %dx%d), want (98,99 2x1)", b.x, b.y, b.w, b.h)
	}

	// Fully off-screen draws nothing.
	cc.Update(CursorDelta{UpdateTime: 2, Visible: true, X: 200, Y: 0})
	if err := cc.Blend(b, bgraFrame(100, 100)); err != nil {
		t.Fatal(err)
	}
	if b.calls != 1 {
		t.Fatal("off-screen cursor should not blend")
	}
}
