package dupl

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeColorStripsPitchPadding(t *testing.T) {
	// 2x2 BGRA with 4 bytes of row padding.
	shape := &PointerShape{
		Kind: ShapeColor, Width: 2, Height: 2, Pitch: 12,
		Data: []byte{
			1, 2, 3, 255, 4, 5, 6, 128, 0xAA, 0xAA, 0xAA, 0xAA,
			7, 8, 9, 0, 10, 11, 12, 255, 0xAA, 0xAA, 0xAA, 0xAA,
		},
	}
	spr, err := decodeShape(shape)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		1, 2, 3, 255, 4, 5, 6, 128,
		7, 8, 9, 0, 10, 11, 12, 255,
	}
	if !bytes.Equal(spr.pix, want) {
		t.Fatalf("pix = %v, want %v", spr.pix, want)
	}
	for i, x := range spr.xor {
		if x {
			t.Fatalf("color sprite should have no XOR pixels, got one at %d", i)
		}
	}
}

func TestDecodeMonochromeClassifiesPixels(t *testing.T) {
	// 8x2 sprite (reported height 4 = AND rows + XOR rows), one byte per
	// row. First row exercises all four AND/XOR combinations.
	shape := &PointerShape{
		Kind: ShapeMonochrome, Width: 8, Height: 4, Pitch: 1,
		Data: []byte{
			0b11000000, // AND row 0: pixels 0,1 set
			0b11111111, // AND row 1: all transparent or invert
			0b01010000, // XOR row 0: pixels 1,3 set
			0b00000000, // XOR row 1
		},
	}
	spr, err := decodeShape(shape)
	if err != nil {
		t.Fatal(err)
	}
	if spr.w != 8 || spr.h != 2 {
		t.Fatalf("sprite = %dx%d, want 8x2", spr.w, spr.h)
	}

	// AND=1, XOR=0: transparent.
	if spr.pix[3] != 0 || spr.xor[0] {
		t.Error("pixel 0 should be transparent")
	}
	// AND=1, XOR=1: invert the screen.
	if !spr.xor[1] || spr.pix[4] != 0xFF {
		t.Error("pixel 1 should be a screen-inverting pixel")
	}
	// AND=0, XOR=0: opaque black.
	if spr.pix[2*4+3] != 0xFF || spr.pix[2*4] != 0 || spr.xor[2] {
		t.Error("pixel 2 should be opaque black")
	}
	// AND=0, XOR=1: opaque white.
	if spr.pix[3*4+3] != 0xFF || spr.pix[3*4] != 0xFF || spr.xor[3] {
		t.Error("pixel 3 should be opaque white")
	}
}

func TestDecodeMaskedColor(t *testing.T) {
	shape := &PointerShape{
		Kind: ShapeMaskedColor, Width: 2, Height: 1, Pitch: 8,
		Data: []byte{
			10, 20, 30, 0x00, // mask 0: replace screen pixel
			40, 50, 60, 0xFF, // mask FF: XOR into screen pixel
		},
	}
	spr, err := decodeShape(shape)
	if err != nil {
		t.Fatal(err)
	}
	if spr.xor[0] || spr.pix[3] != 0xFF {
		t.Error("pixel 0 should be opaque replace")
	}
	if !spr.xor[1] {
		t.Error("pixel 1 should be XOR")
	}
	if spr.pix[4] != 40 || spr.pix[5] != 50 || spr.pix[6] != 60 {
		t.Error("pixel 1 color should be preserved")
	}
}

func TestDecodeShapeRejectsUnknownKind(t *testing.T) {
	_, err := decodeShape(&PointerShape{Kind: 0x8, Width: 4, Height: 4, Pitch: 16, Data: make([]byte, 64)})
	if !errors.Is(err, ErrUnsupportedCursorShape) {
		t.Fatalf("err = %v, want ErrUnsupportedCursorShape", err)
	}
}

func TestDecodeShapeRejectsShortBuffer(t *testing.T) {
	shapes := []*PointerShape{
		{Kind: ShapeColor, Width: 4, Height: 4, Pitch: 16, Data: make([]byte, 32)},
		{Kind: ShapeColor, Width: 4, Height: 4, Pitch: 8, Data: make([]byte, 64)}, // pitch < 4*w
		{Kind: ShapeMonochrome, Width: 8, Height: 4, Pitch: 1, Data: make([]byte, 2)},
		{Kind: ShapeMonochrome, Width: 8, Height: 0, Pitch: 1, Data: nil},
		{Kind: ShapeMaskedColor, Width: 0, Height: 4, Pitch: 0, Data: nil},
	}
	for i, s := range shapes {
		if _, err := decodeShape(s); !errors.Is(err, ErrUnsupportedCursorShape) {
			t.Errorf("shape %d: err = %v, want ErrUnsupportedCursorShape", i, err)
		}
	}
}

func TestClampRegion(t *testing.T) {
	tests := []struct {
		name                 string
		x, y                 int
		dx, dy, sx, sy, w, h int
	}{
		{"fully inside", 10, 20, 10, 20, 0, 0, 32, 32},
		{"off left top", -5, -7, 0, 0, 5, 7, 27, 25},
		{"off right bottom", 90, 95, 90, 95, 0, 0, 10, 5},
		{"fully off screen", -40, 0, 0, 0, 40, 0, -8, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy, sx, sy, w, h := clampRegion(tt.x, tt.y, 32, 32, 100, 100)
			if dx != tt.dx || dy != tt.dy || sx != tt.sx || sy != tt.sy || w != tt.w || h != tt.h {
				t.Fatalf("clampRegion = (%d,%d,%d,%d,%d,%d), want (%d,%d,%d,%d,%d,%d)",
					dx, dy, sx, sy, w, h, tt.dx, tt.dy, tt.sx, tt.sy, tt.w, tt.h)
			}
		})
	}
}

func TestBlendSpriteAlphaPaths(t *testing.T) {
	spr := newSprite(4, 1)
	// Pixel 0: opaque red (BGRA). Pixel 1: transparent. Pixel 2: 50%
	// green. Pixel 3: XOR white.
	copy(spr.pix, []byte{
		0, 0, 255, 255,
		9, 9, 9, 0,
		0, 255, 0, 127,
		255, 255, 255, 255,
	})
	spr.xor[3] = true

	dst := []byte{
		100, 100, 100, 255,
		100, 100, 100, 255,
		100, 100, 100, 255,
		0x0F, 0xF0, 0xAA, 255,
	}
	blendSprite(dst, 16, spr, 0, 0, 4, 1, false)

	if dst[0] != 0 || dst[2] != 255 {
		t.Errorf("opaque pixel not replaced: %v", dst[0:4])
	}
	if dst[4] != 100 || dst[5] != 100 || dst[6] != 100 {
		t.Errorf("transparent pixel modified: %v", dst[4:8])
	}
	// 50% blend: (255*127 + 100*128) / 255 = 177 on the green channel.
	if g := dst[9]; g < 175 || g > 179 {
		t.Errorf("half-alpha green = %d, want ~177", g)
	}
	if dst[8] > 52 {
		t.Errorf("half-alpha blue = %d, want ~50", dst[8])
	}
	if dst[12] != 0xF0 || dst[13] != 0x0F || dst[14] != 0x55 {
		t.Errorf("XOR pixel = %v, want inverted", dst[12:16])
	}
}

func TestBlendSpriteSubRegion(t *testing.T) {
	spr := newSprite(2, 2)
	for i := 0; i < 4; i++ {
		spr.pix[i*4+0] = byte(i + 1)
		spr.pix[i*4+3] = 255
	}

	// Blend only the bottom-right sprite pixel into a 1x1 region.
	dst := make([]byte, 4)
	blendSprite(dst, 4, spr, 1, 1, 1, 1, false)
	if dst[0] != 4 {
		t.Fatalf("blue = %d, want 4 (sprite pixel at 1,1)", dst[0])
	}
}

func TestBlendSpriteSwapsChannelsForRGBA(t *testing.T) {
	spr := newSprite(2, 1)
	// Pixel 0: opaque with distinct B/G/R. Pixel 1: XOR with distinct B/R.
	copy(spr.pix, []byte{
		10, 20, 30, 255,
		0xF0, 0x00, 0x0F, 255,
	})
	spr.xor[1] = true

	dst := make([]byte, 8)
	blendSprite(dst, 8, spr, 0, 0, 2, 1, true)

	// RGBA destination: R first, then G, B.
	if dst[0] != 30 || dst[1] != 20 || dst[2] != 10 {
		t.Fatalf("opaque pixel = %v, want sprite channels swapped to RGB order", dst[0:4])
	}
	if dst[4] != 0x0F || dst[6] != 0xF0 {
		t.Fatalf("XOR pixel = %v, want swapped XOR bytes", dst[4:8])
	}
}
