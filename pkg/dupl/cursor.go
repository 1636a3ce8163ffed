package dupl

import "fmt"

// sprite is a decoded cursor image: straight-alpha BGRA pixels plus a
// per-pixel flag marking XOR-with-screen pixels (inverting cursors).
type sprite struct {
	w, h int
	pix  []byte // BGRA, straight alpha
	xor  []bool // len w*h; true = XOR pix RGB into the destination
}

// decodeShape converts a raw pointer shape into a sprite. The encoding is
// discovered at runtime from the shape's kind tag.
func decodeShape(s *PointerShape) (*sprite, error) {
	switch s.Kind {
	case ShapeColor:
		return decodeColor(s)
	case ShapeMonochrome:
		return decodeMonochrome(s)
	case ShapeMaskedColor:
		return decodeMaskedColor(s)
	}
	return nil, fmt.Errorf("cursor shape type %#x: %w", uint32(s.Kind), ErrUnsupportedCursorShape)
}

// decodeColor handles 32bpp straight-alpha BGRA sprites.
func decodeColor(s *PointerShape) (*sprite, error) {
	if err := checkShapeBuffer(s, s.Height, 4*s.Width); err != nil {
		return nil, err
	}
	spr := newSprite(s.Width, s.Height)
	for y := 0; y < s.Height; y++ {
		copy(spr.pix[y*s.Width*4:(y+1)*s.Width*4], s.Data[y*s.Pitch:])
	}
	return spr, nil
}

// decodeMonochrome handles the legacy two-mask encoding: an AND bitmask
// over the screen followed by an XOR bitmask, MSB-first, each Height/2
// rows tall. AND=0 pixels replace the screen with the XOR color (black or
// white); AND=1,XOR=1 pixels invert the screen.
func decodeMonochrome(s *PointerShape) (*sprite, error) {
	h := s.Height / 2
	if h == 0 {
		return nil, fmt.Errorf("monochrome cursor with height %d: %w", s.Height, ErrUnsupportedCursorShape)
	}
	if err := checkShapeBuffer(s, 2*h, (s.Width+7)/8); err != nil {
		return nil, err
	}
	spr := newSprite(s.Width, h)
	for y := 0; y < h; y++ {
		andRow := s.Data[y*s.Pitch:]
		xorRow := s.Data[(h+y)*s.Pitch:]
		for x := 0; x < s.Width; x++ {
			bit := byte(0x80) >> (x % 8)
			and := andRow[x/8]&bit != 0
			xor := xorRow[x/8]&bit != 0
			i := (y*s.Width + x) * 4
			switch {
			case and && xor:
				// Invert the screen pixel.
				spr.pix[i+0] = 0xFF
				spr.pix[i+1] = 0xFF
				spr.pix[i+2] = 0xFF
				spr.xor[y*s.Width+x] = true
			case and:
				// Transparent: alpha stays 0.
			default:
				v := byte(0)
				if xor {
					v = 0xFF
				}
				spr.pix[i+0] = v
				spr.pix[i+1] = v
				spr.pix[i+2] = v
				spr.pix[i+3] = 0xFF
			}
		}
	}
	return spr, nil
}

// decodeMaskedColor handles 32bpp color sprites whose alpha byte is a
// mask: 0 replaces the screen pixel, 0xFF XORs the color into it.
func decodeMaskedColor(s *PointerShape) (*sprite, error) {
	if err := checkShapeBuffer(s, s.Height, 4*s.Width); err != nil {
		return nil, err
	}
	spr := newSprite(s.Width, s.Height)
	for y := 0; y < s.Height; y++ {
		row := s.Data[y*s.Pitch:]
		for x := 0; x < s.Width; x++ {
			i := (y*s.Width + x) * 4
			spr.pix[i+0] = row[x*4+0]
			spr.pix[i+1] = row[x*4+1]
			spr.pix[i+2] = row[x*4+2]
			if row[x*4+3] != 0 {
				spr.xor[y*s.Width+x] = true
			} else {
				spr.pix[i+3] = 0xFF
			}
		}
	}
	return spr, nil
}

func newSprite(w, h int) *sprite {
	return &sprite{w: w, h: h, pix: make([]byte, w*h*4), xor: make([]bool, w*h)}
}

func checkShapeBuffer(s *PointerShape, rows, minRowBytes int) error {
	if s.Width <= 0 || rows <= 0 || s.Pitch < minRowBytes || len(s.Data) < rows*s.Pitch {
		return fmt.Errorf("cursor shape buffer %dx%d pitch %d len %d: %w",
			s.Width, s.Height, s.Pitch, len(s.Data), ErrUnsupportedCursorShape)
	}
	return nil
}

// clampRegion clips a sw×sh sprite placed at (x, y) to a fw×fh frame.
// Returns the destination origin, the sprite-space origin and the size of
// the visible region; w or h <= 0 means fully off-screen.
func clampRegion(x, y, sw, sh, fw, fh int) (dx, dy, sx, sy, w, h int) {
	dx, dy = x, y
	if dx < 0 {
		sx = -dx
		dx = 0
	}
	if dy < 0 {
		sy = -dy
		dy = 0
	}
	w = sw - sx
	if dx+w > fw {
		w = fw - dx
	}
	h = sh - sy
	if dy+h > fh {
		h = fh - dy
	}
	return
}

// blendSprite alpha-blends the sprite sub-region starting at (sx, sy) of
// size w×h onto a mapped 8-bit packed pixel region. XOR pixels invert/XOR
// the destination instead of blending. swapRB reorders the sprite's BGRA
// channels for RGBA destinations.
func blendSprite(dst []byte, stride int, spr *sprite, sx, sy, w, h int, swapRB bool) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := ((sy+y)*spr.w + sx + x) * 4
			di := y*stride + x*4
			b, g, r := spr.pix[si+0], spr.pix[si+1], spr.pix[si+2]
			if swapRB {
				b, r = r, b
			}
			if spr.xor[(sy+y)*spr.w+sx+x] {
				dst[di+0] ^= b
				dst[di+1] ^= g
				dst[di+2] ^= r
				dst[di+3] = 0xFF
				continue
			}
			a := int(spr.pix[si+3])
			if a == 0 {
				continue
			}
			if a == 255 {
				dst[di+0], dst[di+1], dst[di+2], dst[di+3] = b, g, r, 0xFF
				continue
			}
			src := [3]byte{b, g, r}
			for c := 0; c < 3; c++ {
				dst[di+c] = byte((int(src[c])*a + int(dst[di+c])*(255-a)) / 255)
			}
			dst[di+3] = 0xFF
		}
	}
}
