package dupl

import (
	"log/slog"

	"github.com/openscreens/desktopdup/pkg/texture"
)

// regionBlender maps a rectangular region of a frame texture into CPU
// memory, lets fn mutate it in place and writes it back.
type regionBlender interface {
	blendRegion(tex *texture.Texture, x, y, w, h int, fn func(pix []byte, stride int)) error
}

// Compositor reconstructs a persistent cursor overlay from the incremental
// shape/position deltas carried by acquisitions and blends it onto frames.
// State persists across frames: an acquisition with no cursor update still
// renders the last known cursor.
type Compositor struct {
	visible    bool
	x, y       int
	shape      *sprite
	generation uint64
}

// Update applies an incremental cursor delta. Position and visibility
// change on every mouse update; the sprite is decoded only when the delta
// carries a shape. An unrecognized shape encoding is reported but the
// previous sprite is retained, so blending continues with stale shape data
// rather than aborting the frame pipeline.
func (cc *Compositor) Update(delta CursorDelta) error {
	if delta.UpdateTime != 0 {
		cc.visible = delta.Visible
		cc.x, cc.y = delta.X, delta.Y
	}
	if delta.Shape == nil {
		return nil
	}
	spr, err := decodeShape(delta.Shape)
	if err != nil {
		return err
	}
	cc.shape = spr
	cc.generation++
	return nil
}

// Generation counts successful sprite decodes. Position-only updates do
// not advance it.
func (cc *Compositor) Generation() uint64 { return cc.generation }

// Visible reports the tracked cursor visibility.
func (cc *Compositor) Visible() bool { return cc.visible }

// Position returns the tracked cursor position in frame coordinates.
func (cc *Compositor) Position() (x, y int) { return cc.x, cc.y }

// Blend alpha-blends the cursor onto frame at the stored position, clipped
// to the frame bounds. No-op when the cursor is hidden, no shape has been
// seen yet, or the cursor is fully off-screen.
func (cc *Compositor) Blend(b regionBlender, frame *texture.Texture) error {
	if !cc.visible || cc.shape == nil {
		return nil
	}
	desc := frame.Desc()
	// The sprite math is 8-bit per channel; only the two byte-per-channel
	// packed layouts can take it. 10-bit packed (RGBA10, Y410), float
	// (RGBA16F) and video formats pass through unblended.
	var swapRB bool
	switch desc.Format {
	case texture.BGRA8:
	case texture.RGBA8:
		swapRB = true
	default:
		slog.Debug("skipping cursor blend for frame format", "format", desc.Format)
		return nil
	}
	dx, dy, sx, sy, w, h := clampRegion(cc.x, cc.y, cc.shape.w, cc.shape.h, desc.Width, desc.Height)
	if w <= 0 || h <= 0 {
		return nil
	}
	return b.blendRegion(frame, dx, dy, w, h, func(pix []byte, stride int) {
		blendSprite(pix, stride, cc.shape, sx, sy, w, h, swapRB)
	})
}
