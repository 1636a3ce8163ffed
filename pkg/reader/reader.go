// Package reader copies captured GPU textures into CPU memory, packing each
// pixel format's planes into a single contiguous buffer.
package reader

import (
	"errors"
	"fmt"

	"github.com/openscreens/desktopdup/pkg/texture"
)

var (
	// ErrUnsupportedFormat reports a texture format the reader has no CPU
	// plane layout for.
	ErrUnsupportedFormat = errors.New("reader: unsupported texture format")

	// ErrReadback reports a GPU readback failure.
	ErrReadback = errors.New("reader: texture readback failed")
)

// stager maps a GPU texture's contents into CPU-visible memory. data is
// valid until done is called; rows are rowPitch bytes apart and may carry
// driver padding past the pixel width.
type stager interface {
	readback(tex *texture.Texture) (data []byte, rowPitch int, done func(), err error)
	close()
}

// TextureReader copies textures into caller-provided byte buffers. Not
// safe for concurrent use.
type TextureReader struct {
	st stager
}

// GetData fills *buf with the texture's pixels, tightly packed with planes
// in their documented order, resizing *buf to the exact payload size. On
// error *buf is left untouched.
func (r *TextureReader) GetData(buf *[]byte, tex *texture.Texture) error {
	desc := tex.Desc()
	need := desc.Format.BufferSize(desc.Width, desc.Height)
	if need == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, desc.Format)
	}

	data, rowPitch, done, err := r.st.readback(tex)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadback, err)
	}
	defer done()

	if cap(*buf) < need {
		*buf = make([]byte, need)
	}
	*buf = (*buf)[:need]
	copyPixels(*buf, data, rowPitch, desc)
	return nil
}

// Close releases the reader's staging resources.
func (r *TextureReader) Close() {
	r.st.close()
}

// copyPixels packs the padded, plane-stacked readback layout into dst.
//
// Packed formats are h rows of w*bpp bytes. The semi-planar 4:2:0 formats
// are a full-height Y plane followed by a half-height interleaved UV plane
// starting at row h of the staging texture; both planes span the full
// pixel width. The planar 4:4:4 formats are three full-size planes stacked
// vertically.
func copyPixels(dst, src []byte, rowPitch int, desc texture.Desc) {
	w, h := desc.Width, desc.Height
	bpp := desc.Format.BytesPerPixel()
	rowBytes := w * bpp

	rows := h
	switch desc.Format.PlaneCount() {
	case 2:
		rows = h + h/2
	case 3:
		rows = 3 * h
	}
	for i := 0; i < rows; i++ {
		copy(dst[i*rowBytes:(i+1)*rowBytes], src[i*rowPitch:i*rowPitch+rowBytes])
	}
}
