package texture

import "fmt"

// Orientation is the rotation applied to a display relative to its native
// texture layout. A rotated display reports swapped width/height to callers
// so the effective dimensions always match what the captured texture
// actually contains.
type Orientation uint32

const (
	Identity Orientation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (o Orientation) String() string {
	switch o {
	case Identity:
		return "identity"
	case Rotate90:
		return "rotated90"
	case Rotate180:
		return "rotated180"
	case Rotate270:
		return "rotated270"
	}
	return fmt.Sprintf("Orientation(%d)", uint32(o))
}

// Swapped reports whether the display's effective width/height are swapped
// relative to the underlying texture's native dimensions.
func (o Orientation) Swapped() bool {
	return o == Rotate90 || o == Rotate270
}

// Apply returns the effective (width, height) for a native w×h texture
// under this orientation.
func (o Orientation) Apply(w, h int) (int, int) {
	if o.Swapped() {
		return h, w
	}
	return w, h
}

// FromDXGIRotation maps a DXGI_MODE_ROTATION value. DXGI's "unspecified"
// (0) is treated as identity.
func FromDXGIRotation(v uint32) Orientation {
	switch v {
	case 2:
		return Rotate90
	case 3:
		return Rotate180
	case 4:
		return Rotate270
	}
	return Identity
}
