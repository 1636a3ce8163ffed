package dupl

// ShapeKind tags the raw encoding of a pointer shape update. Values match
// DXGI_OUTDUPL_POINTER_SHAPE_TYPE.
type ShapeKind uint32

const (
	// ShapeMonochrome is a 1bpp AND mask followed by a 1bpp XOR mask,
	// each half the reported height.
	ShapeMonochrome ShapeKind = 0x1

	// ShapeColor is 32bpp BGRA with straight alpha.
	ShapeColor ShapeKind = 0x2

	// ShapeMaskedColor is 32bpp BGR plus a mask byte: 0 replaces the
	// screen pixel, 0xFF XORs it.
	ShapeMaskedColor ShapeKind = 0x4
)

// PointerShape is a raw cursor sprite update as delivered by the OS.
type PointerShape struct {
	Kind     ShapeKind
	Width    int
	Height   int
	Pitch    int
	HotspotX int
	HotspotY int
	Data     []byte
}

// CursorDelta is the incremental cursor metadata accumulated with one
// acquisition. A zero UpdateTime means the cursor did not change this
// frame; Shape is non-nil only when the OS reports a new sprite.
type CursorDelta struct {
	UpdateTime int64
	Visible    bool
	X, Y       int
	Shape      *PointerShape
}

// FrameInfo is the timing metadata returned alongside a frame.
type FrameInfo struct {
	// PresentTime is the QPC time the desktop image was last presented,
	// 0 when the acquisition carried only cursor metadata.
	PresentTime int64

	// AccumulatedFrames counts desktop updates coalesced into this frame.
	AccumulatedFrames int

	Cursor CursorDelta
}
