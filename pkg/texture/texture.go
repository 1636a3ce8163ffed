package texture

// Desc describes a texture's immutable basic properties.
//
// For the planar YUV444 formats, which are backed by a texture three planes
// tall, Height is the per-plane height rather than the native texture
// height.
type Desc struct {
	Width     int
	Height    int
	Format    ColorFormat
	ArraySize int
}

// Texture owns a GPU texture resource handle plus its description. It does
// not know about capture; whichever component last produced a Texture owns
// it, and handoff is a move. Clone acquires an additional COM reference for
// the rare cases where two owners are genuinely needed.
type Texture struct {
	handle uintptr
	desc   Desc
}

// New wraps an already-described texture handle. Ownership of the handle's
// reference moves to the returned Texture.
func New(handle uintptr, desc Desc) *Texture {
	return &Texture{handle: handle, desc: desc}
}

// Handle returns the raw resource handle, 0 after Release.
func (t *Texture) Handle() uintptr {
	return t.handle
}

// Desc returns the texture description.
func (t *Texture) Desc() Desc {
	return t.desc
}

// Release drops the texture's resource reference. Idempotent.
func (t *Texture) Release() {
	if t.handle != 0 {
		releaseHandle(t.handle)
		t.handle = 0
	}
}

// Clone returns a new Texture holding its own reference on the same
// underlying resource.
func (t *Texture) Clone() *Texture {
	if t.handle != 0 {
		addRefHandle(t.handle)
	}
	cp := *t
	return &cp
}
