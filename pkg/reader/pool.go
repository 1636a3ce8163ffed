package reader

import "github.com/openscreens/desktopdup/pkg/texture"

// maxPooled bounds the staging textures kept alive. Readback descriptions
// rarely vary (resolution or format changes), so a handful covers steady
// state without unbounded GPU memory growth when they do.
const maxPooled = 4

// texturePool caches staging textures by description so steady-state
// readback allocates nothing on the GPU.
type texturePool struct {
	create  func(desc texture.Desc) (uintptr, error)
	destroy func(handle uintptr)
	entries map[texture.Desc]uintptr
}

func newTexturePool(create func(texture.Desc) (uintptr, error), destroy func(uintptr)) *texturePool {
	return &texturePool{
		create:  create,
		destroy: destroy,
		entries: make(map[texture.Desc]uintptr),
	}
}

func (p *texturePool) get(desc texture.Desc) (uintptr, error) {
	if handle, ok := p.entries[desc]; ok {
		return handle, nil
	}
	handle, err := p.create(desc)
	if err != nil {
		return 0, err
	}
	if len(p.entries) >= maxPooled {
		for k, v := range p.entries {
			p.destroy(v)
			delete(p.entries, k)
			break
		}
	}
	p.entries[desc] = handle
	return handle, nil
}

func (p *texturePool) close() {
	for k, v := range p.entries {
		p.destroy(v)
		delete(p.entries, k)
	}
}
