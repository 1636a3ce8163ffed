package reader

import (
	"testing"

	"github.com/openscreens/desktopdup/pkg/texture"
)

func TestPoolReusesStagingTextures(t *testing.T) {
	created := 0
	pool := newTexturePool(
		func(texture.Desc) (uintptr, error) {
			created++
			return uintptr(created), nil
		},
		func(uintptr) {},
	)

	desc := texture.Desc{Width: 1920, Height: 1080, Format: texture.BGRA8, ArraySize: 1}
	for i := 0; i < 50; i++ {
		if _, err := pool.get(desc); err != nil {
			t.Fatal(err)
		}
	}
	if created != 1 {
		t.Fatalf("created = %d, want 1", created)
	}
}

func TestPoolBoundsLiveTextures(t *testing.T) {
	live := map[uintptr]bool{}
	next := uintptr(0)
	pool := newTexturePool(
		func(texture.Desc) (uintptr, error) {
			next++
			live[next] = true
			return next, nil
		},
		func(h uintptr) { delete(live, h) },
	)

	for i := 0; i < 50; i++ {
		desc := texture.Desc{Width: 100 + i, Height: 100, Format: texture.BGRA8, ArraySize: 1}
		if _, err := pool.get(desc); err != nil {
			t.Fatal(err)
		}
		if len(live) > maxPooled {
			t.Fatalf("live textures = %d after %d descriptions, bound is %d",
				len(live), i+1, maxPooled)
		}
	}

	pool.close()
	if len(live) != 0 {
		t.Fatalf("close left %d textures live", len(live))
	}
}
