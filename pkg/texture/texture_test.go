package texture

import "testing"

func TestTextureReleaseZeroesHandle(t *testing.T) {
	tex := New(42, Desc{Width: 8, Height: 8, Format: BGRA8, ArraySize: 1})
	if tex.Handle() != 42 {
		t.Fatalf("Handle = %d, want 42", tex.Handle())
	}
	tex.Release()
	if tex.Handle() != 0 {
		t.Fatal("Release should zero the handle")
	}
	tex.Release() // idempotent
}

func TestCloneIsIndependentlyReleasable(t *testing.T) {
	tex := New(42, Desc{Width: 8, Height: 8, Format: BGRA8, ArraySize: 1})
	cp := tex.Clone()
	tex.Release()
	if cp.Handle() != 42 {
		t.Fatalf("clone handle = %d, want 42", cp.Handle())
	}
	if cp.Desc() != tex.Desc() {
		t.Fatal("clone should carry the same description")
	}
	cp.Release()
}
