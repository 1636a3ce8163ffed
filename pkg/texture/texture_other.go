//go:build !windows

package texture

// Texture handles only reference live GPU resources on Windows; elsewhere
// they are inert wrappers used by tests and fakes.

func releaseHandle(uintptr) {}
func addRefHandle(uintptr)  {}
