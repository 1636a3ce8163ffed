//go:build windows

package d3d

import (
	"fmt"
	"syscall"
	"unsafe"
)

// COM vtable calling infrastructure for D3D11/DXGI, pure Go (no CGO).
// A COM interface pointer is a pointer to a pointer to a vtable; methods
// are invoked by index with the interface pointer as the first argument.

// GUID is a COM GUID (128-bit).
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// IUnknown vtable indices, fixed by the COM ABI.
const (
	vtblQueryInterface = 0
	vtblAddRef         = 1
	vtblRelease        = 2
)

// VtblFn resolves a COM vtable function pointer by index.
func VtblFn(obj uintptr, idx int) uintptr {
	vtablePtr := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vtablePtr + uintptr(idx)*unsafe.Sizeof(uintptr(0))))
}

// Call invokes a COM vtable method at the given index and maps failure
// HRESULTs to an error.
func Call(obj uintptr, vtblIdx int, args ...uintptr) (uintptr, error) {
	allArgs := make([]uintptr, 0, 1+len(args))
	allArgs = append(allArgs, obj)
	allArgs = append(allArgs, args...)
	ret, _, _ := syscall.SyscallN(VtblFn(obj, vtblIdx), allArgs...)
	if int32(ret) < 0 {
		return ret, HRESULT(ret)
	}
	return ret, nil
}

// RawCall invokes a COM vtable method and returns the raw HRESULT without
// error mapping. Use when specific HRESULTs are expected flow control
// (e.g. DXGI_ERROR_WAIT_TIMEOUT).
func RawCall(obj uintptr, vtblIdx int, args ...uintptr) uintptr {
	allArgs := make([]uintptr, 0, 1+len(args))
	allArgs = append(allArgs, obj)
	allArgs = append(allArgs, args...)
	ret, _, _ := syscall.SyscallN(VtblFn(obj, vtblIdx), allArgs...)
	return ret
}

// QueryInterface narrows obj to the interface identified by iid.
func QueryInterface(obj uintptr, iid *GUID) (uintptr, error) {
	var out uintptr
	if _, err := Call(obj, vtblQueryInterface,
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)),
	); err != nil {
		return 0, fmt.Errorf("QueryInterface: %w", err)
	}
	return out, nil
}

// AddRef acquires an additional reference on a COM object.
func AddRef(obj uintptr) {
	if obj != 0 {
		syscall.SyscallN(VtblFn(obj, vtblAddRef), obj)
	}
}

// Release calls IUnknown::Release. Safe on zero handles.
func Release(obj uintptr) {
	if obj != 0 {
		syscall.SyscallN(VtblFn(obj, vtblRelease), obj)
	}
}
