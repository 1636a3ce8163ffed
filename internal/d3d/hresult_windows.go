//go:build windows

package d3d

import "strconv"

// HRESULT is a failed COM return code carried as an error value.
type HRESULT uintptr

// DXGI/D3D11 HRESULTs the capture pipeline dispatches on.
const (
	EInvalidArg              HRESULT = 0x80070057
	EAccessDenied            HRESULT = 0x80070005
	DXGIErrInvalidCall       HRESULT = 0x887A0001
	DXGIErrNotFound          HRESULT = 0x887A0002
	DXGIErrUnsupported       HRESULT = 0x887A0004
	DXGIErrDeviceRemoved     HRESULT = 0x887A0005
	DXGIErrDeviceReset       HRESULT = 0x887A0007
	DXGIErrAccessLost        HRESULT = 0x887A0026
	DXGIErrWaitTimeout       HRESULT = 0x887A0027
	DXGIErrSessionDisconnect HRESULT = 0x887A0028
	DXGIErrAccessDenied      HRESULT = 0x887A002B
)

func (e HRESULT) Error() string {
	switch e {
	case EInvalidArg:
		return "E_INVALIDARG"
	case EAccessDenied:
		return "E_ACCESSDENIED"
	case DXGIErrInvalidCall:
		return "DXGI_ERROR_INVALID_CALL"
	case DXGIErrNotFound:
		return "DXGI_ERROR_NOT_FOUND"
	case DXGIErrUnsupported:
		return "DXGI_ERROR_UNSUPPORTED"
	case DXGIErrDeviceRemoved:
		return "DXGI_ERROR_DEVICE_REMOVED"
	case DXGIErrDeviceReset:
		return "DXGI_ERROR_DEVICE_RESET"
	case DXGIErrAccessLost:
		return "DXGI_ERROR_ACCESS_LOST"
	case DXGIErrWaitTimeout:
		return "DXGI_ERROR_WAIT_TIMEOUT"
	case DXGIErrSessionDisconnect:
		return "DXGI_ERROR_SESSION_DISCONNECTED"
	case DXGIErrAccessDenied:
		return "DXGI_ERROR_ACCESS_DENIED"
	}
	return "HRESULT 0x" + strconv.FormatUint(uint64(e), 16)
}

// Failed reports whether hr carries a failure code.
func Failed(hr uintptr) bool {
	return int32(hr) < 0
}
