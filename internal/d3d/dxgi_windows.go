//go:build windows

package d3d

import "golang.org/x/sys/windows"

// DLL procs shared by the capture packages.
var (
	modD3D11 = windows.NewLazySystemDLL("d3d11.dll")
	modDXGI  = windows.NewLazySystemDLL("dxgi.dll")

	ProcD3D11CreateDevice  = modD3D11.NewProc("D3D11CreateDevice")
	ProcCreateDXGIFactory1 = modDXGI.NewProc("CreateDXGIFactory1")
)

// D3D11/DXGI constants.
const (
	D3DDriverTypeUnknown  = 0
	D3DDriverTypeHardware = 1
	D3DFeatureLevel11_0   = 0xb000
	D3D11SDKVersion       = 7

	D3D11CreateDeviceBGRASupport = 0x20

	D3D11UsageDefault = 0
	D3D11UsageStaging = 3

	D3D11BindRenderTarget = 0x20

	D3D11CPUAccessWrite = 0x10000
	D3D11CPUAccessRead  = 0x20000

	D3D11MapRead      = 1
	D3D11MapReadWrite = 3
)

// DXGI_FORMAT values understood by the pipeline.
const (
	FormatR16G16B16A16Float = 10
	FormatR10G10B10A2UNorm  = 24
	FormatR8G8B8A8UNorm     = 28
	FormatR16UNorm          = 56
	FormatR8UNorm           = 61
	FormatB8G8R8A8UNorm     = 87
	FormatAYUV              = 100
	FormatY410              = 101
	FormatNV12              = 103
	FormatP010              = 104
)

// DXGI_MODE_ROTATION values.
const (
	RotationUnspecified = 0
	RotationIdentity    = 1
	RotationRotate90    = 2
	RotationRotate180   = 3
	RotationRotate270   = 4
)

// DXGI_OUTDUPL_POINTER_SHAPE_TYPE values.
const (
	PointerShapeMonochrome  = 0x1
	PointerShapeColor       = 0x2
	PointerShapeMaskedColor = 0x4
)

// COM vtable indices, fixed by the COM ABI and the interface inheritance
// chains (IDXGIObject occupies 3..6 after IUnknown).
const (
	DXGIFactoryEnumAdapters  = 7  // IDXGIFactory
	DXGIFactoryEnumAdapters1 = 12 // IDXGIFactory1

	DXGIAdapterEnumOutputs = 7  // IDXGIAdapter
	DXGIAdapterGetDesc1    = 10 // IDXGIAdapter1

	DXGIDeviceGetAdapter = 7 // IDXGIDevice

	DXGIOutputGetDesc          = 7  // IDXGIOutput
	DXGIOutputWaitForVBlank    = 10 // IDXGIOutput
	DXGIOutput1DuplicateOutput = 22 // IDXGIOutput1

	DXGIDuplGetDesc              = 7  // IDXGIOutputDuplication
	DXGIDuplAcquireNextFrame     = 8  // IDXGIOutputDuplication
	DXGIDuplGetFramePointerShape = 11 // IDXGIOutputDuplication
	DXGIDuplReleaseFrame         = 14 // IDXGIOutputDuplication

	D3D11DeviceCreateTexture2D = 5 // ID3D11Device

	D3D11CtxMap                   = 14  // ID3D11DeviceContext
	D3D11CtxUnmap                 = 15  // ID3D11DeviceContext
	D3D11CtxCopySubresourceRegion = 46  // ID3D11DeviceContext
	D3D11CtxCopyResource          = 47  // ID3D11DeviceContext
	D3D11CtxFlush                 = 111 // ID3D11DeviceContext

	D3D11Texture2DGetDesc = 10 // ID3D11Texture2D (after ID3D11Resource)
)

// COM GUIDs for the interfaces reached via QueryInterface.
var (
	IIDIDXGIDevice     = GUID{0x54ec77fa, 0x1377, 0x44e6, [8]byte{0x8c, 0x32, 0x88, 0xfd, 0x5f, 0x44, 0xc8, 0x4c}}
	IIDIDXGIFactory1   = GUID{0x770aae78, 0xf26f, 0x4dba, [8]byte{0xa8, 0x29, 0x25, 0x3c, 0x83, 0xd1, 0xb3, 0x87}}
	IIDIDXGIAdapter1   = GUID{0x29038f61, 0x3839, 0x4626, [8]byte{0x91, 0xfd, 0x08, 0x68, 0x79, 0x01, 0x1a, 0x05}}
	IIDIDXGIOutput1    = GUID{0x00cddea8, 0x939b, 0x4b83, [8]byte{0xa3, 0x40, 0xa6, 0x85, 0x22, 0x66, 0x66, 0xcc}}
	IIDID3D11Texture2D = GUID{0x6f15aaf2, 0xd208, 0x4e89, [8]byte{0x9a, 0xb4, 0x48, 0x95, 0x35, 0xd3, 0x4f, 0x9c}}
)

// Point matches POINT.
type Point struct {
	X int32
	Y int32
}

// Rect matches RECT.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Luid matches LUID.
type Luid struct {
	LowPart  uint32
	HighPart int32
}

// Rational matches DXGI_RATIONAL.
type Rational struct {
	Numerator   uint32
	Denominator uint32
}

// ModeDesc matches DXGI_MODE_DESC.
type ModeDesc struct {
	Width            uint32
	Height           uint32
	RefreshRate      Rational
	Format           uint32
	ScanlineOrdering uint32
	Scaling          uint32
}

// AdapterDesc1 matches DXGI_ADAPTER_DESC1.
type AdapterDesc1 struct {
	Description           [128]uint16
	VendorID              uint32
	DeviceID              uint32
	SubSysID              uint32
	Revision              uint32
	DedicatedVideoMemory  uintptr
	DedicatedSystemMemory uintptr
	SharedSystemMemory    uintptr
	AdapterLuid           Luid
	Flags                 uint32
}

// OutputDesc matches DXGI_OUTPUT_DESC.
type OutputDesc struct {
	DeviceName         [32]uint16
	DesktopCoordinates Rect
	AttachedToDesktop  int32 // BOOL
	Rotation           uint32
	Monitor            uintptr
}

// OutDuplDesc matches DXGI_OUTDUPL_DESC.
type OutDuplDesc struct {
	ModeDesc                   ModeDesc
	Rotation                   uint32
	DesktopImageInSystemMemory int32 // BOOL
}

// PointerPosition matches DXGI_OUTDUPL_POINTER_POSITION.
type PointerPosition struct {
	Position Point
	Visible  int32 // BOOL
}

// OutDuplFrameInfo matches DXGI_OUTDUPL_FRAME_INFO.
type OutDuplFrameInfo struct {
	LastPresentTime           int64
	LastMouseUpdateTime       int64
	AccumulatedFrames         uint32
	RectsCoalesced            int32
	ProtectedContentMaskedOut int32
	PointerPosition           PointerPosition
	TotalMetadataBufferSize   uint32
	PointerShapeBufferSize    uint32
}

// PointerShapeInfo matches DXGI_OUTDUPL_POINTER_SHAPE_INFO.
type PointerShapeInfo struct {
	Type    uint32
	Width   uint32
	Height  uint32
	Pitch   uint32
	HotSpot Point
}

// Texture2DDesc matches D3D11_TEXTURE2D_DESC (44 bytes).
type Texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleCount    uint32 // DXGI_SAMPLE_DESC.Count
	SampleQuality  uint32 // DXGI_SAMPLE_DESC.Quality
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

// MappedSubresource matches D3D11_MAPPED_SUBRESOURCE.
type MappedSubresource struct {
	PData      uintptr
	RowPitch   uint32
	DepthPitch uint32
}

// Box matches D3D11_BOX.
type Box struct {
	Left   uint32
	Top    uint32
	Front  uint32
	Right  uint32
	Bottom uint32
	Back   uint32
}
