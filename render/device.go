// Package render bridges compiled frame programs to the GPU layer. The
// host application owns the device and queue; this package receives
// them through DeviceHandle, describes the textures the evaluator
// needs, and serializes command programs into the wire layout the
// shader consumes.
package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sdfui/text"
)

// DeviceHandle provides GPU device access from the host application.
// The host creates the device and queue and hands them down; this
// package never creates its own.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so host
// frameworks built on the gpucontext ecosystem plug in directly.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no device behind it. Frames
// still compile against it; only upload and dispatch are skipped.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an unknown adapter for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

var _ DeviceHandle = NullDeviceHandle{}

// TextureUsage specifies how a texture can be used. Flags combine with
// bitwise OR.
type TextureUsage uint32

const (
	// TextureUsageCopySrc allows the texture to be used as a copy source.
	TextureUsageCopySrc TextureUsage = 1 << iota
	// TextureUsageCopyDst allows the texture to be used as a copy destination.
	TextureUsageCopyDst
	// TextureUsageTextureBinding allows binding the texture for sampling.
	TextureUsageTextureBinding
	// TextureUsageStorageBinding allows binding the texture for storage access.
	TextureUsageStorageBinding
	// TextureUsageRenderAttachment allows using the texture as a render attachment.
	TextureUsageRenderAttachment
)

// TextureDescriptor describes parameters for creating a texture,
// mirroring the WebGPU GPUTextureDescriptor.
type TextureDescriptor struct {
	Label         string
	Width         uint32
	Height        uint32
	Depth         uint32
	MipLevelCount uint32
	SampleCount   uint32
	Format        gputypes.TextureFormat
	Usage         TextureUsage
}

// FrameTargetDescriptor describes the storage texture the evaluator
// writes the finished frame into.
func FrameTargetDescriptor(width, height uint32) TextureDescriptor {
	return TextureDescriptor{
		Label:         "sdfui frame target",
		Width:         width,
		Height:        height,
		Depth:         1,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         TextureUsageStorageBinding | TextureUsageCopySrc,
	}
}

// GlyphAtlasDescriptor describes one font's glyph atlas texture. The
// atlas holds single-channel signed distance cells.
func GlyphAtlasDescriptor(font uint32) TextureDescriptor {
	return TextureDescriptor{
		Label:         fmt.Sprintf("sdfui glyph atlas %d", font),
		Width:         text.TextureSize,
		Height:        text.TextureSize,
		Depth:         1,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         TextureUsageTextureBinding | TextureUsageCopyDst,
	}
}

// Texture is a GPU texture resource owned by the backend.
type Texture interface {
	Width() uint32
	Height() uint32
	Format() gputypes.TextureFormat
	Destroy()
}
