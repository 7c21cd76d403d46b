package gpucmd

import "github.com/gogpu/gputypes"

// SyncScope is a bitmask of pipeline stages participating in a barrier.
type SyncScope uint32

// SyncNone synchronizes against nothing.
const SyncNone SyncScope = 0

const (
	// SyncTransfer covers copy and fill operations.
	SyncTransfer SyncScope = 1 << iota
	// SyncCompute covers compute shader execution.
	SyncCompute
	// SyncVertex covers vertex input and vertex shading.
	SyncVertex
	// SyncFragment covers fragment shading and attachment output.
	SyncFragment
)

// SyncAll covers every stage.
const SyncAll SyncScope = ^SyncScope(0)

// AccessScope is a bitmask of memory access kinds participating in a barrier.
type AccessScope uint32

// AccessNone grants no access.
const AccessNone AccessScope = 0

const (
	// AccessRead covers all read access.
	AccessRead AccessScope = 1 << iota
	// AccessWrite covers all write access.
	AccessWrite
)

// MemoryBarrier orders memory accesses between two synchronization scopes.
// It is a plain value so it can be serialized verbatim into a command stream.
type MemoryBarrier struct {
	// SyncBefore and AccessBefore describe the work that must complete.
	SyncBefore   SyncScope
	AccessBefore AccessScope
	// SyncAfter and AccessAfter describe the work that must wait.
	SyncAfter   SyncScope
	AccessAfter AccessScope
}

// TextureBarrier transitions a texture between usages, making prior writes
// visible and reorganizing layout where the backend requires it.
type TextureBarrier struct {
	// Texture is the resource being transitioned.
	Texture Texture
	// OldUsage is the usage all prior work accessed the texture under.
	OldUsage gputypes.TextureUsage
	// NewUsage is the usage subsequent work will access the texture under.
	NewUsage gputypes.TextureUsage
}

// BufferCopy describes one region of a buffer-to-buffer copy.
type BufferCopy struct {
	// SrcOffset is the byte offset into the source buffer.
	SrcOffset uint64
	// DstOffset is the byte offset into the destination buffer.
	DstOffset uint64
	// Size is the number of bytes to copy.
	Size uint64
}

// TextureCopy describes one region of a texture-to-texture copy.
type TextureCopy struct {
	// SrcOrigin is the texel origin in the source texture.
	SrcOrigin gputypes.Origin3D
	// DstOrigin is the texel origin in the destination texture.
	DstOrigin gputypes.Origin3D
	// Size is the extent of the copied region.
	Size gputypes.Extent3D
	// SrcMipLevel and DstMipLevel select mip levels.
	SrcMipLevel uint32
	DstMipLevel uint32
}

// BufferTextureCopy describes one region of a copy between a buffer and a
// texture, in either direction.
type BufferTextureCopy struct {
	// BufferOffset is the byte offset into the buffer.
	BufferOffset uint64
	// BytesPerRow is the stride between texel rows in the buffer.
	BytesPerRow uint32
	// RowsPerImage is the number of rows per image layer in the buffer.
	RowsPerImage uint32
	// Origin is the texel origin in the texture.
	Origin gputypes.Origin3D
	// MipLevel selects the texture mip level.
	MipLevel uint32
	// Aspect selects which texture aspect is copied.
	Aspect gputypes.TextureAspect
	// Size is the extent of the copied region.
	Size gputypes.Extent3D
}

// Viewport defines the viewport transform for rasterization.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// ScissorRect restricts rasterization to a rectangle in target coordinates.
type ScissorRect struct {
	X, Y          uint32
	Width, Height uint32
}

// RenderDescriptor configures a render recording scope.
type RenderDescriptor struct {
	// Label is an optional debug label surfaced in logs and captures.
	Label string
	// Present marks the scope as targeting a swapchain, adding
	// QueuePresent to the buffer's queue-class mask.
	Present bool
}

// ColorAttachment describes one color target of a render pass.
type ColorAttachment struct {
	// Target receives rasterizer output.
	Target Texture
	// Resolve, if non-nil, receives the multisample resolve of Target.
	Resolve Texture
	// Load selects whether Target is loaded or cleared on pass begin.
	Load gputypes.LoadOp
	// Store selects whether Target contents persist after the pass.
	Store gputypes.StoreOp
	// ClearValue is used when Load is gputypes.LoadOpClear.
	ClearValue gputypes.Color
}

// DepthStencilAttachment describes the depth/stencil target of a render pass.
type DepthStencilAttachment struct {
	// Target is the depth/stencil texture.
	Target Texture
	// DepthLoad/DepthStore control the depth aspect.
	DepthLoad  gputypes.LoadOp
	DepthStore gputypes.StoreOp
	// DepthClear is used when DepthLoad is gputypes.LoadOpClear.
	DepthClear float32
	// StencilLoad/StencilStore control the stencil aspect.
	StencilLoad  gputypes.LoadOp
	StencilStore gputypes.StoreOp
	// StencilClear is used when StencilLoad is gputypes.LoadOpClear.
	StencilClear uint32
}

// RenderPassDescriptor configures a render pass begun inside a render scope.
type RenderPassDescriptor struct {
	// Width and Height give the render area in pixels.
	Width, Height uint32
	// ColorAttachments lists the color targets, in attachment order.
	ColorAttachments []ColorAttachment
	// DepthStencil is the optional depth/stencil target.
	DepthStencil *DepthStencilAttachment
}
