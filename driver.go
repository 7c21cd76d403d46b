package gpucmd

import "github.com/gogpu/gputypes"

// CommandBuffer is the recording surface backends implement. Work is
// recorded inside typed scopes: a scope is opened with a Begin method,
// commands are recorded through the returned encoder, and the scope is
// closed with the matching End method. At most one scope may be open at a
// time, and Begin/End pairs must match; violating either is a programmer
// error and panics.
//
// Recording is single-threaded: a CommandBuffer and its encoders must only
// be mutated by one goroutine at a time. The resources a recording retains
// may be released from any goroutine (see Resource).
type CommandBuffer interface {
	// BeginTransferCommands opens a transfer scope and adds QueueTransfer
	// to the queue-class mask.
	BeginTransferCommands() TransferEncoder

	// EndTransferCommands closes the transfer scope opened by
	// BeginTransferCommands. The encoder must not be used afterwards.
	EndTransferCommands(enc TransferEncoder)

	// BeginComputeCommands opens a compute scope and adds QueueCompute
	// to the queue-class mask.
	BeginComputeCommands() ComputeEncoder

	// EndComputeCommands closes the compute scope.
	EndComputeCommands(enc ComputeEncoder)

	// BeginRenderCommands opens a render scope and adds QueueRender (plus
	// QueuePresent when desc.Present is set) to the queue-class mask.
	// A nil desc is equivalent to a zero RenderDescriptor.
	BeginRenderCommands(desc *RenderDescriptor) RenderEncoder

	// EndRenderCommands closes the render scope. Any render pass begun
	// inside the scope must already have ended.
	EndRenderCommands(enc RenderEncoder)

	// QueueClasses returns the accumulated queue-class mask.
	QueueClasses() QueueClassMask

	// Err returns the first failure recorded so far, or nil. Recording
	// methods do not return errors individually; storage exhaustion and
	// similar environment failures stick to the buffer and surface here.
	// A buffer with a non-nil Err holds an incomplete recording and must
	// not be submitted.
	Err() error

	// Reset discards all recorded commands and releases every resource the
	// recording retained, returning the buffer to its freshly created
	// state. The caller must guarantee that any prior submission of this
	// buffer has finished executing on the GPU.
	Reset()
}

// TransferEncoder records operations legal in a transfer scope: barriers,
// copies, and fills.
type TransferEncoder interface {
	// PipelineBarrier inserts global memory barriers.
	PipelineBarrier(barriers []MemoryBarrier)

	// TransitionTextures transitions textures between usages.
	TransitionTextures(transitions []TextureBarrier)

	// CopyBufferToBuffer copies regions between buffers.
	CopyBufferToBuffer(src, dst Buffer, regions []BufferCopy)

	// CopyTextureToTexture copies regions between textures.
	CopyTextureToTexture(src, dst Texture, regions []TextureCopy)

	// CopyBufferToTexture uploads buffer contents into a texture.
	CopyBufferToTexture(src Buffer, dst Texture, regions []BufferTextureCopy)

	// CopyTextureToBuffer reads texture contents back into a buffer.
	CopyTextureToBuffer(src Texture, dst Buffer, regions []BufferTextureCopy)

	// FillBuffer writes size copies of value starting at offset.
	FillBuffer(dst Buffer, offset, size uint64, value byte)
}

// ComputeEncoder records operations legal in a compute scope. Every
// transfer operation is also legal here.
type ComputeEncoder interface {
	TransferEncoder

	// SetComputePipeline binds a compute pipeline for subsequent dispatches.
	SetComputePipeline(p Pipeline)

	// SetBindGroup binds a group of resources at the given index.
	// dynamicOffsets may be nil when the group has no dynamic bindings.
	SetBindGroup(index uint32, group BindGroup, dynamicOffsets []uint32)

	// Dispatch launches x*y*z workgroups of the bound compute pipeline.
	Dispatch(x, y, z uint32)

	// DispatchIndirect launches workgroups with counts read from args at
	// the given byte offset.
	DispatchIndirect(args Buffer, offset uint64)
}

// RenderEncoder records operations legal in a render scope. Transfer and
// compute operations remain legal outside an open render pass; draws and
// dynamic state require a pass.
type RenderEncoder interface {
	ComputeEncoder

	// BeginRenderPass opens a render pass over the described attachments.
	// Only one pass may be open at a time.
	BeginRenderPass(desc *RenderPassDescriptor) RenderPassEncoder

	// EndRenderPass closes the pass opened by BeginRenderPass.
	EndRenderPass(pass RenderPassEncoder)
}

// RenderPassEncoder records operations legal inside a render pass:
// pipeline and resource binds, dynamic state, and draws.
type RenderPassEncoder interface {
	// SetRenderPipeline binds a render pipeline for subsequent draws.
	SetRenderPipeline(p Pipeline)

	// SetRenderState sets the packed fixed-function state.
	SetRenderState(state PackedRenderState)

	// SetBindGroup binds a group of resources at the given index.
	SetBindGroup(index uint32, group BindGroup, dynamicOffsets []uint32)

	// SetVertexBuffer binds a vertex buffer at the given input slot.
	SetVertexBuffer(slot uint32, buf Buffer, offset uint64)

	// SetIndexBuffer binds the index buffer.
	SetIndexBuffer(buf Buffer, format gputypes.IndexFormat, offset uint64)

	// SetViewport sets the viewport transform.
	SetViewport(vp Viewport)

	// SetScissor sets the scissor rectangle.
	SetScissor(rect ScissorRect)

	// SetBlendConstant sets the constant blend color.
	SetBlendConstant(color gputypes.Color)

	// SetStencilReference sets the stencil reference value.
	SetStencilReference(ref uint32)

	// Draw draws unindexed primitives.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)

	// DrawIndexed draws indexed primitives.
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)

	// DrawIndirect draws primitives with parameters read from args at the
	// given byte offset.
	DrawIndirect(args Buffer, offset uint64)
}
