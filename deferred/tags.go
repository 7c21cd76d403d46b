package deferred

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpucmd"
	"github.com/gogpu/gpucmd/packet"
)

// InvalidSlot marks an absent resource in a serialized command, such as a
// color attachment with no resolve target. It is never a valid index into a
// buffer's dependency table.
const InvalidSlot = ^uint32(0)

// Command tags. The decode table in decoder.go and the payload structs below
// are keyed by these values; append new tags at the end of a group rather
// than renumbering.
const (
	cmdBeginTransfer packet.Tag = iota
	cmdEndTransfer
	cmdBeginCompute
	cmdEndCompute
	cmdBeginRender
	cmdEndRender

	// Transfer commands
	cmdPipelineBarrier
	cmdTransitionTextures
	cmdCopyBufferToBuffer
	cmdCopyTextureToTexture
	cmdCopyBufferToTexture
	cmdCopyTextureToBuffer
	cmdFillBuffer

	// Compute commands
	cmdSetComputePipeline
	cmdSetBindGroup
	cmdDispatch
	cmdDispatchIndirect

	// Render commands
	cmdBeginRenderPass
	cmdEndRenderPass
	cmdSetRenderPipeline
	cmdSetRenderState
	cmdSetVertexBuffer
	cmdSetIndexBuffer
	cmdSetViewport
	cmdSetScissor
	cmdSetBlendConstant
	cmdSetStencilReference
	cmdDraw
	cmdDrawIndexed
	cmdDrawIndirect
)

// tagNames maps command tags to their string representation.
var tagNames = [...]string{
	cmdBeginTransfer:        "BeginTransfer",
	cmdEndTransfer:          "EndTransfer",
	cmdBeginCompute:         "BeginCompute",
	cmdEndCompute:           "EndCompute",
	cmdBeginRender:          "BeginRender",
	cmdEndRender:            "EndRender",
	cmdPipelineBarrier:      "PipelineBarrier",
	cmdTransitionTextures:   "TransitionTextures",
	cmdCopyBufferToBuffer:   "CopyBufferToBuffer",
	cmdCopyTextureToTexture: "CopyTextureToTexture",
	cmdCopyBufferToTexture:  "CopyBufferToTexture",
	cmdCopyTextureToBuffer:  "CopyTextureToBuffer",
	cmdFillBuffer:           "FillBuffer",
	cmdSetComputePipeline:   "SetComputePipeline",
	cmdSetBindGroup:         "SetBindGroup",
	cmdDispatch:             "Dispatch",
	cmdDispatchIndirect:     "DispatchIndirect",
	cmdBeginRenderPass:      "BeginRenderPass",
	cmdEndRenderPass:        "EndRenderPass",
	cmdSetRenderPipeline:    "SetRenderPipeline",
	cmdSetRenderState:       "SetRenderState",
	cmdSetVertexBuffer:      "SetVertexBuffer",
	cmdSetIndexBuffer:       "SetIndexBuffer",
	cmdSetViewport:          "SetViewport",
	cmdSetScissor:           "SetScissor",
	cmdSetBlendConstant:     "SetBlendConstant",
	cmdSetStencilReference:  "SetStencilReference",
	cmdDraw:                 "Draw",
	cmdDrawIndexed:          "DrawIndexed",
	cmdDrawIndirect:         "DrawIndirect",
}

// tagName returns the string representation of a command tag.
func tagName(t packet.Tag) string {
	if int(t) < len(tagNames) && tagNames[t] != "" {
		return tagNames[t]
	}
	return "Unknown"
}

// Payload structs, one per tag that carries arguments. Every field is a
// fixed-size value; resources appear as dependency-table slots and
// variable-length arguments follow as trailing spans whose lengths are
// carried in the payload. These shapes are the wire format: changing one
// invalidates any stream recorded before the change.

// beginRenderCmd is followed by LabelLen bytes of UTF-8 label.
type beginRenderCmd struct {
	Present  uint32
	LabelLen uint32
}

// barrierListCmd is followed by Count gpucmd.MemoryBarrier values.
type barrierListCmd struct {
	Count uint32
}

// transitionListCmd is followed by Count textureTransition values.
type transitionListCmd struct {
	Count uint32
}

type textureTransition struct {
	Slot     uint32
	OldUsage gputypes.TextureUsage
	NewUsage gputypes.TextureUsage
}

// copyCmd is followed by Count region values; the region type depends on
// the tag (BufferCopy, TextureCopy, or BufferTextureCopy).
type copyCmd struct {
	SrcSlot uint32
	DstSlot uint32
	Count   uint32
}

type fillBufferCmd struct {
	DstSlot uint32
	Value   uint32
	Offset  uint64
	Size    uint64
}

type setPipelineCmd struct {
	Slot uint32
}

// setBindGroupCmd is followed by OffsetCount uint32 dynamic offsets.
type setBindGroupCmd struct {
	Index       uint32
	Slot        uint32
	OffsetCount uint32
}

type dispatchCmd struct {
	X, Y, Z uint32
}

type indirectCmd struct {
	Slot   uint32
	Offset uint64
}

// beginRenderPassCmd is followed by ColorCount colorTarget values and, when
// HasDepth is nonzero, one depthTarget value.
type beginRenderPassCmd struct {
	Width      uint32
	Height     uint32
	ColorCount uint32
	HasDepth   uint32
}

type colorTarget struct {
	TargetSlot  uint32
	ResolveSlot uint32
	Load        gputypes.LoadOp
	Store       gputypes.StoreOp
	ClearValue  gputypes.Color
}

type depthTarget struct {
	TargetSlot   uint32
	DepthLoad    gputypes.LoadOp
	DepthStore   gputypes.StoreOp
	DepthClear   float32
	StencilLoad  gputypes.LoadOp
	StencilStore gputypes.StoreOp
	StencilClear uint32
}

type setRenderStateCmd struct {
	State gpucmd.PackedRenderState
}

type setVertexBufferCmd struct {
	Binding uint32
	Slot    uint32
	Offset  uint64
}

type setIndexBufferCmd struct {
	Slot   uint32
	Format gputypes.IndexFormat
	Offset uint64
}

type setViewportCmd struct {
	Viewport gpucmd.Viewport
}

type setScissorCmd struct {
	Rect gpucmd.ScissorRect
}

type setBlendConstantCmd struct {
	Color gputypes.Color
}

type setStencilRefCmd struct {
	Ref uint32
}

type drawCmd struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

type drawIndexedCmd struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	BaseVertex    int32
	FirstInstance uint32
}
