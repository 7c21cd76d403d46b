package deferred

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpucmd"
)

// The encoder hierarchy mirrors the interface hierarchy by embedding:
// compute extends transfer, render extends compute. Every method serializes
// one command record; none of them touch the GPU.
//
// Encoders are tied to the scope that created them. Using one after its End
// call is a programmer error and panics.

type transferEncoder struct {
	b    *CommandBuffer
	done bool
}

// rec returns the owning buffer and whether recording should proceed.
// A failed buffer swallows commands; a finished encoder panics.
func (e *transferEncoder) rec() (*CommandBuffer, bool) {
	if e.done {
		panic("deferred: encoder used after End")
	}
	return e.b, e.b.err == nil
}

func (e *transferEncoder) PipelineBarrier(barriers []gpucmd.MemoryBarrier) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdPipelineBarrier, barrierListCmd{Count: uint32(len(barriers))})
	emitArray(b, barriers)
}

func (e *transferEncoder) TransitionTextures(transitions []gpucmd.TextureBarrier) {
	b, ok := e.rec()
	if !ok {
		return
	}
	packed := make([]textureTransition, len(transitions))
	for i, t := range transitions {
		packed[i] = textureTransition{
			Slot:     b.slot(t.Texture),
			OldUsage: t.OldUsage,
			NewUsage: t.NewUsage,
		}
	}
	emit(b, cmdTransitionTextures, transitionListCmd{Count: uint32(len(packed))})
	emitArray(b, packed)
}

func (e *transferEncoder) CopyBufferToBuffer(src, dst gpucmd.Buffer, regions []gpucmd.BufferCopy) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdCopyBufferToBuffer, copyCmd{
		SrcSlot: b.slot(src),
		DstSlot: b.slot(dst),
		Count:   uint32(len(regions)),
	})
	emitArray(b, regions)
}

func (e *transferEncoder) CopyTextureToTexture(src, dst gpucmd.Texture, regions []gpucmd.TextureCopy) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdCopyTextureToTexture, copyCmd{
		SrcSlot: b.slot(src),
		DstSlot: b.slot(dst),
		Count:   uint32(len(regions)),
	})
	emitArray(b, regions)
}

func (e *transferEncoder) CopyBufferToTexture(src gpucmd.Buffer, dst gpucmd.Texture, regions []gpucmd.BufferTextureCopy) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdCopyBufferToTexture, copyCmd{
		SrcSlot: b.slot(src),
		DstSlot: b.slot(dst),
		Count:   uint32(len(regions)),
	})
	emitArray(b, regions)
}

func (e *transferEncoder) CopyTextureToBuffer(src gpucmd.Texture, dst gpucmd.Buffer, regions []gpucmd.BufferTextureCopy) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdCopyTextureToBuffer, copyCmd{
		SrcSlot: b.slot(src),
		DstSlot: b.slot(dst),
		Count:   uint32(len(regions)),
	})
	emitArray(b, regions)
}

func (e *transferEncoder) FillBuffer(dst gpucmd.Buffer, offset, size uint64, value byte) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdFillBuffer, fillBufferCmd{
		DstSlot: b.slot(dst),
		Value:   uint32(value),
		Offset:  offset,
		Size:    size,
	})
}

type computeEncoder struct {
	transferEncoder
}

func (e *computeEncoder) SetComputePipeline(p gpucmd.Pipeline) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetComputePipeline, setPipelineCmd{Slot: b.slot(p)})
}

func (e *computeEncoder) SetBindGroup(index uint32, group gpucmd.BindGroup, dynamicOffsets []uint32) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetBindGroup, setBindGroupCmd{
		Index:       index,
		Slot:        b.slot(group),
		OffsetCount: uint32(len(dynamicOffsets)),
	})
	emitArray(b, dynamicOffsets)
}

func (e *computeEncoder) Dispatch(x, y, z uint32) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdDispatch, dispatchCmd{X: x, Y: y, Z: z})
}

func (e *computeEncoder) DispatchIndirect(args gpucmd.Buffer, offset uint64) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdDispatchIndirect, indirectCmd{Slot: b.slot(args), Offset: offset})
}

type renderEncoder struct {
	computeEncoder
}

// BeginRenderPass opens a render pass. A nil desc is treated as a zero
// gpucmd.RenderPassDescriptor.
func (e *renderEncoder) BeginRenderPass(desc *gpucmd.RenderPassDescriptor) gpucmd.RenderPassEncoder {
	b, ok := e.rec()
	if b.passOpen {
		panic("deferred: BeginRenderPass while a render pass is open")
	}
	b.passOpen = true
	pass := &renderPassEncoder{b: b}
	b.activePass = pass
	if !ok {
		return pass
	}
	if desc == nil {
		desc = &gpucmd.RenderPassDescriptor{}
	}
	emit(b, cmdBeginRenderPass, beginRenderPassCmd{
		Width:      desc.Width,
		Height:     desc.Height,
		ColorCount: uint32(len(desc.ColorAttachments)),
		HasDepth:   packBool(desc.DepthStencil != nil),
	})
	colors := make([]colorTarget, len(desc.ColorAttachments))
	for i, att := range desc.ColorAttachments {
		colors[i] = colorTarget{
			TargetSlot:  b.slot(att.Target),
			ResolveSlot: b.slot(att.Resolve),
			Load:        att.Load,
			Store:       att.Store,
			ClearValue:  att.ClearValue,
		}
	}
	emitArray(b, colors)
	if ds := desc.DepthStencil; ds != nil {
		emitArray(b, []depthTarget{{
			TargetSlot:   b.slot(ds.Target),
			DepthLoad:    ds.DepthLoad,
			DepthStore:   ds.DepthStore,
			DepthClear:   ds.DepthClear,
			StencilLoad:  ds.StencilLoad,
			StencilStore: ds.StencilStore,
			StencilClear: ds.StencilClear,
		}})
	}
	return pass
}

// EndRenderPass closes the pass opened by BeginRenderPass.
func (e *renderEncoder) EndRenderPass(pass gpucmd.RenderPassEncoder) {
	b, _ := e.rec()
	if !b.passOpen {
		panic("deferred: EndRenderPass without an open render pass")
	}
	if pass == nil || pass != b.activePass {
		panic("deferred: EndRenderPass with an encoder from a different pass")
	}
	emit(b, cmdEndRenderPass, struct{}{})
	pass.(*renderPassEncoder).done = true
	b.passOpen = false
	b.activePass = nil
}

type renderPassEncoder struct {
	b    *CommandBuffer
	done bool
}

func (e *renderPassEncoder) rec() (*CommandBuffer, bool) {
	if e.done {
		panic("deferred: render pass encoder used after EndRenderPass")
	}
	return e.b, e.b.err == nil
}

func (e *renderPassEncoder) SetRenderPipeline(p gpucmd.Pipeline) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetRenderPipeline, setPipelineCmd{Slot: b.slot(p)})
}

func (e *renderPassEncoder) SetRenderState(state gpucmd.PackedRenderState) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetRenderState, setRenderStateCmd{State: state})
}

func (e *renderPassEncoder) SetBindGroup(index uint32, group gpucmd.BindGroup, dynamicOffsets []uint32) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetBindGroup, setBindGroupCmd{
		Index:       index,
		Slot:        b.slot(group),
		OffsetCount: uint32(len(dynamicOffsets)),
	})
	emitArray(b, dynamicOffsets)
}

func (e *renderPassEncoder) SetVertexBuffer(slot uint32, buf gpucmd.Buffer, offset uint64) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetVertexBuffer, setVertexBufferCmd{
		Binding: slot,
		Slot:    b.slot(buf),
		Offset:  offset,
	})
}

func (e *renderPassEncoder) SetIndexBuffer(buf gpucmd.Buffer, format gputypes.IndexFormat, offset uint64) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetIndexBuffer, setIndexBufferCmd{
		Slot:   b.slot(buf),
		Format: format,
		Offset: offset,
	})
}

func (e *renderPassEncoder) SetViewport(vp gpucmd.Viewport) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetViewport, setViewportCmd{Viewport: vp})
}

func (e *renderPassEncoder) SetScissor(rect gpucmd.ScissorRect) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetScissor, setScissorCmd{Rect: rect})
}

func (e *renderPassEncoder) SetBlendConstant(color gputypes.Color) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetBlendConstant, setBlendConstantCmd{Color: color})
}

func (e *renderPassEncoder) SetStencilReference(ref uint32) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdSetStencilReference, setStencilRefCmd{Ref: ref})
}

func (e *renderPassEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdDraw, drawCmd{
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		FirstVertex:   firstVertex,
		FirstInstance: firstInstance,
	})
}

func (e *renderPassEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdDrawIndexed, drawIndexedCmd{
		IndexCount:    indexCount,
		InstanceCount: instanceCount,
		FirstIndex:    firstIndex,
		BaseVertex:    baseVertex,
		FirstInstance: firstInstance,
	})
}

func (e *renderPassEncoder) DrawIndirect(args gpucmd.Buffer, offset uint64) {
	b, ok := e.rec()
	if !ok {
		return
	}
	emit(b, cmdDrawIndirect, indirectCmd{Slot: b.slot(args), Offset: offset})
}
