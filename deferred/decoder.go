package deferred

import (
	"fmt"

	"github.com/gogpu/gpucmd"
	"github.com/gogpu/gpucmd/internal/statecache"
	"github.com/gogpu/gpucmd/packet"
)

// Replay decodes the sealed recording and re-issues every command against
// dst, reconstructing scopes and render passes in recording order. The
// buffer must have been sealed with Finish; replaying an unsealed buffer is
// a programmer error and panics. A buffer whose recording failed refuses to
// replay and returns its sticky error instead.
//
// Replay does not touch reference counts: the dependency table keeps every
// referenced resource alive for as long as the buffer holds the recording,
// so decoded commands borrow from the table. The same sealed buffer may be
// replayed onto any number of targets.
//
// Returns dst.Err(), so a target that fails mid-replay surfaces here.
func (b *CommandBuffer) Replay(dst gpucmd.CommandBuffer) error {
	b.checkOpen()
	if !b.sealed {
		panic("deferred: Replay before Finish")
	}
	if b.err != nil {
		return b.err
	}
	if packet.Checksum(b.w.Head()) != b.seal {
		panic("deferred: command stream mutated after Finish")
	}
	d := decoder{
		src:    b,
		dst:    dst,
		states: statecache.New(statecache.DefaultSize),
	}
	d.run(packet.NewReader(b.w.Head()))
	return dst.Err()
}

// decoder walks a recorded stream and drives a target command buffer. It
// mirrors the recording-time scope state: at most one of transfer, compute,
// render is live, plus an optional render pass inside render.
type decoder struct {
	src    *CommandBuffer
	dst    gpucmd.CommandBuffer
	states *statecache.Cache

	transfer gpucmd.TransferEncoder
	compute  gpucmd.ComputeEncoder
	render   gpucmd.RenderEncoder
	pass     gpucmd.RenderPassEncoder
}

// bindGroupSetter is the part of SetBindGroup shared by compute encoders
// and render pass encoders.
type bindGroupSetter interface {
	SetBindGroup(index uint32, group gpucmd.BindGroup, dynamicOffsets []uint32)
}

func (d *decoder) run(r *packet.Reader) {
	for {
		tag, ok := r.PeekTag()
		if !ok {
			return
		}
		switch tag {
		case cmdBeginTransfer:
			packet.ReadCommand[struct{}](r)
			d.transfer = d.dst.BeginTransferCommands()
		case cmdEndTransfer:
			packet.ReadCommand[struct{}](r)
			d.dst.EndTransferCommands(d.transfer)
			d.transfer = nil
		case cmdBeginCompute:
			packet.ReadCommand[struct{}](r)
			d.compute = d.dst.BeginComputeCommands()
		case cmdEndCompute:
			packet.ReadCommand[struct{}](r)
			d.dst.EndComputeCommands(d.compute)
			d.compute = nil
		case cmdBeginRender:
			c := packet.ReadCommand[beginRenderCmd](r)
			desc := gpucmd.RenderDescriptor{
				Label:   string(r.ReadData(int(c.LabelLen))),
				Present: c.Present != 0,
			}
			d.render = d.dst.BeginRenderCommands(&desc)
		case cmdEndRender:
			packet.ReadCommand[struct{}](r)
			d.dst.EndRenderCommands(d.render)
			d.render = nil

		case cmdPipelineBarrier:
			c := packet.ReadCommand[barrierListCmd](r)
			barriers := packet.ReadArray[gpucmd.MemoryBarrier](r, int(c.Count))
			d.xfer().PipelineBarrier(barriers)
		case cmdTransitionTextures:
			c := packet.ReadCommand[transitionListCmd](r)
			packed := packet.ReadArray[textureTransition](r, int(c.Count))
			transitions := make([]gpucmd.TextureBarrier, len(packed))
			for i, t := range packed {
				transitions[i] = gpucmd.TextureBarrier{
					Texture:  d.texture(t.Slot),
					OldUsage: t.OldUsage,
					NewUsage: t.NewUsage,
				}
			}
			d.xfer().TransitionTextures(transitions)
		case cmdCopyBufferToBuffer:
			c := packet.ReadCommand[copyCmd](r)
			regions := packet.ReadArray[gpucmd.BufferCopy](r, int(c.Count))
			d.xfer().CopyBufferToBuffer(d.buffer(c.SrcSlot), d.buffer(c.DstSlot), regions)
		case cmdCopyTextureToTexture:
			c := packet.ReadCommand[copyCmd](r)
			regions := packet.ReadArray[gpucmd.TextureCopy](r, int(c.Count))
			d.xfer().CopyTextureToTexture(d.texture(c.SrcSlot), d.texture(c.DstSlot), regions)
		case cmdCopyBufferToTexture:
			c := packet.ReadCommand[copyCmd](r)
			regions := packet.ReadArray[gpucmd.BufferTextureCopy](r, int(c.Count))
			d.xfer().CopyBufferToTexture(d.buffer(c.SrcSlot), d.texture(c.DstSlot), regions)
		case cmdCopyTextureToBuffer:
			c := packet.ReadCommand[copyCmd](r)
			regions := packet.ReadArray[gpucmd.BufferTextureCopy](r, int(c.Count))
			d.xfer().CopyTextureToBuffer(d.texture(c.SrcSlot), d.buffer(c.DstSlot), regions)
		case cmdFillBuffer:
			c := packet.ReadCommand[fillBufferCmd](r)
			d.xfer().FillBuffer(d.buffer(c.DstSlot), c.Offset, c.Size, byte(c.Value))

		case cmdSetComputePipeline:
			c := packet.ReadCommand[setPipelineCmd](r)
			d.computeTarget().SetComputePipeline(d.pipeline(c.Slot))
		case cmdSetBindGroup:
			c := packet.ReadCommand[setBindGroupCmd](r)
			offsets := packet.ReadArray[uint32](r, int(c.OffsetCount))
			d.bindTarget().SetBindGroup(c.Index, d.bindGroup(c.Slot), offsets)
		case cmdDispatch:
			c := packet.ReadCommand[dispatchCmd](r)
			d.computeTarget().Dispatch(c.X, c.Y, c.Z)
		case cmdDispatchIndirect:
			c := packet.ReadCommand[indirectCmd](r)
			d.computeTarget().DispatchIndirect(d.buffer(c.Slot), c.Offset)

		case cmdBeginRenderPass:
			c := packet.ReadCommand[beginRenderPassCmd](r)
			colors := packet.ReadArray[colorTarget](r, int(c.ColorCount))
			desc := gpucmd.RenderPassDescriptor{
				Width:  c.Width,
				Height: c.Height,
			}
			if len(colors) > 0 {
				desc.ColorAttachments = make([]gpucmd.ColorAttachment, len(colors))
				for i, ct := range colors {
					desc.ColorAttachments[i] = gpucmd.ColorAttachment{
						Target:     d.texture(ct.TargetSlot),
						Resolve:    d.texture(ct.ResolveSlot),
						Load:       ct.Load,
						Store:      ct.Store,
						ClearValue: ct.ClearValue,
					}
				}
			}
			if c.HasDepth != 0 {
				dt := packet.ReadArray[depthTarget](r, 1)[0]
				desc.DepthStencil = &gpucmd.DepthStencilAttachment{
					Target:       d.texture(dt.TargetSlot),
					DepthLoad:    dt.DepthLoad,
					DepthStore:   dt.DepthStore,
					DepthClear:   dt.DepthClear,
					StencilLoad:  dt.StencilLoad,
					StencilStore: dt.StencilStore,
					StencilClear: dt.StencilClear,
				}
			}
			d.pass = d.renderTarget().BeginRenderPass(&desc)
		case cmdEndRenderPass:
			packet.ReadCommand[struct{}](r)
			d.renderTarget().EndRenderPass(d.pass)
			d.pass = nil
		case cmdSetRenderPipeline:
			c := packet.ReadCommand[setPipelineCmd](r)
			d.passTarget().SetRenderPipeline(d.pipeline(c.Slot))
		case cmdSetRenderState:
			c := packet.ReadCommand[setRenderStateCmd](r)
			// Interned validation: a word that does not round-trip through
			// Unpack/Pack cannot have come from the recording API.
			if _, err := d.states.Canonical(c.State); err != nil {
				panic("deferred: " + err.Error())
			}
			d.passTarget().SetRenderState(c.State)
		case cmdSetVertexBuffer:
			c := packet.ReadCommand[setVertexBufferCmd](r)
			d.passTarget().SetVertexBuffer(c.Binding, d.buffer(c.Slot), c.Offset)
		case cmdSetIndexBuffer:
			c := packet.ReadCommand[setIndexBufferCmd](r)
			d.passTarget().SetIndexBuffer(d.buffer(c.Slot), c.Format, c.Offset)
		case cmdSetViewport:
			c := packet.ReadCommand[setViewportCmd](r)
			d.passTarget().SetViewport(c.Viewport)
		case cmdSetScissor:
			c := packet.ReadCommand[setScissorCmd](r)
			d.passTarget().SetScissor(c.Rect)
		case cmdSetBlendConstant:
			c := packet.ReadCommand[setBlendConstantCmd](r)
			d.passTarget().SetBlendConstant(c.Color)
		case cmdSetStencilReference:
			c := packet.ReadCommand[setStencilRefCmd](r)
			d.passTarget().SetStencilReference(c.Ref)
		case cmdDraw:
			c := packet.ReadCommand[drawCmd](r)
			d.passTarget().Draw(c.VertexCount, c.InstanceCount, c.FirstVertex, c.FirstInstance)
		case cmdDrawIndexed:
			c := packet.ReadCommand[drawIndexedCmd](r)
			d.passTarget().DrawIndexed(c.IndexCount, c.InstanceCount, c.FirstIndex, c.BaseVertex, c.FirstInstance)
		case cmdDrawIndirect:
			c := packet.ReadCommand[indirectCmd](r)
			d.passTarget().DrawIndirect(d.buffer(c.Slot), c.Offset)

		default:
			panic(fmt.Sprintf("deferred: unknown command tag %d (%s)", tag, tagName(tag)))
		}
	}
}

// ---- scope targets ----
//
// These return the target encoder a decoded command applies to. A miss
// means the stream's scope bracketing is broken, which a sealed recording
// rules out, so they panic.

func (d *decoder) xfer() gpucmd.TransferEncoder {
	switch {
	case d.render != nil:
		return d.render
	case d.compute != nil:
		return d.compute
	case d.transfer != nil:
		return d.transfer
	}
	panic("deferred: transfer command outside any scope")
}

func (d *decoder) computeTarget() gpucmd.ComputeEncoder {
	switch {
	case d.render != nil:
		return d.render
	case d.compute != nil:
		return d.compute
	}
	panic("deferred: compute command outside a compute-capable scope")
}

func (d *decoder) renderTarget() gpucmd.RenderEncoder {
	if d.render == nil {
		panic("deferred: render command outside a render scope")
	}
	return d.render
}

func (d *decoder) passTarget() gpucmd.RenderPassEncoder {
	if d.pass == nil {
		panic("deferred: draw or dynamic state outside a render pass")
	}
	return d.pass
}

// bindTarget routes SetBindGroup to the open render pass when there is one,
// otherwise to the compute-capable scope, matching where it was recorded.
func (d *decoder) bindTarget() bindGroupSetter {
	if d.pass != nil {
		return d.pass
	}
	return d.computeTarget()
}

// ---- typed dependency lookups ----

func (d *decoder) buffer(slot uint32) gpucmd.Buffer {
	if r := d.src.resource(slot); r != nil {
		return r.(gpucmd.Buffer)
	}
	return nil
}

func (d *decoder) texture(slot uint32) gpucmd.Texture {
	if r := d.src.resource(slot); r != nil {
		return r.(gpucmd.Texture)
	}
	return nil
}

func (d *decoder) pipeline(slot uint32) gpucmd.Pipeline {
	if r := d.src.resource(slot); r != nil {
		return r.(gpucmd.Pipeline)
	}
	return nil
}

func (d *decoder) bindGroup(slot uint32) gpucmd.BindGroup {
	if r := d.src.resource(slot); r != nil {
		return r.(gpucmd.BindGroup)
	}
	return nil
}
