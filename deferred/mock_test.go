package deferred

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpucmd"
	"github.com/gogpu/gpucmd/refcount"
)

// ---- mock resources ----

type named interface{ name() string }

func resName(r gpucmd.Resource) string {
	if r == nil {
		return "<nil>"
	}
	return r.(named).name()
}

type mockBuffer struct {
	refcount.Object
	label     string
	size      uint64
	destroyed bool
}

func newMockBuffer(label string, size uint64) *mockBuffer {
	return &mockBuffer{Object: refcount.NewObject(), label: label, size: size}
}

func (b *mockBuffer) name() string { return b.label }
func (b *mockBuffer) Destroy()     { b.destroyed = true }
func (b *mockBuffer) Size() uint64 { return b.size }

func (b *mockBuffer) Usage() gputypes.BufferUsage {
	var u gputypes.BufferUsage
	return u
}

type mockTexture struct {
	refcount.Object
	label     string
	format    gputypes.TextureFormat
	extent    gputypes.Extent3D
	destroyed bool
}

func newMockTexture(label string, w, h uint32) *mockTexture {
	return &mockTexture{
		Object: refcount.NewObject(),
		label:  label,
		extent: gputypes.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}
}

func (t *mockTexture) name() string                   { return t.label }
func (t *mockTexture) Destroy()                       { t.destroyed = true }
func (t *mockTexture) Format() gputypes.TextureFormat { return t.format }
func (t *mockTexture) Extent() gputypes.Extent3D      { return t.extent }

type mockPipeline struct {
	refcount.Object
	label     string
	kind      gpucmd.PipelineKind
	destroyed bool
}

func newMockPipeline(label string, kind gpucmd.PipelineKind) *mockPipeline {
	return &mockPipeline{Object: refcount.NewObject(), label: label, kind: kind}
}

func (p *mockPipeline) name() string              { return p.label }
func (p *mockPipeline) Destroy()                  { p.destroyed = true }
func (p *mockPipeline) Kind() gpucmd.PipelineKind { return p.kind }

type mockBindGroup struct {
	refcount.Object
	label     string
	destroyed bool
}

func newMockBindGroup(label string) *mockBindGroup {
	return &mockBindGroup{Object: refcount.NewObject(), label: label}
}

func (g *mockBindGroup) name() string { return g.label }
func (g *mockBindGroup) Destroy()     { g.destroyed = true }

// ---- mock backend ----

// mockBackend implements gpucmd.CommandBuffer by appending one line per
// call to its log. Driving it directly and via deferred replay must produce
// identical logs.
type mockBackend struct {
	log    []string
	queues gpucmd.QueueClassMask
	resets int
}

func (m *mockBackend) logf(format string, args ...any) {
	m.log = append(m.log, fmt.Sprintf(format, args...))
}

func (m *mockBackend) BeginTransferCommands() gpucmd.TransferEncoder {
	m.queues |= gpucmd.QueueClassMask(gpucmd.QueueTransfer)
	m.logf("BeginTransfer")
	return &mockTransferEnc{m: m}
}

func (m *mockBackend) EndTransferCommands(gpucmd.TransferEncoder) {
	m.logf("EndTransfer")
}

func (m *mockBackend) BeginComputeCommands() gpucmd.ComputeEncoder {
	m.queues |= gpucmd.QueueClassMask(gpucmd.QueueCompute)
	m.logf("BeginCompute")
	return &mockComputeEnc{mockTransferEnc{m: m}}
}

func (m *mockBackend) EndComputeCommands(gpucmd.ComputeEncoder) {
	m.logf("EndCompute")
}

func (m *mockBackend) BeginRenderCommands(desc *gpucmd.RenderDescriptor) gpucmd.RenderEncoder {
	if desc == nil {
		desc = &gpucmd.RenderDescriptor{}
	}
	m.queues |= gpucmd.QueueClassMask(gpucmd.QueueRender)
	if desc.Present {
		m.queues |= gpucmd.QueueClassMask(gpucmd.QueuePresent)
	}
	m.logf("BeginRender label=%q present=%t", desc.Label, desc.Present)
	return &mockRenderEnc{mockComputeEnc{mockTransferEnc{m: m}}}
}

func (m *mockBackend) EndRenderCommands(gpucmd.RenderEncoder) {
	m.logf("EndRender")
}

func (m *mockBackend) QueueClasses() gpucmd.QueueClassMask { return m.queues }
func (m *mockBackend) Err() error                          { return nil }

func (m *mockBackend) Reset() {
	m.resets++
	m.log = nil
	m.queues = 0
}

type mockTransferEnc struct {
	m *mockBackend
}

func (e *mockTransferEnc) PipelineBarrier(barriers []gpucmd.MemoryBarrier) {
	e.m.logf("PipelineBarrier %v", barriers)
}

func (e *mockTransferEnc) TransitionTextures(transitions []gpucmd.TextureBarrier) {
	parts := make([]string, len(transitions))
	for i, t := range transitions {
		parts[i] = fmt.Sprintf("%s:%d->%d", resName(t.Texture), t.OldUsage, t.NewUsage)
	}
	e.m.logf("TransitionTextures [%s]", strings.Join(parts, " "))
}

func (e *mockTransferEnc) CopyBufferToBuffer(src, dst gpucmd.Buffer, regions []gpucmd.BufferCopy) {
	e.m.logf("CopyBufferToBuffer %s->%s %v", resName(src), resName(dst), regions)
}

func (e *mockTransferEnc) CopyTextureToTexture(src, dst gpucmd.Texture, regions []gpucmd.TextureCopy) {
	e.m.logf("CopyTextureToTexture %s->%s %v", resName(src), resName(dst), regions)
}

func (e *mockTransferEnc) CopyBufferToTexture(src gpucmd.Buffer, dst gpucmd.Texture, regions []gpucmd.BufferTextureCopy) {
	e.m.logf("CopyBufferToTexture %s->%s %v", resName(src), resName(dst), regions)
}

func (e *mockTransferEnc) CopyTextureToBuffer(src gpucmd.Texture, dst gpucmd.Buffer, regions []gpucmd.BufferTextureCopy) {
	e.m.logf("CopyTextureToBuffer %s->%s %v", resName(src), resName(dst), regions)
}

func (e *mockTransferEnc) FillBuffer(dst gpucmd.Buffer, offset, size uint64, value byte) {
	e.m.logf("FillBuffer %s off=%d size=%d value=%d", resName(dst), offset, size, value)
}

type mockComputeEnc struct {
	mockTransferEnc
}

func (e *mockComputeEnc) SetComputePipeline(p gpucmd.Pipeline) {
	e.m.logf("SetComputePipeline %s", resName(p))
}

func (e *mockComputeEnc) SetBindGroup(index uint32, group gpucmd.BindGroup, dynamicOffsets []uint32) {
	e.m.logf("SetBindGroup %d %s %v", index, resName(group), dynamicOffsets)
}

func (e *mockComputeEnc) Dispatch(x, y, z uint32) {
	e.m.logf("Dispatch %d %d %d", x, y, z)
}

func (e *mockComputeEnc) DispatchIndirect(args gpucmd.Buffer, offset uint64) {
	e.m.logf("DispatchIndirect %s off=%d", resName(args), offset)
}

type mockRenderEnc struct {
	mockComputeEnc
}

func (e *mockRenderEnc) BeginRenderPass(desc *gpucmd.RenderPassDescriptor) gpucmd.RenderPassEncoder {
	if desc == nil {
		desc = &gpucmd.RenderPassDescriptor{}
	}
	colors := make([]string, len(desc.ColorAttachments))
	for i, att := range desc.ColorAttachments {
		colors[i] = fmt.Sprintf("%s/%s load=%d store=%d clear=%v",
			resName(att.Target), resName(att.Resolve), att.Load, att.Store, att.ClearValue)
	}
	depth := "<none>"
	if ds := desc.DepthStencil; ds != nil {
		depth = fmt.Sprintf("%s dclear=%g sclear=%d", resName(ds.Target), ds.DepthClear, ds.StencilClear)
	}
	e.m.logf("BeginRenderPass %dx%d colors=[%s] depth=%s",
		desc.Width, desc.Height, strings.Join(colors, " "), depth)
	return &mockPassEnc{m: e.m}
}

func (e *mockRenderEnc) EndRenderPass(gpucmd.RenderPassEncoder) {
	e.m.logf("EndRenderPass")
}

type mockPassEnc struct {
	m *mockBackend
}

func (e *mockPassEnc) SetRenderPipeline(p gpucmd.Pipeline) {
	e.m.logf("SetRenderPipeline %s", resName(p))
}

func (e *mockPassEnc) SetRenderState(state gpucmd.PackedRenderState) {
	e.m.logf("SetRenderState %#x", uint64(state))
}

func (e *mockPassEnc) SetBindGroup(index uint32, group gpucmd.BindGroup, dynamicOffsets []uint32) {
	e.m.logf("SetBindGroup %d %s %v", index, resName(group), dynamicOffsets)
}

func (e *mockPassEnc) SetVertexBuffer(slot uint32, buf gpucmd.Buffer, offset uint64) {
	e.m.logf("SetVertexBuffer %d %s off=%d", slot, resName(buf), offset)
}

func (e *mockPassEnc) SetIndexBuffer(buf gpucmd.Buffer, format gputypes.IndexFormat, offset uint64) {
	e.m.logf("SetIndexBuffer %s fmt=%d off=%d", resName(buf), format, offset)
}

func (e *mockPassEnc) SetViewport(vp gpucmd.Viewport) {
	e.m.logf("SetViewport %v", vp)
}

func (e *mockPassEnc) SetScissor(rect gpucmd.ScissorRect) {
	e.m.logf("SetScissor %v", rect)
}

func (e *mockPassEnc) SetBlendConstant(color gputypes.Color) {
	e.m.logf("SetBlendConstant %v", color)
}

func (e *mockPassEnc) SetStencilReference(ref uint32) {
	e.m.logf("SetStencilReference %d", ref)
}

func (e *mockPassEnc) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	e.m.logf("Draw %d %d %d %d", vertexCount, instanceCount, firstVertex, firstInstance)
}

func (e *mockPassEnc) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	e.m.logf("DrawIndexed %d %d %d %d %d", indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (e *mockPassEnc) DrawIndirect(args gpucmd.Buffer, offset uint64) {
	e.m.logf("DrawIndirect %s off=%d", resName(args), offset)
}

// interface conformance
var (
	_ gpucmd.CommandBuffer     = (*mockBackend)(nil)
	_ gpucmd.RenderEncoder     = (*mockRenderEnc)(nil)
	_ gpucmd.RenderPassEncoder = (*mockPassEnc)(nil)
)
