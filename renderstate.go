package gpucmd

// Compact state enums used by PackedRenderState. Values are explicit because
// they are serialized: the packed layout below depends on them staying dense
// and small, not on any backend API's numbering.

// BlendFactor selects a blend coefficient. 5 bits in the packed layout.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
	BlendOneMinusDstColor
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendConstant
	BlendOneMinusConstant
)

// BlendOp combines source and destination terms. 3 bits.
type BlendOp uint8

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// CullMode selects which triangle faces are discarded. 2 bits.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// Topology selects the primitive assembly mode. 3 bits.
type Topology uint8

const (
	TopologyTriangleList Topology = iota
	TopologyTriangleStrip
	TopologyLineList
	TopologyLineStrip
	TopologyPointList
)

// CompareFunc selects a depth or stencil comparison. 3 bits.
type CompareFunc uint8

const (
	CompareAlways CompareFunc = iota
	CompareNever
	CompareLess
	CompareLessEqual
	CompareGreater
	CompareGreaterEqual
	CompareEqual
	CompareNotEqual
)

// RenderState is the unpacked fixed-function state set on a render pass.
// It packs into a single uint64 (see Pack) so the command stream carries
// one word per state change.
type RenderState struct {
	BlendEnable    bool
	SrcColorFactor BlendFactor
	DstColorFactor BlendFactor
	ColorOp        BlendOp
	SrcAlphaFactor BlendFactor
	DstAlphaFactor BlendFactor
	AlphaOp        BlendOp
	// ColorWriteMask enables the R, G, B, A channels via bits 0-3.
	ColorWriteMask uint8
	Cull           CullMode
	// FrontFaceCCW selects counter-clockwise winding as front-facing.
	FrontFaceCCW     bool
	Topology         Topology
	DepthTestEnable  bool
	DepthWriteEnable bool
	DepthCompare     CompareFunc
	StencilEnable    bool
}

// PackedRenderState is RenderState packed into 64 bits. The packing is done
// by explicit shifts and masks rather than struct bitfields, so the layout
// is identical on every platform. Bit layout, LSB first:
//
//	bit  0      blend enable
//	bits 1-5    source color factor
//	bits 6-10   destination color factor
//	bits 11-13  color blend op
//	bits 14-18  source alpha factor
//	bits 19-23  destination alpha factor
//	bits 24-26  alpha blend op
//	bits 27-30  color write mask (RGBA)
//	bits 31-32  cull mode
//	bit  33     front face CCW
//	bits 34-36  topology
//	bit  37     depth test enable
//	bit  38     depth write enable
//	bits 39-41  depth compare
//	bit  42     stencil enable
//	bits 43-63  reserved, zero
type PackedRenderState uint64

func packBool(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// Pack packs s into its 64-bit representation.
func (s RenderState) Pack() PackedRenderState {
	var p uint64
	p |= packBool(s.BlendEnable) << 0
	p |= (uint64(s.SrcColorFactor) & 0x1f) << 1
	p |= (uint64(s.DstColorFactor) & 0x1f) << 6
	p |= (uint64(s.ColorOp) & 0x7) << 11
	p |= (uint64(s.SrcAlphaFactor) & 0x1f) << 14
	p |= (uint64(s.DstAlphaFactor) & 0x1f) << 19
	p |= (uint64(s.AlphaOp) & 0x7) << 24
	p |= (uint64(s.ColorWriteMask) & 0xf) << 27
	p |= (uint64(s.Cull) & 0x3) << 31
	p |= packBool(s.FrontFaceCCW) << 33
	p |= (uint64(s.Topology) & 0x7) << 34
	p |= packBool(s.DepthTestEnable) << 37
	p |= packBool(s.DepthWriteEnable) << 38
	p |= (uint64(s.DepthCompare) & 0x7) << 39
	p |= packBool(s.StencilEnable) << 42
	return PackedRenderState(p)
}

// Unpack expands p back into a RenderState. Reserved bits are ignored.
func (p PackedRenderState) Unpack() RenderState {
	v := uint64(p)
	return RenderState{
		BlendEnable:      v>>0&0x1 != 0,
		SrcColorFactor:   BlendFactor(v >> 1 & 0x1f),
		DstColorFactor:   BlendFactor(v >> 6 & 0x1f),
		ColorOp:          BlendOp(v >> 11 & 0x7),
		SrcAlphaFactor:   BlendFactor(v >> 14 & 0x1f),
		DstAlphaFactor:   BlendFactor(v >> 19 & 0x1f),
		AlphaOp:          BlendOp(v >> 24 & 0x7),
		ColorWriteMask:   uint8(v >> 27 & 0xf),
		Cull:             CullMode(v >> 31 & 0x3),
		FrontFaceCCW:     v>>33&0x1 != 0,
		Topology:         Topology(v >> 34 & 0x7),
		DepthTestEnable:  v>>37&0x1 != 0,
		DepthWriteEnable: v>>38&0x1 != 0,
		DepthCompare:     CompareFunc(v >> 39 & 0x7),
		StencilEnable:    v>>42&0x1 != 0,
	}
}

// DefaultRenderState returns the state render passes start with: no
// blending, all color channels enabled, back-face culling off, triangle
// lists, depth and stencil disabled.
func DefaultRenderState() RenderState {
	return RenderState{
		SrcColorFactor: BlendOne,
		DstColorFactor: BlendZero,
		SrcAlphaFactor: BlendOne,
		DstAlphaFactor: BlendZero,
		ColorWriteMask: 0xf,
	}
}
