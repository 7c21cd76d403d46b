package gpucmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderStatePackRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		state RenderState
	}{
		{"zero", RenderState{}},
		{"default", DefaultRenderState()},
		{"alpha blending", RenderState{
			BlendEnable:    true,
			SrcColorFactor: BlendSrcAlpha,
			DstColorFactor: BlendOneMinusSrcAlpha,
			ColorOp:        BlendOpAdd,
			SrcAlphaFactor: BlendOne,
			DstAlphaFactor: BlendOneMinusSrcAlpha,
			AlphaOp:        BlendOpAdd,
			ColorWriteMask: 0xf,
		}},
		{"opaque 3d", RenderState{
			ColorWriteMask:   0xf,
			Cull:             CullBack,
			FrontFaceCCW:     true,
			Topology:         TopologyTriangleList,
			DepthTestEnable:  true,
			DepthWriteEnable: true,
			DepthCompare:     CompareLessEqual,
		}},
		{"stencil", RenderState{
			ColorWriteMask: 0x7,
			Topology:       TopologyLineStrip,
			StencilEnable:  true,
		}},
		{"everything on", RenderState{
			BlendEnable:      true,
			SrcColorFactor:   BlendOneMinusConstant,
			DstColorFactor:   BlendConstant,
			ColorOp:          BlendOpMax,
			SrcAlphaFactor:   BlendDstAlpha,
			DstAlphaFactor:   BlendOneMinusDstAlpha,
			AlphaOp:          BlendOpReverseSubtract,
			ColorWriteMask:   0xf,
			Cull:             CullFront,
			FrontFaceCCW:     true,
			Topology:         TopologyPointList,
			DepthTestEnable:  true,
			DepthWriteEnable: true,
			DepthCompare:     CompareNotEqual,
			StencilEnable:    true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := tt.state.Pack()
			assert.Equal(t, tt.state, packed.Unpack())
			// Reserved bits stay clear so packed words compare equal.
			assert.Zero(t, uint64(packed)>>43)
		})
	}
}

func TestPackedRenderStateDistinct(t *testing.T) {
	a := RenderState{DepthTestEnable: true}.Pack()
	b := RenderState{DepthWriteEnable: true}.Pack()
	assert.NotEqual(t, a, b)
}

func TestUnpackIgnoresReservedBits(t *testing.T) {
	state := DefaultRenderState()
	dirty := PackedRenderState(uint64(state.Pack()) | 1<<50)
	assert.Equal(t, state, dirty.Unpack())
}
