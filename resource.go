package gpucmd

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpucmd/refcount"
)

// Resource is the common interface of every GPU object that can be named by
// a recorded command: buffers, textures, samplers, pipelines, bind groups.
//
// Resources are reference counted. A command buffer retains each resource
// the first time a command references it and releases it when the buffer is
// reset or closed, so application code may drop its own reference as soon
// as the command is recorded. Note that release is tied to the recording's
// lifetime, not to GPU completion: callers must keep the command buffer
// alive until the GPU has finished consuming it.
type Resource interface {
	refcount.Counted
}

// ResourceID returns the process-unique identity of r, or 0 for nil
// (including a typed nil pointer wrapped in the interface).
// Identities order and compare resources without inspecting their contents.
func ResourceID(r Resource) uint64 {
	if refcount.IsNil(r) {
		return 0
	}
	return r.Ref().ID()
}

// Buffer is a linear region of GPU memory.
type Buffer interface {
	Resource

	// Size returns the buffer length in bytes.
	Size() uint64

	// Usage returns the usage mask the buffer was created with.
	Usage() gputypes.BufferUsage
}

// Texture is a 1D, 2D, or 3D image resource.
type Texture interface {
	Resource

	// Format returns the texel format.
	Format() gputypes.TextureFormat

	// Extent returns the texture dimensions.
	Extent() gputypes.Extent3D
}

// Sampler describes how a texture is filtered and addressed when sampled.
type Sampler interface {
	Resource
}

// PipelineKind distinguishes render from compute pipelines.
type PipelineKind uint8

const (
	// PipelineRender is a vertex/fragment pipeline bound inside render passes.
	PipelineRender PipelineKind = iota
	// PipelineCompute is a compute pipeline bound in compute scopes.
	PipelineCompute
)

// Pipeline is a compiled pipeline state object.
type Pipeline interface {
	Resource

	// Kind returns whether this is a render or compute pipeline.
	Kind() PipelineKind
}

// BindGroup is a set of resource bindings (buffers, textures, samplers)
// bound together at a single bind index.
type BindGroup interface {
	Resource
}
