// Package gpucmd provides a backend-agnostic GPU command recording
// abstraction for Go.
//
// # Overview
//
// gpucmd defines the interfaces through which drawing, compute, and transfer
// work is recorded: a CommandBuffer that opens typed recording scopes
// (transfer, compute, render, render pass) and per-scope encoders with one
// method per recordable operation. Concrete backends (Vulkan-, Metal-, or
// GLES-style drivers) implement these interfaces and execute the recorded
// work; they are registered by name via Register, following the database/sql
// driver pattern.
//
// The companion deferred package implements the same interfaces for backends
// that cannot record natively: calls are serialized into an in-memory packet
// stream and replayed later against a real recorder.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gpucmd"
//	    _ "github.com/gogpu/gpucmd/deferred" // registers the "deferred" backend
//	)
//
//	cb, err := gpucmd.NewCommandBuffer("deferred")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	enc := cb.BeginTransferCommands()
//	enc.CopyBufferToBuffer(src, dst, []gpucmd.BufferCopy{{Size: 256}})
//	cb.EndTransferCommands(enc)
//
// # Architecture
//
// The module is organized into:
//   - Public API: CommandBuffer, encoder interfaces, operation argument
//     structs, queue-class masks, packed render state
//   - refcount: atomically reference-counted resource lifetime
//   - arena, packet: block storage and the tagged binary command stream
//   - deferred: the deferred recorder and its replay decoder
//
// # Resource Lifetime
//
// Every resource referenced by a recorded command is retained by the
// recording command buffer and released when the buffer is reset or closed.
// Callers therefore may drop their own references as soon as a command
// naming a resource has been recorded; the buffer keeps it alive until the
// recording itself is discarded.
package gpucmd

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"
)
