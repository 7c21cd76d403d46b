// Package deferred implements a command buffer that records GPU commands
// into a compact binary stream instead of executing them.
//
// The deferred buffer lets command recording run ahead of, and independently
// of, the backend that eventually executes the commands: a loading thread
// can record resource uploads, a culling pass can record draws, and the
// results are replayed onto the real backend when convenient. Replaying the
// same recording onto multiple targets also works, which is what drives
// command capture and debug dumps.
//
// # Storage
//
// Commands are serialized as tagged records into fixed-size blocks from a
// private arena (see the packet and arena packages). Recording therefore
// does one small allocation per storage block rather than one per command,
// and a buffer that is reset and reused stops allocating entirely.
//
// # Resource lifetime
//
// Every resource a command references is retained once, on first reference,
// into the buffer's dependency table; the stream itself carries table slots
// rather than pointers. Reset and Close release the table. This ties
// resource lifetime to the recording, so the application may drop its own
// references immediately after recording.
//
// # Example
//
//	cb := deferred.New()
//	enc := cb.BeginTransferCommands()
//	enc.CopyBufferToBuffer(staging, vertices, []gpucmd.BufferCopy{{Size: 4096}})
//	cb.EndTransferCommands(enc)
//	if err := cb.Finish(); err != nil {
//	    // storage exhausted; recording is incomplete
//	}
//	err := cb.Replay(backendCB) // re-issues the copy on the real backend
//
// The package registers itself under the backend name "deferred", so a
// blank import makes it available through gpucmd.NewCommandBuffer.
package deferred
