// Package packet implements the tagged binary command stream used for
// deferred command recording.
//
// A stream is a chain of fixed-size arena blocks holding densely packed
// records. Each record is either a command (a 32-bit tag immediately
// followed by that tag's fixed-size payload struct) or a raw trailing span
// whose length is carried by the preceding command. A command's tag and
// payload are always contiguous within one block; a trailing span that does
// not fit in the current block starts at the beginning of the next one, and
// the Reader crosses that boundary transparently.
//
// The format is an in-process, same-binary contract: payload structs are
// copied byte-for-byte, so field order, widths, and padding must match
// between writer and reader. Streams must never be persisted or shipped
// across processes.
//
// Payload and array element types must not contain pointers, slices, maps,
// or strings. Resources are referenced by table slots (see WriteSlots), not
// by pointer.
package packet

// Tag discriminates which operation a command record encodes. Tag values
// are assigned by the stream's producer; packet treats them as opaque.
type Tag uint32

// TagSize is the encoded size of a Tag in bytes.
const TagSize = 4
