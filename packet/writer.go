package packet

import (
	"encoding/binary"
	"unsafe"

	"github.com/gogpu/gpucmd/arena"
)

// Writer serializes tagged commands and trailing spans into a chain of
// arena blocks. The zero Writer is not usable; construct with NewWriter.
//
// A Writer is owned by one recording scope and is not safe for concurrent
// use. Write methods return an error only for arena exhaustion; malformed
// use (a record larger than a whole block) panics.
type Writer struct {
	arena *arena.Arena
	head  *arena.Block
	tail  *arena.Block
}

// NewWriter creates a Writer allocating its blocks from a.
func NewWriter(a *arena.Arena) *Writer {
	return &Writer{arena: a}
}

// Head returns the first block of the stream, or nil if nothing has been
// written. Pass it to NewReader to read the stream back.
func (w *Writer) Head() *arena.Block { return w.head }

// Blocks returns the number of blocks in the stream so far.
func (w *Writer) Blocks() int {
	n := 0
	for b := w.head; b != nil; b = b.Next() {
		n++
	}
	return n
}

// Reset detaches the writer from its block chain without reclaiming it.
// The caller owns the chain (typically handing it to arena.Reclaim).
func (w *Writer) Reset() {
	w.head = nil
	w.tail = nil
}

// reserve returns n contiguous writable bytes, switching to a fresh block
// when the current one lacks room. Requests larger than a whole block are
// a programming error.
func (w *Writer) reserve(n int) ([]byte, error) {
	if n > w.arena.BlockSize() {
		panic("packet: record exceeds block capacity")
	}
	if w.tail == nil || n > w.tail.Remaining() {
		b, err := w.arena.AllocBlock()
		if err != nil {
			return nil, err
		}
		if w.tail == nil {
			w.head = b
		} else {
			w.tail.SetNext(b)
		}
		w.tail = b
	}
	return w.tail.Reserve(n), nil
}

// WriteCommand appends a command record: tag immediately followed by the
// payload struct, contiguous within a single block. The payload must be a
// pointer-free fixed-size struct.
func WriteCommand[T any](w *Writer, tag Tag, payload T) error {
	size := int(unsafe.Sizeof(payload))
	buf, err := w.reserve(TagSize + size)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(buf, uint32(tag))
	src := unsafe.Slice((*byte)(unsafe.Pointer(&payload)), size)
	copy(buf[TagSize:], src)
	return nil
}

// WriteData appends a raw trailing span. A zero-length span writes nothing
// at all; the reader must likewise treat zero length as "no record".
func (w *Writer) WriteData(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	buf, err := w.reserve(len(p))
	if err != nil {
		return err
	}
	copy(buf, p)
	return nil
}

// WriteArray appends a contiguous span of pointer-free values as a raw
// trailing span. Empty spans write nothing.
func WriteArray[T any](w *Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	size := len(items) * int(unsafe.Sizeof(items[0]))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&items[0])), size)
	return w.WriteData(raw)
}

// WriteSlots appends resource table slots as a raw trailing span. Only the
// slots are written; reference counts are untouched. This is safe precisely
// because the recording scope has already retained every resource behind
// these slots in its dependency list — callers must uphold that invariant.
func (w *Writer) WriteSlots(slots []uint32) error {
	return WriteArray(w, slots)
}
