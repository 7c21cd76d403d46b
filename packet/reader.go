package packet

import (
	"encoding/binary"
	"unsafe"

	"github.com/gogpu/gpucmd/arena"
)

// Reader walks a stream written by a Writer, in write order. It never
// mutates the blocks, so any number of Readers may traverse the same chain
// as long as no Writer is appending to it.
//
// Read methods panic on a malformed stream. The writer and reader live in
// the same binary and agree on every record's shape, so a mismatch is a
// decode-table bug, not an input error.
type Reader struct {
	cur *arena.Block
	off int
}

// NewReader creates a Reader positioned at the start of the chain headed
// by head. A nil head yields an empty reader.
func NewReader(head *arena.Block) *Reader {
	return &Reader{cur: head}
}

// advance skips exhausted blocks so that cur, when non-nil, has at least
// one unread byte.
func (r *Reader) advance() {
	for r.cur != nil && r.off == r.cur.Used() {
		r.cur = r.cur.Next()
		r.off = 0
	}
}

// IsEmpty reports whether every record has been consumed.
func (r *Reader) IsEmpty() bool {
	r.advance()
	return r.cur == nil
}

// PeekTag returns the tag of the next command record without consuming it.
// The second result is false when the stream is exhausted.
func (r *Reader) PeekTag() (Tag, bool) {
	r.advance()
	if r.cur == nil {
		return 0, false
	}
	return Tag(binary.LittleEndian.Uint32(r.cur.Data()[r.off:])), true
}

// next consumes n bytes from the current block, which must hold them
// contiguously.
func (r *Reader) next(n int) []byte {
	r.advance()
	if r.cur == nil || n > r.cur.Used()-r.off {
		panic("packet: truncated record")
	}
	s := r.cur.Data()[r.off : r.off+n]
	r.off += n
	return s
}

// ReadCommand consumes a command record and returns its payload. T must be
// the exact payload type the writer used for this record's tag.
func ReadCommand[T any](r *Reader) T {
	var v T
	size := int(unsafe.Sizeof(v))
	raw := r.next(TagSize + size)
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
	copy(dst, raw[TagSize:])
	return v
}

// ReadData consumes an n-byte trailing span and returns it. The slice
// aliases block storage and is invalidated when the chain is reclaimed.
// A zero n returns nil without consuming anything, mirroring WriteData.
func (r *Reader) ReadData(n int) []byte {
	if n == 0 {
		return nil
	}
	return r.next(n)
}

// ReadArray consumes a trailing span of count values of type T. The result
// is copied into freshly allocated, properly aligned storage; it does not
// alias block memory.
func ReadArray[T any](r *Reader, count int) []T {
	if count == 0 {
		return nil
	}
	var v T
	raw := r.ReadData(count * int(unsafe.Sizeof(v)))
	out := make([]T, count)
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(raw))
	copy(dst, raw)
	return out
}

// ReadSlots consumes a trailing span of count resource table slots.
func (r *Reader) ReadSlots(count int) []uint32 {
	return ReadArray[uint32](r, count)
}
