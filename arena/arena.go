// Package arena provides a bump allocator that hands out fixed-size blocks
// for command stream storage.
//
// An Arena is owned by exactly one recording scope and is not safe for
// concurrent use. Blocks returned to the arena via Reclaim are recycled by
// later AllocBlock calls, so a long-lived recording scope reaches a steady
// state with no allocation at all.
package arena

import "errors"

// ErrExhausted is returned by AllocBlock when the arena's block budget is
// spent. This is an environment failure, not a bug: callers are expected to
// handle it, typically by marking the recording failed and resetting.
var ErrExhausted = errors.New("arena: block budget exhausted")

// Block is a fixed-size region of command storage. Blocks chain into a
// singly linked, append-only list; the chain order is the write order.
//
// A Block's header is the struct itself: the used byte count and the next
// pointer. The payload bytes follow in buf.
type Block struct {
	next *Block
	used int
	buf  []byte
}

// Cap returns the block's total payload capacity in bytes.
func (b *Block) Cap() int { return len(b.buf) }

// Used returns the number of payload bytes written so far.
func (b *Block) Used() int { return b.used }

// Remaining returns the number of unwritten payload bytes.
func (b *Block) Remaining() int { return len(b.buf) - b.used }

// Next returns the next block in the chain, or nil at the tail.
func (b *Block) Next() *Block { return b.next }

// SetNext links n as the successor of b. The chain is forward-only: a
// block's next pointer is set at most once between reclaims.
func (b *Block) SetNext(n *Block) { b.next = n }

// Data returns the written payload bytes. The slice aliases the block's
// storage and is invalidated by Reclaim.
func (b *Block) Data() []byte { return b.buf[:b.used] }

// Reserve returns a writable slice of n payload bytes, advancing the used
// count. Reserving more than Remaining() is a programming error: the caller
// is responsible for switching to a fresh block first.
func (b *Block) Reserve(n int) []byte {
	if n > b.Remaining() {
		panic("arena: Reserve beyond block capacity")
	}
	s := b.buf[b.used : b.used+n]
	b.used += n
	return s
}

// Arena allocates fixed-size Blocks and recycles reclaimed ones.
type Arena struct {
	blockSize int
	maxBlocks int // 0 means unbounded

	free  *Block // reclaimed blocks, linked through next
	total int    // blocks ever allocated
	live  int    // blocks currently handed out
	peak  int    // high-water mark of live
}

// Option configures an Arena.
type Option func(*Arena)

// WithMaxBlocks caps the number of blocks the arena will ever allocate.
// Once the cap is reached and no reclaimed blocks are available, AllocBlock
// returns ErrExhausted. A value of 0 (the default) means unbounded.
func WithMaxBlocks(n int) Option {
	return func(a *Arena) { a.maxBlocks = n }
}

// New creates an arena handing out blocks of blockSize payload bytes.
// blockSize must be positive.
func New(blockSize int, opts ...Option) *Arena {
	if blockSize <= 0 {
		panic("arena: block size must be positive")
	}
	a := &Arena{blockSize: blockSize}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BlockSize returns the payload capacity of every block this arena hands out.
func (a *Arena) BlockSize() int { return a.blockSize }

// AllocBlock returns an empty block, recycling a reclaimed one when
// available. Returns ErrExhausted when the block budget is spent.
func (a *Arena) AllocBlock() (*Block, error) {
	if b := a.free; b != nil {
		a.free = b.next
		b.next = nil
		b.used = 0
		a.live++
		if a.live > a.peak {
			a.peak = a.live
		}
		return b, nil
	}
	if a.maxBlocks > 0 && a.total >= a.maxBlocks {
		return nil, ErrExhausted
	}
	a.total++
	a.live++
	if a.live > a.peak {
		a.peak = a.live
	}
	return &Block{buf: make([]byte, a.blockSize)}, nil
}

// Reclaim returns a chain of blocks, starting at head, to the arena for
// reuse. Every slice previously obtained from these blocks is invalidated.
// A nil head is a no-op.
func (a *Arena) Reclaim(head *Block) {
	for b := head; b != nil; {
		next := b.next
		b.next = a.free
		b.used = 0
		a.free = b
		a.live--
		b = next
	}
}

// Reset drops the free list so the backing memory can be collected.
// Blocks still handed out are unaffected.
func (a *Arena) Reset() {
	a.free = nil
	a.total = a.live
}

// Live returns the number of blocks currently handed out.
func (a *Arena) Live() int { return a.live }

// Cap returns the total payload bytes of all blocks ever allocated and not
// dropped by Reset.
func (a *Arena) Cap() int { return a.total * a.blockSize }

// Peak returns the high-water mark of simultaneously live blocks. Unlike
// Live it is never decremented, which makes it useful for sizing
// WithMaxBlocks budgets.
func (a *Arena) Peak() int { return a.peak }
