package packet

import (
	farm "github.com/dgryski/go-farm"

	"github.com/gogpu/gpucmd/arena"
)

// Checksum digests the written contents of the chain headed by head,
// folding each block's bytes into a running farmhash. A sealed recording
// stores the digest and re-verifies it before replay to catch accidental
// mutation of blocks that were handed out elsewhere. An empty chain digests
// to zero.
func Checksum(head *arena.Block) uint64 {
	var h uint64
	for b := head; b != nil; b = b.Next() {
		h = farm.Hash64WithSeed(b.Data(), h)
	}
	return h
}
