// Package statecache interns decoded render state so that replay validates
// each distinct packed word once instead of on every SetRenderState record.
package statecache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gogpu/gpucmd"
)

// DefaultSize bounds the number of distinct states a cache retains. Real
// recordings cycle through a handful of states; the bound only matters for
// adversarial streams.
const DefaultSize = 256

// Cache interns canonical unpacked render states keyed by their packed
// representation. Not safe for concurrent use; each decoder owns one.
type Cache struct {
	states *lru.Cache[uint64, *gpucmd.RenderState]
}

// New creates a cache retaining up to size states. Size must be positive.
func New(size int) *Cache {
	states, err := lru.New[uint64, *gpucmd.RenderState](size)
	if err != nil {
		panic(fmt.Sprintf("statecache: %v", err))
	}
	return &Cache{states: states}
}

// Canonical returns the interned unpacked form of p, validating it on first
// sight. A packed word is canonical when re-packing its unpacked form
// reproduces it exactly; anything else has reserved or out-of-range bits set
// and cannot have come from RenderState.Pack.
//
// The returned state is shared and must not be mutated.
func (c *Cache) Canonical(p gpucmd.PackedRenderState) (*gpucmd.RenderState, error) {
	if s, ok := c.states.Get(uint64(p)); ok {
		return s, nil
	}
	s := p.Unpack()
	if s.Pack() != p {
		return nil, fmt.Errorf("statecache: non-canonical render state %#016x", uint64(p))
	}
	c.states.Add(uint64(p), &s)
	return &s, nil
}

// Len returns the number of interned states.
func (c *Cache) Len() int { return c.states.Len() }
