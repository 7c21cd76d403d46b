package gpucmd

import "strings"

// QueueClass identifies one class of GPU execution a recording may touch.
// Classes are combined into a QueueClassMask.
type QueueClass uint8

const (
	// QueueTransfer covers copy and fill operations.
	QueueTransfer QueueClass = 1 << iota
	// QueueCompute covers compute dispatches.
	QueueCompute
	// QueueRender covers draw calls and render passes.
	QueueRender
	// QueuePresent covers swapchain presentation.
	QueuePresent
)

// queueClassNames maps single QueueClass bits to their string representation.
var queueClassNames = map[QueueClass]string{
	QueueTransfer: "Transfer",
	QueueCompute:  "Compute",
	QueueRender:   "Render",
	QueuePresent:  "Present",
}

// String returns the string representation of a single QueueClass bit.
func (c QueueClass) String() string {
	if name, ok := queueClassNames[c]; ok {
		return name
	}
	return "Unknown"
}

// QueueClassMask is an accumulated bitmask of the queue classes a command
// buffer has recorded work for. Submission layers use it to route the
// buffer to appropriate hardware queues.
//
// The mask is computed purely from which recording scopes were begun:
// beginning a transfer scope sets QueueTransfer, a compute scope sets
// QueueCompute, and a render scope sets QueueRender (plus QueuePresent when
// the scope targets a swapchain).
type QueueClassMask uint8

// Has reports whether all bits of class are set in the mask.
func (m QueueClassMask) Has(class QueueClass) bool {
	return m&QueueClassMask(class) == QueueClassMask(class)
}

// String returns a "|"-separated list of the classes in the mask,
// or "None" for an empty mask.
func (m QueueClassMask) String() string {
	if m == 0 {
		return "None"
	}
	var parts []string
	for _, c := range []QueueClass{QueueTransfer, QueueCompute, QueueRender, QueuePresent} {
		if m.Has(c) {
			parts = append(parts, c.String())
		}
	}
	return strings.Join(parts, "|")
}
