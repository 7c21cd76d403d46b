// Package refcount provides intrusive atomic reference counting for GPU
// resources whose lifetime must span asynchronous execution.
//
// A type opts in by embedding Object and implementing Destroy:
//
//	type Texture struct {
//	    refcount.Object
//	    // ...
//	}
//
//	func (t *Texture) Destroy() { /* release backing storage */ }
//
// Ownership is then expressed with Acquire and Release, or through the
// Handle wrapper which pairs them automatically. Counts are atomic so a
// reference acquired on the recording goroutine may be released from a
// completion callback on any other goroutine without additional locking.
package refcount

import (
	"reflect"
	"sync/atomic"
)

// nextID issues process-unique object identities.
var nextID atomic.Uint64

// Counted is the interface implemented by reference-counted objects.
// Embedding Object provides Retain and Ref; the concrete type supplies
// Destroy, which is invoked exactly once when the last reference is
// released. Dispatch to Destroy goes through the concrete type held by the
// caller, so no additional indirection is paid while the object is alive.
type Counted interface {
	// Retain increments the reference count.
	Retain()

	// Ref returns the embedded Object for identity and count access.
	Ref() *Object

	// Destroy releases the object's underlying storage. Called by Release
	// when the count reaches zero; must not be called directly.
	Destroy()
}

// Object is the embeddable base for reference-counted types. The zero value
// is NOT usable; construct with NewObject so the object has a process-unique
// identity. A freshly constructed Object has a count of zero: the first
// Acquire establishes the first reference.
//
// Object must not be copied after first use.
type Object struct {
	id   uint64
	refs atomic.Int64
}

// NewObject returns an Object with a fresh process-unique identity.
func NewObject() Object {
	return Object{id: nextID.Add(1)}
}

// ID returns the object's process-unique identity. Identities are never
// reused within a process, so they are safe to use as map keys that outlive
// the object itself.
func (o *Object) ID() uint64 { return o.id }

// Refs returns the current reference count. Intended for tests and
// diagnostics; the value may be stale by the time it is observed.
func (o *Object) Refs() int64 { return o.refs.Load() }

// Retain increments the reference count.
func (o *Object) Retain() { o.refs.Add(1) }

// Ref returns o. It exists so that embedding Object satisfies Counted.
func (o *Object) Ref() *Object { return o }

// unref decrements the count and reports whether it reached zero.
// Releasing more references than were acquired is a programmer error.
func (o *Object) unref() bool {
	n := o.refs.Add(-1)
	if n < 0 {
		panic("refcount: release of object with zero references")
	}
	return n == 0
}

// IsNil reports whether obj carries no object: a nil interface, or a nil
// concrete pointer wrapped in a non-nil interface. Counted is implemented
// on pointer receivers, so both forms mean "nothing to count".
func IsNil(obj Counted) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Acquire retains obj and returns it, allowing use in expressions:
//
//	t.target = refcount.Acquire(tex)
//
// Acquiring nil (interface or typed pointer) is a no-op.
func Acquire[T Counted](obj T) T {
	if IsNil(obj) {
		return obj
	}
	obj.Retain()
	return obj
}

// Release drops one reference to obj, destroying it when no references
// remain. Releasing nil is a no-op. Safe to call from any goroutine.
func Release(obj Counted) {
	if IsNil(obj) {
		return
	}
	if obj.Ref().unref() {
		obj.Destroy()
	}
}

// Same reports whether a and b are the same object, comparing identities
// rather than interface values. Either side may be nil; two nils are the
// same.
func Same(a, b Counted) bool {
	an, bn := IsNil(a), IsNil(b)
	if an || bn {
		return an && bn
	}
	return a.Ref().ID() == b.Ref().ID()
}

// Handle is a smart reference to a counted object. Constructing a Handle
// acquires a reference; Release drops it. The zero Handle is empty and all
// its methods are no-ops, which gives acquire-of-nothing and
// release-of-nothing the obvious semantics.
//
// Handle values may be copied freely; each copy shares the single reference
// held by the original unless Clone is used.
type Handle[T Counted] struct {
	obj T
	ok  bool
}

// NewHandle acquires a reference to obj and returns a handle owning it.
// A nil obj yields the empty handle.
func NewHandle[T Counted](obj T) Handle[T] {
	if IsNil(obj) {
		return Handle[T]{}
	}
	obj.Retain()
	return Handle[T]{obj: obj, ok: true}
}

// Get returns the referenced object and whether the handle is non-empty.
func (h Handle[T]) Get() (T, bool) { return h.obj, h.ok }

// ID returns the identity of the referenced object, or 0 for an empty handle.
func (h Handle[T]) ID() uint64 {
	if !h.ok {
		return 0
	}
	return h.obj.Ref().ID()
}

// Clone acquires an additional reference and returns a new owning handle.
func (h Handle[T]) Clone() Handle[T] {
	if !h.ok {
		return Handle[T]{}
	}
	return NewHandle(h.obj)
}

// Release drops the handle's reference and empties it. Releasing an empty
// handle is a no-op, so Release is safe to call more than once on the same
// handle variable.
func (h *Handle[T]) Release() {
	if !h.ok {
		return
	}
	obj := h.obj
	*h = Handle[T]{}
	Release(obj)
}

// Equal reports whether two handles reference the same object.
// Two empty handles are equal.
func (h Handle[T]) Equal(other Handle[T]) bool {
	return h.ID() == other.ID()
}
