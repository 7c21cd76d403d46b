package gpucmd

import (
	"fmt"
	"sort"
	"sync"
)

// BackendFactory creates a fresh command buffer for one backend. A factory
// is registered under a name with Register and invoked by NewCommandBuffer.
type BackendFactory func() CommandBuffer

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register makes a backend available under the given name. Backend packages
// call it from init(), so importing a backend is all it takes to enable it:
//
//	func init() {
//	    gpucmd.Register("deferred", func() gpucmd.CommandBuffer {
//	        return deferred.New()
//	    })
//	}
//
// A nil factory or a second registration under the same name panics rather
// than silently replacing a backend: both can only happen during program
// initialization, where failing loudly is the useful behavior.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("gpucmd: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("gpucmd: Register called twice for " + name)
	}
	backends[name] = factory
	Logger().Info("gpucmd: backend registered", "name", name)
}

// Unregister removes a backend from the registry, mainly so tests can clean
// up after themselves. Unregistering an unknown name is a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewCommandBuffer creates a command buffer from the backend registered
// under name:
//
//	import _ "github.com/gogpu/gpucmd/deferred"
//
//	cb, err := gpucmd.NewCommandBuffer("deferred")
//
// An unknown name returns an error wrapping ErrUnknownBackend. The most
// common cause is a missing blank import of the backend package, so the
// message hints at that.
func NewCommandBuffer(name string) (CommandBuffer, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (forgotten import?)", ErrUnknownBackend, name)
	}
	return factory(), nil
}

// MustCommandBuffer is NewCommandBuffer panicking on error, for programs
// that link their backend statically and cannot run without it.
func MustCommandBuffer(name string) CommandBuffer {
	cb, err := NewCommandBuffer(name)
	if err != nil {
		panic(err)
	}
	return cb
}

// Backends returns the registered backend names, sorted for stable output.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend is registered under name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Count returns the number of registered backends.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(backends)
}
