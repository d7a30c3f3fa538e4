// Package lazy implements resolve-once caching for values that can only be
// computed after their owning instance reaches the host's ready lifecycle
// state, such as node references resolved by tree path.
//
// A cache slot uses an explicit is-set flag rather than comparing against
// the zero value, so a legitimately zero resolved value stays cached and is
// never re-resolved. An absent result (resolver reports false) leaves the
// slot empty, so the next access retries; a miss usually just means the
// owner was read before it was ready.
package lazy

import (
	"sync"

	"github.com/hostbind/hostbind/runtime/host"
)

// Resolved is a per-instance cache slot whose value is computed by a
// resolver on first access and kept for the slot's lifetime.
type Resolved[T any] struct {
	mu      sync.Mutex
	set     bool
	value   T
	resolve func() (T, bool)
}

// New creates a slot backed by the given resolver. The resolver reports
// false when the value cannot be produced yet; the slot stays empty and the
// resolver runs again on the next Get.
func New[T any](resolve func() (T, bool)) *Resolved[T] {
	return &Resolved[T]{resolve: resolve}
}

// Get returns the cached value, resolving it first if the slot is empty.
// Resolution happens at most once per slot unless it misses or the value is
// overwritten via Set.
func (r *Resolved[T]) Get() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.set {
		return r.value, true
	}
	if r.resolve == nil {
		var zero T
		return zero, false
	}
	v, ok := r.resolve()
	if !ok {
		var zero T
		return zero, false
	}
	r.value = v
	r.set = true
	return v, true
}

// Set stores a value directly, bypassing resolution. A set value takes
// precedence over lazy resolution, which lets tests and host code inject
// references.
func (r *Resolved[T]) Set(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = v
	r.set = true
}

// Invalidate empties the slot so the next Get resolves again.
func (r *Resolved[T]) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.value = zero
	r.set = false
}

// NodeAt binds a node reference resolved from a path fixed at declaration
// time. The lookup runs against the owner's position in the host tree, so
// it should not be read before the owner is ready.
func NodeAt(h host.Host, owner any, path host.NodePath) *Resolved[host.NodeRef] {
	return New(func() (host.NodeRef, bool) {
		return h.GetNode(owner, path)
	})
}
