package lazy

import (
	"sync"

	"github.com/hostbind/hostbind/runtime/host"
)

// Node is the property-path binding: a lazily resolved node reference whose
// path lives in the editable Path field instead of being fixed in code.
// Registering the field through Registry.ExportNodePath exposes the path to
// the host's inspector under the member's reserved path key.
//
// The zero value is ready to use; set Path before the first Resolve.
type Node struct {
	// Path is read at resolution time, so edits made before the first
	// Resolve (or after an Invalidate) take effect.
	Path host.NodePath

	mu  sync.Mutex
	set bool
	ref host.NodeRef
}

// Resolve returns the bound node, looking it up at Path on the first call
// and caching the result. An absent lookup is not cached; the next Resolve
// retries.
func (n *Node) Resolve(h host.Host, owner any) (host.NodeRef, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.set {
		return n.ref, true
	}
	ref, ok := h.GetNode(owner, n.Path)
	if !ok {
		return nil, false
	}
	n.ref = ref
	n.set = true
	return ref, true
}

// Set stores a node reference directly, bypassing resolution.
func (n *Node) Set(ref host.NodeRef) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ref = ref
	n.set = true
}

// Invalidate drops the cached reference so the next Resolve looks the node
// up again, picking up any edit to Path.
func (n *Node) Invalidate() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ref = nil
	n.set = false
}
