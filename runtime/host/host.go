// Package host defines the contract between hostbind and the external
// object-management runtime that owns object lifecycle, property storage,
// signal dispatch, and RPC transport.
//
// The host is treated as a black box. hostbind only depends on the call
// contracts below; how the host stores or transports anything is its own
// business. The one lifecycle guarantee hostbind relies on: the host invokes
// the ready dispatch (see the lifecycle package) exactly once per instance,
// after the instance is fully attached to the host's managed tree and before
// any other callback that depends on tree membership.
package host

import "reflect"

// NodePath addresses a node inside the host's managed tree.
type NodePath string

// NodeRef is an opaque reference to a node owned by the host.
type NodeRef any

// Host is the registration and query surface the external runtime exposes.
//
// All registration calls are synchronous and are expected to complete or
// fail immediately. Errors returned by the host are structural (duplicate
// name, malformed descriptor) and must not be retried.
type Host interface {
	// RegisterClass registers a class under the given name. The name must be
	// unique within the host's class namespace.
	RegisterClass(class reflect.Type, name string) error

	// SetTooled marks a registered class as available in tool contexts.
	SetTooled(class reflect.Type, tooled bool)

	// SetIcon associates an editor icon path with a registered class.
	SetIcon(class reflect.Type, path string)

	// RegisterSignal declares a named signal on a class.
	RegisterSignal(class reflect.Type, name string) error

	// RegisterProperty declares an inspectable property on a class.
	RegisterProperty(class reflect.Type, name string, desc PropertyDescriptor) error

	// GetNode resolves a node relative to the given instance. The second
	// return value is false when no node exists at the path, which is the
	// normal outcome before the instance reaches the ready state.
	GetNode(instance any, path NodePath) (NodeRef, bool)

	// ConfigureRPC populates the host's per-instance RPC table entry for
	// the named method.
	ConfigureRPC(instance any, method string, cfg RPCConfig)
}

// TypeOf normalizes a class handle to its reflect.Type. Callers may pass a
// reflect.Type directly, a pointer to the zero value of the class struct, or
// the struct value itself; pointer indirection is stripped so *T and T name
// the same class.
func TypeOf(class any) reflect.Type {
	t, ok := class.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(class)
	}
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
