// Package hosttest provides an in-memory fake of the host runtime for
// tests. The fake records every registration, counts node lookups per path,
// and can be scripted to fail registrations or to miss lookups a fixed
// number of times before a node appears.
package hosttest

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/hostbind/hostbind/runtime/host"
)

// Node is the node reference type handed out by the fake host.
type Node struct {
	ID   uuid.UUID
	Path host.NodePath
}

// RPCCall records one ConfigureRPC invocation.
type RPCCall struct {
	Instance any
	Method   string
	Config   host.RPCConfig
}

// Host is a fake host.Host. The zero value is not usable; construct with
// New.
type Host struct {
	mu sync.Mutex

	// Error injection. When set, the corresponding registration call fails
	// with the given error.
	RegisterClassErr    error
	RegisterSignalErr   error
	RegisterPropertyErr error

	classNames map[string]reflect.Type
	classes    map[reflect.Type]string
	tooled     map[reflect.Type]bool
	icons      map[reflect.Type]string
	signals    map[reflect.Type][]string
	properties map[reflect.Type]map[string]host.PropertyDescriptor

	nodes      map[host.NodePath]*Node
	missesLeft map[host.NodePath]int
	lookups    map[host.NodePath]int

	rpcCalls []RPCCall
}

// New creates an empty fake host.
func New() *Host {
	return &Host{
		classNames: make(map[string]reflect.Type),
		classes:    make(map[reflect.Type]string),
		tooled:     make(map[reflect.Type]bool),
		icons:      make(map[reflect.Type]string),
		signals:    make(map[reflect.Type][]string),
		properties: make(map[reflect.Type]map[string]host.PropertyDescriptor),
		nodes:      make(map[host.NodePath]*Node),
		missesLeft: make(map[host.NodePath]int),
		lookups:    make(map[host.NodePath]int),
	}
}

// RegisterClass implements host.Host. Names must be unique.
func (h *Host) RegisterClass(class reflect.Type, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.RegisterClassErr != nil {
		return h.RegisterClassErr
	}
	if _, taken := h.classNames[name]; taken {
		return fmt.Errorf("class name %q already taken", name)
	}
	h.classNames[name] = class
	h.classes[class] = name
	return nil
}

// SetTooled implements host.Host.
func (h *Host) SetTooled(class reflect.Type, tooled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tooled[class] = tooled
}

// SetIcon implements host.Host.
func (h *Host) SetIcon(class reflect.Type, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.icons[class] = path
}

// RegisterSignal implements host.Host.
func (h *Host) RegisterSignal(class reflect.Type, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.RegisterSignalErr != nil {
		return h.RegisterSignalErr
	}
	h.signals[class] = append(h.signals[class], name)
	return nil
}

// RegisterProperty implements host.Host.
func (h *Host) RegisterProperty(class reflect.Type, name string, desc host.PropertyDescriptor) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.RegisterPropertyErr != nil {
		return h.RegisterPropertyErr
	}
	props, ok := h.properties[class]
	if !ok {
		props = make(map[string]host.PropertyDescriptor)
		h.properties[class] = props
	}
	props[name] = desc
	return nil
}

// GetNode implements host.Host. Lookups are counted per path. Paths
// scripted with MissFirst report absent for their first N lookups.
func (h *Host) GetNode(instance any, path host.NodePath) (host.NodeRef, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lookups[path]++
	if h.missesLeft[path] > 0 {
		h.missesLeft[path]--
		return nil, false
	}
	n, ok := h.nodes[path]
	if !ok {
		return nil, false
	}
	return n, true
}

// ConfigureRPC implements host.Host.
func (h *Host) ConfigureRPC(instance any, method string, cfg host.RPCConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rpcCalls = append(h.rpcCalls, RPCCall{Instance: instance, Method: method, Config: cfg})
}

// Place creates a node at the given path and returns it.
func (h *Host) Place(path host.NodePath) *Node {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := &Node{ID: uuid.New(), Path: path}
	h.nodes[path] = n
	return n
}

// MissFirst makes the next n lookups of path report absent, even if a node
// has been placed there.
func (h *Host) MissFirst(path host.NodePath, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.missesLeft[path] = n
}

// Lookups returns how many times path has been looked up.
func (h *Host) Lookups(path host.NodePath) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lookups[path]
}

// ClassName returns the name a class was registered under.
func (h *Host) ClassName(class any) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	name, ok := h.classes[host.TypeOf(class)]
	return name, ok
}

// Tooled reports whether a class was marked as a tool class.
func (h *Host) Tooled(class any) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tooled[host.TypeOf(class)]
}

// Icon returns the icon path set for a class.
func (h *Host) Icon(class any) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.icons[host.TypeOf(class)]
}

// Signals returns the signal names registered for a class, in order.
func (h *Host) Signals(class any) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	src := h.signals[host.TypeOf(class)]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Property returns the descriptor registered for a property.
func (h *Host) Property(class any, name string) (host.PropertyDescriptor, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	props, ok := h.properties[host.TypeOf(class)]
	if !ok {
		return host.PropertyDescriptor{}, false
	}
	desc, ok := props[name]
	return desc, ok
}

// RPCCalls returns every ConfigureRPC invocation recorded so far.
func (h *Host) RPCCalls() []RPCCall {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]RPCCall, len(h.rpcCalls))
	copy(out, h.rpcCalls)
	return out
}
