// Package lifecycle composes per-type ready hooks so independent features
// can each inject post-construction setup without overwriting each other.
//
// Hooks are kept as an explicit ordered list per type rather than wrapping
// one callback around another, so an installed hook can never be lost. The
// host invokes NotifyReady exactly once per instance, after the instance is
// fully attached to its managed tree.
package lifecycle

import (
	"reflect"
	"sync"

	"github.com/hostbind/hostbind/runtime/host"
)

// ReadyHandler is implemented by instances with their own ready behavior.
// It always runs after every installed hook.
type ReadyHandler interface {
	Ready()
}

// Setup is a post-construction setup injected by a feature. It runs once
// per instance, at readiness.
type Setup func(instance any)

// Hooks holds the per-type ready hook chains.
type Hooks struct {
	mu     sync.RWMutex
	setups map[reflect.Type][]Setup
}

// NewHooks creates an empty hook table.
func NewHooks() *Hooks {
	return &Hooks{setups: make(map[reflect.Type][]Setup)}
}

// InstallReadyHook appends a setup to the class's ready chain. Installing N
// hooks yields N setups that all execute at readiness, in reverse-install
// order, followed by the instance's own Ready method if it has one.
func (h *Hooks) InstallReadyHook(class any, setup Setup) {
	t := host.TypeOf(class)
	if t == nil || setup == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.setups[t] = append(h.setups[t], setup)
}

// NotifyReady dispatches readiness for an instance: every installed setup
// for its type runs exactly once, last-installed first, then the instance's
// own Ready method if it implements ReadyHandler. The host must call this
// exactly once per instance.
func (h *Hooks) NotifyReady(instance any) {
	t := host.TypeOf(instance)

	h.mu.RLock()
	chain := h.setups[t]
	setups := make([]Setup, len(chain))
	copy(setups, chain)
	h.mu.RUnlock()

	for i := len(setups) - 1; i >= 0; i-- {
		setups[i](instance)
	}

	if handler, ok := instance.(ReadyHandler); ok {
		handler.Ready()
	}
}

// Installed returns the number of hooks installed for a class.
func (h *Hooks) Installed(class any) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.setups[host.TypeOf(class)])
}

// Reset removes all installed hooks (used for testing).
func (h *Hooks) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setups = make(map[reflect.Type][]Setup)
}

// defaultHooks backs the package-level convenience functions.
var defaultHooks = NewHooks()

// Default returns the process-wide hook table.
func Default() *Hooks {
	return defaultHooks
}

// InstallReadyHook installs a hook into the process-wide table.
func InstallReadyHook(class any, setup Setup) {
	defaultHooks.InstallReadyHook(class, setup)
}

// NotifyReady dispatches readiness through the process-wide table.
func NotifyReady(instance any) {
	defaultHooks.NotifyReady(instance)
}
