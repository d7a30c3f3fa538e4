package registry

import (
	"reflect"

	"github.com/hostbind/hostbind/runtime/host"
)

// ClassRegistration captures everything hostbind told the host about one
// class. Created once per class at registration time and never mutated by
// the core afterwards.
type ClassRegistration struct {
	Type reflect.Type `json:"-"`

	// Name is the explicit name supplied at registration, or the generated
	// anonymous name.
	Name string `json:"name"`

	// Anonymous is true when Name was synthesized from the sequence.
	Anonymous bool `json:"anonymous,omitempty"`

	// Tool marks the class as available in tool contexts.
	Tool bool `json:"tool,omitempty"`

	// Icon is the editor icon path, if one was set.
	Icon string `json:"icon,omitempty"`
}

// PropertyRecord is the registry's mirror of a property registration.
type PropertyRecord struct {
	Name       string                  `json:"name"`
	Descriptor host.PropertyDescriptor `json:"descriptor"`
}

// SignalRecord is the registry's mirror of a signal registration. Marker is
// the immutable named value installed for the signal; it always equals the
// signal's own name so code can reference the signal by symbol rather than
// by literal string.
type SignalRecord struct {
	Name   string `json:"name"`
	Marker string `json:"marker"`
}

// RPCRecord mirrors an RPC declaration for introspection. The actual host
// registration is deferred to instance readiness by the rpc package; the
// record exists so tooling can see the declaration before any instance
// exists.
type RPCRecord struct {
	Method string         `json:"method"`
	Config host.RPCConfig `json:"config"`
}

// classEntry is the registry's per-class bookkeeping.
type classEntry struct {
	reg           ClassRegistration
	properties    []PropertyRecord
	signals       []SignalRecord
	signalsByName map[string]string
	rpcs          []RPCRecord
}
