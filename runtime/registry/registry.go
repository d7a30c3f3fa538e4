// Package registry translates declarative class and member registrations
// into calls against the host runtime's reflection API, and keeps a
// queryable mirror of everything it registered for introspection tooling.
//
// All registration happens synchronously during a program's static
// initialization phase, before any instance is constructed. Host errors are
// wrapped in RegistrationError and surfaced immediately so misconfiguration
// is caught at declaration time, not at first use.
package registry

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hostbind/hostbind/runtime/host"
)

// PathPropertySuffix is appended to a member name to form the reserved key
// of the node-path property that backs a property-path binding.
const PathPropertySuffix = "$path"

// Registry manages class and member registrations against a single host.
type Registry struct {
	mu      sync.RWMutex
	host    host.Host
	seq     *Sequence
	logger  *zap.Logger
	entries map[reflect.Type]*classEntry
	byName  map[string]reflect.Type

	subs    map[int]chan Event
	nextSub int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithSequence sets the sequence used to name anonymous classes. Without
// this option the process-wide default sequence is used.
func WithSequence(seq *Sequence) Option {
	return func(r *Registry) {
		r.seq = seq
	}
}

// New creates a registry bound to the given host.
func New(h host.Host, opts ...Option) *Registry {
	r := &Registry{
		host:    h,
		seq:     &defaultSequence,
		logger:  zap.NewNop(),
		entries: make(map[reflect.Type]*classEntry),
		byName:  make(map[string]reflect.Type),
		subs:    make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ClassOption configures a single class registration.
type ClassOption func(*ClassRegistration)

// WithName registers the class under an explicit name instead of a
// generated anonymous one.
func WithName(name string) ClassOption {
	return func(c *ClassRegistration) {
		c.Name = name
	}
}

// AsTool marks the class as available in tool contexts.
func AsTool() ClassOption {
	return func(c *ClassRegistration) {
		c.Tool = true
	}
}

// WithIcon associates an editor icon path with the class.
func WithIcon(path string) ClassOption {
	return func(c *ClassRegistration) {
		c.Icon = path
	}
}

// RegisterClass registers a class with the host. When no explicit name is
// supplied, one is synthesized from the sequence; generated names are
// strictly increasing and never reused, even if this registration fails.
// A class may be registered at most once per registry.
func (r *Registry) RegisterClass(class any, opts ...ClassOption) (*ClassRegistration, error) {
	t := host.TypeOf(class)
	if t == nil {
		return nil, registrationErr("<nil>", "", ErrNilClass)
	}

	reg := ClassRegistration{Type: t}
	for _, opt := range opts {
		opt(&reg)
	}
	if reg.Name == "" {
		reg.Name = anonymousName(r.seq)
		reg.Anonymous = true
	}

	r.mu.Lock()
	if _, exists := r.entries[t]; exists {
		r.mu.Unlock()
		return nil, registrationErr(reg.Name, "", fmt.Errorf("%w: %s", ErrDuplicateClass, t.String()))
	}
	if prev, taken := r.byName[reg.Name]; taken {
		r.mu.Unlock()
		return nil, registrationErr(reg.Name, "", fmt.Errorf("%w: taken by %s", ErrDuplicateName, prev.String()))
	}
	// Reserve the slot before calling out so a concurrent duplicate is
	// rejected rather than double-registered.
	entry := &classEntry{reg: reg, signalsByName: make(map[string]string)}
	r.entries[t] = entry
	r.byName[reg.Name] = t
	r.mu.Unlock()

	if err := r.host.RegisterClass(t, reg.Name); err != nil {
		r.mu.Lock()
		delete(r.entries, t)
		// Another type may hold the name by now; only release our claim.
		if r.byName[reg.Name] == t {
			delete(r.byName, reg.Name)
		}
		r.mu.Unlock()
		return nil, registrationErr(reg.Name, "", err)
	}
	if reg.Tool {
		r.host.SetTooled(t, true)
	}
	if reg.Icon != "" {
		r.host.SetIcon(t, reg.Icon)
	}

	r.logger.Debug("registered class",
		zap.String("class", reg.Name),
		zap.String("type", t.String()),
		zap.Bool("anonymous", reg.Anonymous))
	r.publish(Event{Kind: EventClass, Class: reg.Name})

	regCopy := reg
	return &regCopy, nil
}

// SetTool marks an already-registered class as available in tool contexts.
func (r *Registry) SetTool(class any) error {
	entry, err := r.entry(class)
	if err != nil {
		return err
	}
	r.host.SetTooled(entry.reg.Type, true)

	r.mu.Lock()
	entry.reg.Tool = true
	r.mu.Unlock()
	return nil
}

// SetIcon associates an editor icon path with an already-registered class.
func (r *Registry) SetIcon(class any, path string) error {
	entry, err := r.entry(class)
	if err != nil {
		return err
	}
	r.host.SetIcon(entry.reg.Type, path)

	r.mu.Lock()
	entry.reg.Icon = path
	r.mu.Unlock()
	return nil
}

// RegisterSignal declares a named signal on a registered class and installs
// its immutable marker. The first installation wins: re-registering the same
// signal name is ignored and the original marker keeps its value.
func (r *Registry) RegisterSignal(class any, name string) error {
	entry, err := r.entry(class)
	if err != nil {
		return registrationErr(classLabel(class), name, err)
	}

	r.mu.Lock()
	if _, installed := entry.signalsByName[name]; installed {
		r.mu.Unlock()
		return nil
	}
	// Reserve the marker before calling out so a racing registration of the
	// same signal never reaches the host twice.
	entry.signalsByName[name] = name
	entry.signals = append(entry.signals, SignalRecord{Name: name, Marker: name})
	r.mu.Unlock()

	if err := r.host.RegisterSignal(entry.reg.Type, name); err != nil {
		r.mu.Lock()
		delete(entry.signalsByName, name)
		for i, rec := range entry.signals {
			if rec.Name == name {
				entry.signals = append(entry.signals[:i], entry.signals[i+1:]...)
				break
			}
		}
		r.mu.Unlock()
		return registrationErr(entry.reg.Name, name, err)
	}

	r.logger.Debug("registered signal",
		zap.String("class", entry.reg.Name),
		zap.String("signal", name))
	r.publish(Event{Kind: EventSignal, Class: entry.reg.Name, Member: name})
	return nil
}

// SignalName returns the marker value installed for a signal. The marker is
// immutable: it always equals the name the signal was first registered
// under. The second return value is false when the signal was never
// registered on the class.
func (r *Registry) SignalName(class any, name string) (string, bool) {
	entry, err := r.entry(class)
	if err != nil {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	marker, ok := entry.signalsByName[name]
	return marker, ok
}

// RegisterProperty declares an inspectable property on a registered class.
// The descriptor is passed through to the host unchanged.
func (r *Registry) RegisterProperty(class any, member string, desc host.PropertyDescriptor) error {
	entry, err := r.entry(class)
	if err != nil {
		return registrationErr(classLabel(class), member, err)
	}

	if err := r.host.RegisterProperty(entry.reg.Type, member, desc); err != nil {
		return registrationErr(entry.reg.Name, member, err)
	}

	r.mu.Lock()
	entry.properties = append(entry.properties, PropertyRecord{Name: member, Descriptor: desc})
	r.mu.Unlock()

	r.logger.Debug("registered property",
		zap.String("class", entry.reg.Name),
		zap.String("property", member),
		zap.Stringer("type", desc.Type))
	r.publish(Event{Kind: EventProperty, Class: entry.reg.Name, Member: member})
	return nil
}

// RegisterEnumProperty declares an integer property presented as a dropdown
// of the given labels. defaultIndex selects the initial label by position.
func (r *Registry) RegisterEnumProperty(class any, member string, labels []string, defaultIndex int) error {
	return r.RegisterProperty(class, member, host.PropertyDescriptor{
		Type:       host.TypeInt,
		Hint:       host.HintEnum,
		HintString: EnumHintString(labels),
		Default:    defaultIndex,
	})
}

// ExportNodePath registers the reserved node-path property that backs a
// property-path binding for the given member. The property's key is the
// member name plus PathPropertySuffix, so the path can be edited through the
// host's inspector instead of being hardcoded.
func (r *Registry) ExportNodePath(class any, member string) error {
	return r.RegisterProperty(class, member+PathPropertySuffix, host.PropertyDescriptor{
		Type: host.TypeNodePath,
	})
}

// RecordRPC mirrors an RPC declaration so it is visible to introspection.
// The host-side registration itself is deferred to instance readiness by
// the rpc package.
func (r *Registry) RecordRPC(class any, method string, cfg host.RPCConfig) {
	entry, err := r.entry(class)
	if err != nil {
		return
	}

	r.mu.Lock()
	entry.rpcs = append(entry.rpcs, RPCRecord{Method: method, Config: cfg})
	r.mu.Unlock()

	r.publish(Event{Kind: EventRPC, Class: entry.reg.Name, Member: method})
}

// Class finds a class registration by its registered name.
func (r *Registry) Class(name string) (*ClassRegistration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	regCopy := r.entries[t].reg
	return &regCopy, nil
}

// Classes returns all class registrations. Returns copies to prevent
// external mutation.
func (r *Registry) Classes() []ClassRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make([]ClassRegistration, 0, len(r.entries))
	for _, entry := range r.entries {
		classes = append(classes, entry.reg)
	}
	return classes
}

// Properties returns all property records for a class, in registration
// order. Returns a copy to prevent external mutation.
func (r *Registry) Properties(class any) []PropertyRecord {
	entry, err := r.entry(class)
	if err != nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	props := make([]PropertyRecord, len(entry.properties))
	copy(props, entry.properties)
	return props
}

// Signals returns all signal records for a class, in registration order.
// Returns a copy to prevent external mutation.
func (r *Registry) Signals(class any) []SignalRecord {
	entry, err := r.entry(class)
	if err != nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	signals := make([]SignalRecord, len(entry.signals))
	copy(signals, entry.signals)
	return signals
}

// RPCs returns all RPC records for a class, in declaration order. Returns a
// copy to prevent external mutation.
func (r *Registry) RPCs(class any) []RPCRecord {
	entry, err := r.entry(class)
	if err != nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	rpcs := make([]RPCRecord, len(entry.rpcs))
	copy(rpcs, entry.rpcs)
	return rpcs
}

// Count returns the number of registered classes.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset clears all registrations (used for testing). The sequence is not
// reset: generated identifiers stay unique for the life of the process.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[reflect.Type]*classEntry)
	r.byName = make(map[string]reflect.Type)
}

// entry resolves a class handle to its bookkeeping entry.
func (r *Registry) entry(class any) (*classEntry, error) {
	t := host.TypeOf(class)
	if t == nil {
		return nil, ErrNilClass
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, t.String())
	}
	return entry, nil
}

// classLabel names a class handle for error messages when no registration
// exists to name it properly.
func classLabel(class any) string {
	t := host.TypeOf(class)
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// EnumHintString joins enum labels in declaration order with a single comma
// and no trailing separator. Ordering is significant: the host maps
// selection index to label by position.
func EnumHintString(labels []string) string {
	return strings.Join(labels, ",")
}
