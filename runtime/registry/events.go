package registry

import "time"

// EventKind identifies what was registered.
type EventKind string

const (
	EventClass    EventKind = "class"
	EventProperty EventKind = "property"
	EventSignal   EventKind = "signal"
	EventRPC      EventKind = "rpc"
)

// Event describes a single registration as it happens. Tooling (for
// example the inspect server's websocket stream) subscribes to these to
// observe a registry live.
type Event struct {
	Kind   EventKind `json:"kind"`
	Class  string    `json:"class"`
	Member string    `json:"member,omitempty"`
	Time   time.Time `json:"time"`
}

// Subscribe returns a channel of registration events and a cancel function
// that must be called to release the subscription. Events are delivered
// best-effort: a subscriber that falls behind its buffer misses events
// rather than blocking registration.
func (r *Registry) Subscribe() (<-chan Event, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan Event, 64)
	r.subs[id] = ch

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if sub, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// publish delivers an event to all current subscribers without blocking.
func (r *Registry) publish(ev Event) {
	ev.Time = time.Now()

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ch := range r.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
