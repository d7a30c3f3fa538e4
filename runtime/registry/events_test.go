package registry

import (
	"reflect"
	"testing"

	"github.com/hostbind/hostbind/internal/hosttest"
)

// newAnonType fabricates a distinct struct type per index so many classes
// can be registered in a loop.
func newAnonType(i int) reflect.Type {
	return reflect.StructOf([]reflect.StructField{{
		Name: "Pad",
		Type: reflect.ArrayOf(i+1, reflect.TypeOf(byte(0))),
	}})
}

func TestSubscribe_ReceivesRegistrationEvents(t *testing.T) {
	reg := New(hosttest.New(), WithSequence(&Sequence{}))

	events, cancel := reg.Subscribe()
	defer cancel()

	if _, err := reg.RegisterClass(&Player{}, WithName("Player")); err != nil {
		t.Fatalf("RegisterClass failed: %v", err)
	}
	if err := reg.RegisterSignal(&Player{}, "died"); err != nil {
		t.Fatalf("RegisterSignal failed: %v", err)
	}

	ev := <-events
	if ev.Kind != EventClass || ev.Class != "Player" {
		t.Errorf("unexpected first event: %+v", ev)
	}

	ev = <-events
	if ev.Kind != EventSignal || ev.Member != "died" {
		t.Errorf("unexpected second event: %+v", ev)
	}
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	reg := New(hosttest.New(), WithSequence(&Sequence{}))

	events, cancel := reg.Subscribe()
	cancel()

	if _, open := <-events; open {
		t.Error("channel should be closed after cancel")
	}

	// Registrations after cancel must not panic or block.
	if _, err := reg.RegisterClass(&Player{}, WithName("Player")); err != nil {
		t.Fatalf("RegisterClass failed: %v", err)
	}
}

func TestPublish_SlowSubscriberDoesNotBlockRegistration(t *testing.T) {
	reg := New(hosttest.New(), WithSequence(&Sequence{}))

	// Never drained; the buffer fills and further events are dropped.
	_, cancel := reg.Subscribe()
	defer cancel()

	for i := 0; i < 200; i++ {
		if _, err := reg.RegisterClass(newAnonType(i)); err != nil {
			t.Fatalf("RegisterClass %d failed: %v", i, err)
		}
	}
}
