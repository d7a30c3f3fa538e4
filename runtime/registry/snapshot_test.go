package registry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hostbind/hostbind/internal/hosttest"
	"github.com/hostbind/hostbind/runtime/host"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	reg := New(hosttest.New(), WithSequence(&Sequence{}))

	if _, err := reg.RegisterClass(&Player{}, WithName("Player"), AsTool()); err != nil {
		t.Fatalf("RegisterClass failed: %v", err)
	}
	if err := reg.RegisterSignal(&Player{}, "died"); err != nil {
		t.Fatalf("RegisterSignal failed: %v", err)
	}
	if err := reg.RegisterEnumProperty(&Player{}, "stance", []string{"idle", "walk"}, 0); err != nil {
		t.Fatalf("RegisterEnumProperty failed: %v", err)
	}
	reg.RecordRPC(&Player{}, "Fire", host.RPCConfig{CallLocal: true})

	var buf bytes.Buffer
	if err := reg.WriteSnapshot(&buf); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	snap, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}

	if snap.Version != SnapshotVersion {
		t.Errorf("version: got %s, want %s", snap.Version, SnapshotVersion)
	}
	cls, ok := snap.Class("Player")
	if !ok {
		t.Fatal("Player missing from snapshot")
	}
	if !cls.Tool {
		t.Error("tool flag lost in round trip")
	}
	if len(cls.Signals) != 1 || cls.Signals[0].Name != "died" {
		t.Errorf("signals lost in round trip: %+v", cls.Signals)
	}
	if len(cls.Properties) != 1 || cls.Properties[0].Descriptor.HintString != "idle,walk" {
		t.Errorf("enum property lost in round trip: %+v", cls.Properties)
	}
	if len(cls.RPCs) != 1 || !cls.RPCs[0].Config.CallLocal {
		t.Errorf("rpc record lost in round trip: %+v", cls.RPCs)
	}
}

func TestSnapshot_ClassesSortedByName(t *testing.T) {
	reg := New(hosttest.New(), WithSequence(&Sequence{}))

	for i, name := range []string{"Zed", "Alpha", "Mid"} {
		if _, err := reg.RegisterClass(newAnonType(i), WithName(name)); err != nil {
			t.Fatalf("RegisterClass %s failed: %v", name, err)
		}
	}

	snap := reg.Snapshot()
	var names []string
	for _, c := range snap.Classes {
		names = append(names, c.Name)
	}
	if got := strings.Join(names, ","); got != "Alpha,Mid,Zed" {
		t.Errorf("classes not sorted: %s", got)
	}
}

func TestReadSnapshot_RejectsUnknownVersion(t *testing.T) {
	_, err := ReadSnapshot(strings.NewReader(`{"version":"99","classes":[]}`))
	if err == nil {
		t.Error("expected error for unsupported version")
	}
}
