package host

import (
	"reflect"
	"testing"
)

type sprite struct{}

func TestTypeOf_NormalizesHandles(t *testing.T) {
	want := reflect.TypeOf(sprite{})

	if got := TypeOf(sprite{}); got != want {
		t.Errorf("value handle: got %v", got)
	}
	if got := TypeOf(&sprite{}); got != want {
		t.Errorf("pointer handle: got %v", got)
	}
	if got := TypeOf(want); got != want {
		t.Errorf("reflect.Type handle: got %v", got)
	}
	if got := TypeOf((**sprite)(nil)); got != want {
		t.Errorf("double pointer handle: got %v", got)
	}
}

func TestTypeOf_Nil(t *testing.T) {
	if got := TypeOf(nil); got != nil {
		t.Errorf("nil handle: got %v, want nil", got)
	}
}

func TestRPCConfig_ZeroValueIsHostDefaults(t *testing.T) {
	cfg := RPCConfig{}.Normalized()

	if cfg.Mode != ModeAuthority {
		t.Errorf("default mode: got %v", cfg.Mode)
	}
	if cfg.TransferMode != TransferReliable {
		t.Errorf("default transfer mode: got %v", cfg.TransferMode)
	}
	if cfg.TransferChannel != 0 {
		t.Errorf("default channel: got %d", cfg.TransferChannel)
	}
	if cfg.CallLocal {
		t.Error("default call_local must be false")
	}
}

func TestEnumStrings(t *testing.T) {
	if ModeAnyPeer.String() != "any_peer" {
		t.Errorf("ModeAnyPeer: %s", ModeAnyPeer)
	}
	if TransferUnreliableOrdered.String() != "unreliable_ordered" {
		t.Errorf("TransferUnreliableOrdered: %s", TransferUnreliableOrdered)
	}
	if TypeNodePath.String() != "node_path" {
		t.Errorf("TypeNodePath: %s", TypeNodePath)
	}
	if HintEnum.String() != "enum" {
		t.Errorf("HintEnum: %s", HintEnum)
	}
}
