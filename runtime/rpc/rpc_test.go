package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hostbind/hostbind/internal/hosttest"
	"github.com/hostbind/hostbind/runtime/host"
	"github.com/hostbind/hostbind/runtime/lifecycle"
)

type shooter struct {
	Ammo int
}

func (s *shooter) Fire()   {}
func (s *shooter) Reload() {}

func TestDeclare_ConfiguresRPCAtReadiness(t *testing.T) {
	h := hosttest.New()
	hooks := lifecycle.NewHooks()
	d := NewDeclarer(h, hooks)

	d.Declare(&shooter{}, "Fire", host.RPCConfig{Mode: host.ModeAnyPeer})

	// Declaration alone must not touch the host's per-instance table.
	require.Empty(t, h.RPCCalls())

	inst := &shooter{}
	hooks.NotifyReady(inst)

	calls := h.RPCCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, inst, calls[0].Instance)
	assert.Equal(t, "Fire", calls[0].Method)
	assert.Equal(t, host.ModeAnyPeer, calls[0].Config.Mode)
}

func TestDeclare_PartialConfigFallsBackFieldByField(t *testing.T) {
	h := hosttest.New()
	hooks := lifecycle.NewHooks()
	d := NewDeclarer(h, hooks)

	d.Declare(&shooter{}, "Fire", host.RPCConfig{CallLocal: true})
	hooks.NotifyReady(&shooter{})

	calls := h.RPCCalls()
	require.Len(t, calls, 1)
	cfg := calls[0].Config
	assert.Equal(t, host.ModeAuthority, cfg.Mode)
	assert.Equal(t, host.TransferReliable, cfg.TransferMode)
	assert.Equal(t, 0, cfg.TransferChannel)
	assert.True(t, cfg.CallLocal)
}

func TestDeclare_NonCallableMemberWarnsAndStaysInert(t *testing.T) {
	h := hosttest.New()
	hooks := lifecycle.NewHooks()

	core, logs := observer.New(zap.WarnLevel)
	d := NewDeclarer(h, hooks, WithLogger(zap.New(core)))

	d.Declare(&shooter{}, "Ammo", host.RPCConfig{})

	require.Equal(t, 1, logs.Len(), "a warning must be emitted")
	assert.Contains(t, logs.All()[0].Message, "non-callable")
	assert.Equal(t, 0, hooks.Installed(&shooter{}), "no hook may be installed")

	hooks.NotifyReady(&shooter{})
	assert.Empty(t, h.RPCCalls(), "host RPC table must stay untouched")
}

func TestDeclare_MissingMethodWarnsAndStaysInert(t *testing.T) {
	h := hosttest.New()
	hooks := lifecycle.NewHooks()

	core, logs := observer.New(zap.WarnLevel)
	d := NewDeclarer(h, hooks, WithLogger(zap.New(core)))

	d.Declare(&shooter{}, "NoSuchMethod", host.RPCConfig{})

	assert.Equal(t, 1, logs.Len())
	hooks.NotifyReady(&shooter{})
	assert.Empty(t, h.RPCCalls())
}

func TestDeclare_MultipleMethodsCompose(t *testing.T) {
	h := hosttest.New()
	hooks := lifecycle.NewHooks()
	d := NewDeclarer(h, hooks)

	d.Declare(&shooter{}, "Fire", host.RPCConfig{})
	d.Declare(&shooter{}, "Reload", host.RPCConfig{TransferMode: host.TransferUnreliable})

	hooks.NotifyReady(&shooter{})

	calls := h.RPCCalls()
	require.Len(t, calls, 2)
	// Ready hooks run last-installed first.
	assert.Equal(t, "Reload", calls[0].Method)
	assert.Equal(t, "Fire", calls[1].Method)
}

type recorderSpy struct {
	class  any
	method string
	cfg    host.RPCConfig
	calls  int
}

func (r *recorderSpy) RecordRPC(class any, method string, cfg host.RPCConfig) {
	r.class = class
	r.method = method
	r.cfg = cfg
	r.calls++
}

func TestDeclare_RecordsForIntrospection(t *testing.T) {
	h := hosttest.New()
	hooks := lifecycle.NewHooks()
	spy := &recorderSpy{}
	d := NewDeclarer(h, hooks, WithRecorder(spy))

	d.Declare(&shooter{}, "Fire", host.RPCConfig{CallLocal: true})

	require.Equal(t, 1, spy.calls)
	assert.Equal(t, "Fire", spy.method)
	assert.True(t, spy.cfg.CallLocal)

	// Rejected declarations are not recorded.
	d.Declare(&shooter{}, "Ammo", host.RPCConfig{})
	assert.Equal(t, 1, spy.calls)
}
