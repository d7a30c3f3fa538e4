// Package rpc turns method-level RPC declarations into deferred host
// registrations. A declaration is made at class-definition time, but the
// host's RPC table is per instance, so the actual ConfigureRPC call is
// installed as a ready hook and runs once for every instance at readiness.
package rpc

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/hostbind/hostbind/runtime/host"
	"github.com/hostbind/hostbind/runtime/lifecycle"
)

// Recorder mirrors declarations into an introspection surface. The registry
// implements it; wiring one is optional.
type Recorder interface {
	RecordRPC(class any, method string, cfg host.RPCConfig)
}

// Declarer installs RPC declarations for a host.
type Declarer struct {
	host     host.Host
	hooks    *lifecycle.Hooks
	logger   *zap.Logger
	recorder Recorder
}

// Option configures a Declarer.
type Option func(*Declarer)

// WithLogger sets the logger used for declaration warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Declarer) {
		d.logger = logger
	}
}

// WithRecorder mirrors accepted declarations into rec.
func WithRecorder(rec Recorder) Option {
	return func(d *Declarer) {
		d.recorder = rec
	}
}

// NewDeclarer creates a Declarer that installs its ready hooks into hooks.
func NewDeclarer(h host.Host, hooks *lifecycle.Hooks, opts ...Option) *Declarer {
	d := &Declarer{
		host:   h,
		hooks:  hooks,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Declare marks a method for invocation over the host's multiplayer
// transport. Unset config fields fall back to the host defaults
// field-by-field.
//
// If the named member is not a callable method of the class, the
// declaration is inert: a warning is logged, no hook is installed, and the
// host is never called for it. This is deliberately non-fatal so a renamed
// method does not take the whole class down at load time.
func (d *Declarer) Declare(class any, method string, cfg host.RPCConfig) {
	t := host.TypeOf(class)
	if t == nil {
		d.logger.Warn("rpc declaration on nil class", zap.String("method", method))
		return
	}
	if !isCallable(t, method) {
		d.logger.Warn("rpc declaration on non-callable member; skipping",
			zap.String("class", t.String()),
			zap.String("member", method))
		return
	}

	resolved := cfg.Normalized()
	d.hooks.InstallReadyHook(class, func(instance any) {
		d.host.ConfigureRPC(instance, method, resolved)
	})
	if d.recorder != nil {
		d.recorder.RecordRPC(class, method, resolved)
	}
}

// isCallable reports whether the class (or its pointer type) has a method
// with the given name.
func isCallable(t reflect.Type, method string) bool {
	if method == "" {
		return false
	}
	if _, ok := t.MethodByName(method); ok {
		return true
	}
	_, ok := reflect.PointerTo(t).MethodByName(method)
	return ok
}
