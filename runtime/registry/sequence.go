package registry

import (
	"strconv"
	"sync/atomic"
)

// anonymousClassPrefix is prepended to the generated numeric suffix when a
// class is registered without an explicit name.
const anonymousClassPrefix = "AnonymousClass"

// Sequence hands out unique, strictly increasing identifiers for anonymous
// class registrations. The first call to Next returns 1. Identifiers are
// never reused, even when the registration that consumed one fails, so two
// generated class names can never collide within a process.
//
// The package-level default sequence is shared process-wide; a Registry can
// be given its own via WithSequence so tests can observe or restart it.
type Sequence struct {
	n atomic.Uint64
}

// Next returns the next identifier. Safe for concurrent use.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// defaultSequence backs every Registry that was not given its own.
var defaultSequence Sequence

// anonymousName synthesizes a class name from the next identifier.
func anonymousName(s *Sequence) string {
	return anonymousClassPrefix + strconv.FormatUint(s.Next(), 10)
}
