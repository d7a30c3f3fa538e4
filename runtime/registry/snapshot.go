package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// SnapshotVersion is the schema version written into snapshots, bumped when
// the snapshot shape changes.
const SnapshotVersion = "1"

// Snapshot is a JSON-serializable view of everything a registry has
// registered. It is what the introspection CLI and the inspect server
// operate on.
type Snapshot struct {
	Version   string          `json:"version"`
	Generated time.Time       `json:"generated"`
	Classes   []ClassSnapshot `json:"classes"`
}

// ClassSnapshot captures one class with all of its registered members.
type ClassSnapshot struct {
	ClassRegistration
	Properties []PropertyRecord `json:"properties,omitempty"`
	Signals    []SignalRecord   `json:"signals,omitempty"`
	RPCs       []RPCRecord      `json:"rpcs,omitempty"`
}

// Snapshot returns a copy of the registry's current contents, with classes
// sorted by name for stable output.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()

	classes := make([]ClassSnapshot, 0, len(r.entries))
	for _, entry := range r.entries {
		cs := ClassSnapshot{ClassRegistration: entry.reg}
		cs.Properties = append(cs.Properties, entry.properties...)
		cs.Signals = append(cs.Signals, entry.signals...)
		cs.RPCs = append(cs.RPCs, entry.rpcs...)
		classes = append(classes, cs)
	}
	r.mu.RUnlock()

	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Name < classes[j].Name
	})

	return Snapshot{
		Version:   SnapshotVersion,
		Generated: time.Now().UTC(),
		Classes:   classes,
	}
}

// Class finds a class in the snapshot by name.
func (s Snapshot) Class(name string) (*ClassSnapshot, bool) {
	for i := range s.Classes {
		if s.Classes[i].Name == name {
			return &s.Classes[i], true
		}
	}
	return nil, false
}

// WriteSnapshot serializes the registry's current contents as indented JSON.
func (r *Registry) WriteSnapshot(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot parses a snapshot previously written by WriteSnapshot.
func ReadSnapshot(rd io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(rd).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}
	return &snap, nil
}
