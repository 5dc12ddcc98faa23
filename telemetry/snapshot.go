package telemetry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pthm-cable/farmstead/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the farm state at the end of a run.
// It is written for inspection only and never read back.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Day     int    `json:"day"`
	Water   int    `json:"water"`
	Food    int    `json:"food"`

	Types []TypeSnapshot `json:"types"`
}

// TypeSnapshot holds every entity of one type, in registry order.
type TypeSnapshot struct {
	Kind     string                `json:"kind"`
	Type     string                `json:"type"`
	Entities []systems.EntityState `json:"entities"`
}

// AddRegistry appends every type of reg to the snapshot.
func (s *Snapshot) AddRegistry(reg *systems.EntityRegistry) {
	for _, t := range reg.Types() {
		s.Types = append(s.Types, TypeSnapshot{
			Kind:     reg.Kind().String(),
			Type:     t,
			Entities: reg.Snapshot(t),
		})
	}
}

// WriteJSON writes the snapshot to path.
func (s *Snapshot) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
