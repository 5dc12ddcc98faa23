package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/farmstead/components"
	"github.com/pthm-cable/farmstead/systems"
)

func TestSnapshotAddRegistryKeepsOrder(t *testing.T) {
	w := ecs.NewWorld()
	crops := systems.NewEntityRegistry(w, components.KindCrop)
	crops.Add("wheat", 2, systems.GrowthParams{DaysToGrow: 3, Required: 2, Yield: 5})
	crops.Add("corn", 1, systems.GrowthParams{DaysToGrow: 4, Required: 3, Yield: 8})
	crops.GrowAll("wheat")
	animals := systems.NewEntityRegistry(w, components.KindAnimal)
	animals.Add("cow", 1, systems.GrowthParams{DaysToGrow: 5, Required: 3, Yield: 2})

	s := &Snapshot{Version: SnapshotVersion, RunID: "r1", Day: 1, Water: 90, Food: 44}
	s.AddRegistry(crops)
	s.AddRegistry(animals)

	require.Len(t, s.Types, 3)
	assert.Equal(t, "wheat", s.Types[0].Type)
	assert.Equal(t, "crop", s.Types[0].Kind)
	assert.Equal(t, "corn", s.Types[1].Type)
	assert.Equal(t, "cow", s.Types[2].Type)
	assert.Equal(t, "animal", s.Types[2].Kind)
	require.Len(t, s.Types[0].Entities, 2)
	assert.Equal(t, 1, s.Types[0].Entities[0].Stage)
	assert.Equal(t, 0, s.Types[1].Entities[0].Stage)
}

func TestSnapshotWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := &Snapshot{
		Version: SnapshotVersion,
		RunID:   "r1",
		Day:     10,
		Water:   56,
		Food:    46,
		Types: []TypeSnapshot{{
			Kind:     "crop",
			Type:     "wheat",
			Entities: []systems.EntityState{{Type: "wheat", Stage: 1, DaysToGrow: 3, Required: 2, Yield: 5}},
		}},
	}
	require.NoError(t, s.WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *s, got)
}

func TestSnapshotWriteJSONBadPath(t *testing.T) {
	s := &Snapshot{Version: SnapshotVersion}
	err := s.WriteJSON(filepath.Join(t.TempDir(), "missing", "state.json"))
	assert.ErrorContains(t, err, "writing snapshot")
}
