package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/squaresim/backend/internal/component"
	"github.com/squaresim/backend/internal/core/ecs"
	"github.com/squaresim/backend/internal/world"
)

// SeedEntry is one entity created before the first tick. An entry without
// a velocity gets a Position only.
type SeedEntry struct {
	Name     string              `yaml:"name"`
	Position component.Position  `yaml:"position"`
	Velocity *component.Velocity `yaml:"velocity"`
}

// SeedTable is the parsed seed list.
type SeedTable struct {
	entries []SeedEntry
}

// LoadSeedTable loads a YAML list of SeedEntry.
func LoadSeedTable(path string) (*SeedTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed list: %w", err)
	}
	var entries []SeedEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse seed list: %w", err)
	}
	return &SeedTable{entries: entries}, nil
}

// Count returns the number of entries loaded.
func (t *SeedTable) Count() int {
	return len(t.entries)
}

// Spawn queues every entry into state and returns the reserved IDs in
// list order. The entities appear at the next commit.
func (t *SeedTable) Spawn(state *world.State) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(t.entries))
	for _, e := range t.entries {
		if e.Velocity != nil {
			ids = append(ids, state.SpawnMover(e.Position, *e.Velocity))
		} else {
			ids = append(ids, state.SpawnStatic(e.Position))
		}
	}
	return ids
}
