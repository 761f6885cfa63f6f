package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/squaresim/backend/internal/component"
	"github.com/squaresim/backend/internal/world"
)

const seedYAML = `
- name: drifter
  position: {x: 1.5, y: -2}
  velocity: {x: 0.25, y: 0}
- name: marker
  position: {x: 10, y: 10}
`

func TestLoadAndSpawnSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	table, err := LoadSeedTable(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Count())

	state := world.NewState()
	ids := table.Spawn(state)
	require.Len(t, ids, 2)
	state.ECS.Commit()

	pos, ok := state.PositionOf(ids[0])
	require.True(t, ok)
	require.Equal(t, component.Position{X: 1.5, Y: -2}, *pos)
	vel, ok := state.VelocityOf(ids[0])
	require.True(t, ok)
	require.Equal(t, component.Velocity{X: 0.25}, *vel)

	_, ok = state.VelocityOf(ids[1])
	require.False(t, ok)
	pos, ok = state.PositionOf(ids[1])
	require.True(t, ok)
	require.Equal(t, component.Position{X: 10, Y: 10}, *pos)
}

func TestLoadSeedTableErrors(t *testing.T) {
	_, err := LoadSeedTable(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("position: [1, 2"), 0o644))
	_, err = LoadSeedTable(path)
	require.Error(t, err)
}
