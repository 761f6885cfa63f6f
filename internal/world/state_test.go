package world

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/squaresim/backend/internal/component"
	"github.com/squaresim/backend/internal/core/ecs"
)

func TestSpawnMoverVisibleAfterCommit(t *testing.T) {
	s := NewState()
	id := s.SpawnMover(component.Position{}, component.Velocity{})

	_, ok := s.VelocityOf(id)
	require.False(t, ok)
	_, ok = s.PositionOf(id)
	require.False(t, ok)

	s.ECS.Commit()

	pos, ok := s.PositionOf(id)
	require.True(t, ok)
	require.Equal(t, component.Position{}, *pos)
	vel, ok := s.VelocityOf(id)
	require.True(t, ok)
	require.Equal(t, component.Velocity{}, *vel)
}

func TestSpawnStaticHasNoVelocity(t *testing.T) {
	s := NewState()
	id := s.SpawnStatic(component.Position{X: 2, Y: 3})
	s.ECS.Commit()

	require.True(t, s.Alive(id))
	_, ok := s.VelocityOf(id)
	require.False(t, ok)
	pos, ok := s.PositionOf(id)
	require.True(t, ok)
	require.Equal(t, component.Position{X: 2, Y: 3}, *pos)
}

func TestVelocityImpliesPosition(t *testing.T) {
	s := NewState()
	for i := 0; i < 10; i++ {
		if i%3 == 0 {
			s.SpawnStatic(component.Position{})
		} else {
			s.SpawnMover(component.Position{}, component.Velocity{X: float32(i)})
		}
	}
	s.ECS.Commit()

	s.Velocities.Each(func(id ecs.EntityID, _ *component.Velocity) {
		require.True(t, s.Positions.Has(id), "entity %s has velocity without position", id)
	})
}

func TestDestroyClearsBothColumns(t *testing.T) {
	s := NewState()
	id := s.SpawnMover(component.Position{X: 1}, component.Velocity{Y: 1})
	s.ECS.Commit()

	s.ECS.DestroyDeferred(id)
	s.ECS.Commit()

	require.False(t, s.Positions.Has(id))
	require.False(t, s.Velocities.Has(id))
	_, ok := s.VelocityOf(id)
	require.False(t, ok)
}
