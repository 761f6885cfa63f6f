package world

import (
	"github.com/squaresim/backend/internal/component"
	"github.com/squaresim/backend/internal/core/ecs"
)

// State is the simulation world: the ECS container and its component
// columns. Accessed only from the tick goroutine, no locks needed.
type State struct {
	ECS        *ecs.World
	Positions  *ecs.PtrComponentStore[component.Position]
	Velocities *ecs.PtrComponentStore[component.Velocity]
}

func NewState() *State {
	s := &State{
		ECS:        ecs.NewWorld(),
		Positions:  ecs.NewPtrComponentStore[component.Position]("position"),
		Velocities: ecs.NewPtrComponentStore[component.Velocity]("velocity"),
	}
	s.ECS.Registry().Register(s.Positions)
	s.ECS.Registry().Register(s.Velocities)
	return s
}

// SpawnMover reserves an entity and queues a Position and a Velocity for it.
func (s *State) SpawnMover(pos component.Position, vel component.Velocity) ecs.EntityID {
	id := s.ECS.Reserve()
	ecs.InsertDeferred(s.ECS, s.Positions, id, pos)
	ecs.InsertDeferred(s.ECS, s.Velocities, id, vel)
	return id
}

// SpawnStatic reserves an entity and queues only a Position.
func (s *State) SpawnStatic(pos component.Position) ecs.EntityID {
	id := s.ECS.Reserve()
	ecs.InsertDeferred(s.ECS, s.Positions, id, pos)
	return id
}

// PositionOf returns the committed Position of a live entity.
func (s *State) PositionOf(id ecs.EntityID) (*component.Position, bool) {
	if !s.ECS.Alive(id) {
		return nil, false
	}
	return s.Positions.Get(id)
}

// VelocityOf returns the committed Velocity of a live entity for mutation.
func (s *State) VelocityOf(id ecs.EntityID) (*component.Velocity, bool) {
	if !s.ECS.Alive(id) {
		return nil, false
	}
	return s.Velocities.Get(id)
}

// Alive reports whether id names a committed entity.
func (s *State) Alive(id ecs.EntityID) bool {
	return s.ECS.Alive(id)
}
