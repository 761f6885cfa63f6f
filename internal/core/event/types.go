package event

import (
	"github.com/squaresim/backend/internal/component"
	"github.com/squaresim/backend/internal/core/ecs"
)

// EntitySpawned is emitted when a command reserves a new entity.
type EntitySpawned struct {
	Entity    ecs.EntityID
	RequestID string
	Method    string
}

// VelocityChanged is emitted after a velocity command overwrote a component.
type VelocityChanged struct {
	Entity    ecs.EntityID
	RequestID string
	Old       component.Velocity
	New       component.Velocity
}
