package system

import (
	"time"

	"github.com/squaresim/backend/internal/core/event"
	coresys "github.com/squaresim/backend/internal/core/system"
)

// EventSystem delivers the events emitted since its previous run.
// Phase 1 (Update).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EventSystem) Update(_ time.Duration) error {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	return nil
}
