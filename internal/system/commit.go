package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/squaresim/backend/internal/core/ecs"
	coresys "github.com/squaresim/backend/internal/core/system"
)

// CommitSystem applies the deferred entity and component operations at the
// end of each tick. Phase 3 (Commit).
type CommitSystem struct {
	world *ecs.World
	log   *zap.Logger
}

func NewCommitSystem(world *ecs.World, log *zap.Logger) *CommitSystem {
	return &CommitSystem{world: world, log: log}
}

func (s *CommitSystem) Phase() coresys.Phase { return coresys.PhaseCommit }

func (s *CommitSystem) Update(_ time.Duration) error {
	if s.world.Pending() == 0 {
		return nil
	}
	st := s.world.Commit()
	s.log.Debug("deferred operations committed",
		zap.Int("activated", st.Activated),
		zap.Int("inserted", st.Inserted),
		zap.Int("destroyed", st.Destroyed),
		zap.Int("skipped", st.Skipped),
	)
	return nil
}
