package system

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// keep their registration order.
type Runner struct {
	systems []System
	sorted  bool
	ticks   uint64
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Ticks returns the number of completed ticks.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Tick runs every system once. It stops at the first failing system and
// does not count the tick as completed.
func (r *Runner) Tick(dt time.Duration) error {
	r.ensureSorted()
	for _, s := range r.systems {
		if err := s.Update(dt); err != nil {
			return fmt.Errorf("%s phase: %w", s.Phase(), err)
		}
	}
	r.ticks++
	return nil
}

// Run ticks until a system fails or ctx is cancelled. With tickRate > 0 the
// loop is paced by a ticker; otherwise it runs back to back.
func (r *Runner) Run(ctx context.Context, tickRate time.Duration) error {
	if tickRate <= 0 {
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			now := time.Now()
			if err := r.Tick(now.Sub(last)); err != nil {
				return err
			}
			last = now
		}
	}

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := r.Tick(tickRate); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
