package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput   Phase = iota // 0: pop and answer one command
	PhaseUpdate               // 1: simulation logic
	PhasePersist              // 2: hand journal batches to the writer
	PhaseCommit               // 3: apply deferred entity/component operations
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseUpdate:
		return "update"
	case PhasePersist:
		return "persist"
	case PhaseCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// System is the interface every ECS system implements. A non-nil error from
// Update is fatal for the loop.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
