package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	coresys "github.com/squaresim/backend/internal/core/system"
	"github.com/squaresim/backend/internal/ipc"
	"github.com/squaresim/backend/internal/protocol"
)

// ResponseWriter emits one response line.
type ResponseWriter interface {
	WriteLine(v any) error
}

// CommandRecorder observes every answered command.
type CommandRecorder interface {
	Record(in ipc.Inbound, req protocol.Request, resp protocol.Response)
}

// InputSystem pops at most one command per tick, runs it through the
// protocol handler and writes its response. Phase 0 (Input).
type InputSystem struct {
	queue    *ipc.Queue
	handler  *protocol.Handler
	out      ResponseWriter
	recorder CommandRecorder // optional
	log      *zap.Logger
}

func NewInputSystem(queue *ipc.Queue, handler *protocol.Handler, out ResponseWriter, recorder CommandRecorder, log *zap.Logger) *InputSystem {
	return &InputSystem{
		queue:    queue,
		handler:  handler,
		out:      out,
		recorder: recorder,
		log:      log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Update returns an error only when the command stream is gone.
func (s *InputSystem) Update(_ time.Duration) error {
	in, status := s.queue.TryPop()
	switch status {
	case ipc.PopEmpty:
		return nil
	case ipc.PopDisconnected:
		if cause := s.queue.Err(); cause != nil {
			return fmt.Errorf("%w: %w", ipc.ErrDisconnected, cause)
		}
		return ipc.ErrDisconnected
	}

	req, resp := s.handler.Handle(in)
	if err := s.out.WriteLine(resp); err != nil {
		// Delivery is best effort; the command has already been applied.
		s.log.Warn("response not delivered", zap.String("id", req.ID), zap.Error(err))
	}
	if s.recorder != nil {
		s.recorder.Record(in, req, resp)
	}
	return nil
}
