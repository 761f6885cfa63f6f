package protocol

import (
	"go.uber.org/zap"

	"github.com/squaresim/backend/internal/core/event"
	"github.com/squaresim/backend/internal/ipc"
	"github.com/squaresim/backend/internal/world"
)

// Handler turns one inbound line into exactly one Response.
type Handler struct {
	registry *Registry
	world    *world.State
	events   *event.Bus
	log      *zap.Logger
}

func NewHandler(registry *Registry, state *world.State, events *event.Bus, log *zap.Logger) *Handler {
	return &Handler{
		registry: registry,
		world:    state,
		events:   events,
		log:      log,
	}
}

// Handle validates and executes in. It never fails: every problem is
// reported in the returned Response.
func (h *Handler) Handle(in ipc.Inbound) (Request, Response) {
	if in.Err != nil {
		return Request{}, Response{Err: ErrNotObject.Error()}
	}

	req, hasID, err := ParseRequest(in.Value)
	if err != nil {
		h.log.Debug("malformed command", zap.ByteString("line", in.Line), zap.Error(err))
		if !hasID {
			return req, Response{Err: WireError(err)}
		}
		return req, errorResponse(req.ID, err)
	}

	res, err := h.registry.Dispatch(&Context{
		World:   h.world,
		Events:  h.events,
		Request: req,
		Log:     h.log,
	})
	if err != nil {
		h.log.Debug("command rejected",
			zap.String("id", req.ID),
			zap.String("method", req.Method),
			zap.Error(err),
		)
		return req, errorResponse(req.ID, err)
	}

	id := req.ID
	return req, Response{ID: &id, EntityID: res.EntityID}
}

func errorResponse(id string, err error) Response {
	return Response{ID: &id, Err: WireError(err)}
}
