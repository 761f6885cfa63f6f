package protocol

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/squaresim/backend/internal/core/ecs"
	"github.com/squaresim/backend/internal/core/event"
	"github.com/squaresim/backend/internal/world"
)

// Context is the scoped access a method gets while it runs. Handlers must
// not keep any of it after returning.
type Context struct {
	World   *world.State
	Events  *event.Bus
	Request Request
	Log     *zap.Logger
}

// Result carries method specific response fields.
type Result struct {
	EntityID *ecs.EntityID
}

// HandlerFunc executes one method.
type HandlerFunc func(ctx *Context) (Result, error)

// Registry maps method names to handlers.
type Registry struct {
	handlers map[string]HandlerFunc
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]HandlerFunc),
		log:      log,
	}
}

func (reg *Registry) Register(method string, fn HandlerFunc) {
	reg.handlers[method] = fn
}

// Methods returns the registered method names, sorted.
func (reg *Registry) Methods() []string {
	out := make([]string, 0, len(reg.handlers))
	for m := range reg.handlers {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Dispatch runs the handler registered for ctx.Request.Method.
func (reg *Registry) Dispatch(ctx *Context) (Result, error) {
	fn, ok := reg.handlers[ctx.Request.Method]
	if !ok {
		return Result{}, ErrUnknownMethod
	}
	return reg.safeCall(fn, ctx)
}

// safeCall keeps a panicking handler from taking down the tick loop.
func (reg *Registry) safeCall(fn HandlerFunc, ctx *Context) (res Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("method handler panic recovered",
				zap.String("method", ctx.Request.Method),
				zap.String("id", ctx.Request.ID),
				zap.Any("panic", rec),
			)
			res = Result{}
			err = fmt.Errorf("%w: panic in %s: %v", ErrInternal, ctx.Request.Method, rec)
		}
	}()
	return fn(ctx)
}
