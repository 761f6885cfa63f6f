package protocol

import (
	"fmt"
	"math"
	"strconv"

	"github.com/squaresim/backend/internal/component"
	"github.com/squaresim/backend/internal/core/ecs"
	"github.com/squaresim/backend/internal/core/event"
)

const (
	MethodSpawn    = "spawn"
	MethodVelocity = "velocity"
	// MethodJoin is the older spelling of spawn. It creates a Position only.
	MethodJoin = "join"
)

// RegisterAll installs every supported method.
func RegisterAll(reg *Registry) {
	reg.Register(MethodSpawn, handleSpawn)
	reg.Register(MethodVelocity, handleVelocity)
	reg.Register(MethodJoin, handleJoin)
}

// handleSpawn ignores params.
func handleSpawn(ctx *Context) (Result, error) {
	id := ctx.World.SpawnMover(component.Position{}, component.Velocity{})
	ctx.emitSpawned(id)
	return Result{EntityID: &id}, nil
}

func handleJoin(ctx *Context) (Result, error) {
	id := ctx.World.SpawnStatic(component.Position{})
	ctx.emitSpawned(id)
	return Result{EntityID: &id}, nil
}

// handleVelocity expects [entity id, x, y] and overwrites the committed
// Velocity in place.
func handleVelocity(ctx *Context) (Result, error) {
	p := ctx.Request.Params
	if len(p) < 3 {
		return Result{}, ErrTooFewParams
	}
	id, err := ecs.ParseEntityID(p[0])
	if err != nil {
		return Result{}, fmt.Errorf("%w %q: %v", ErrInvalidEntityID, p[0], err)
	}
	x, err := parseAxis(p[1])
	if err != nil {
		return Result{}, err
	}
	y, err := parseAxis(p[2])
	if err != nil {
		return Result{}, err
	}

	if !ctx.World.Alive(id) {
		return Result{}, fmt.Errorf("%w: %s", ErrNoSuchEntity, id)
	}
	vel, ok := ctx.World.VelocityOf(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNoVelocity, id)
	}
	old := *vel
	*vel = component.Velocity{X: x, Y: y}

	if ctx.Events != nil {
		event.Emit(ctx.Events, event.VelocityChanged{
			Entity:    id,
			RequestID: ctx.Request.ID,
			Old:       old,
			New:       *vel,
		})
	}
	return Result{}, nil
}

// parseAxis accepts any finite value representable as float32.
func parseAxis(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidVelocity, s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w %q: not finite", ErrInvalidVelocity, s)
	}
	return float32(f), nil
}

func (ctx *Context) emitSpawned(id ecs.EntityID) {
	if ctx.Events == nil {
		return
	}
	event.Emit(ctx.Events, event.EntitySpawned{
		Entity:    id,
		RequestID: ctx.Request.ID,
		Method:    ctx.Request.Method,
	})
}
