package protocol

import (
	"errors"

	"github.com/squaresim/backend/internal/core/ecs"
)

// Wire error texts. A response's "err" field is always one of these.
var (
	ErrNotObject       = errors.New("not an object")
	ErrMissingID       = errors.New("missing id")
	ErrMissingMethod   = errors.New("missing method")
	ErrInvalidParams   = errors.New("missing/invalid params")
	ErrUnknownMethod   = errors.New("unknown method")
	ErrTooFewParams    = errors.New("too few params")
	ErrInvalidEntityID = errors.New("invalid entity id")
	ErrInvalidVelocity = errors.New("invalid velocity")
	ErrNoSuchEntity    = errors.New("no such entity")
	ErrNoVelocity      = errors.New("no velocity component")
	ErrInternal        = errors.New("internal error")
)

var wireErrors = []error{
	ErrNotObject, ErrMissingID, ErrMissingMethod, ErrInvalidParams,
	ErrUnknownMethod, ErrTooFewParams, ErrInvalidEntityID, ErrInvalidVelocity,
	ErrNoSuchEntity, ErrNoVelocity, ErrInternal,
}

// WireError maps err to the text sent to the caller. Detail added by
// wrapping stays in the logs.
func WireError(err error) string {
	for _, w := range wireErrors {
		if errors.Is(err, w) {
			return w.Error()
		}
	}
	return ErrInternal.Error()
}

// Request is a validated command.
type Request struct {
	ID     string
	Method string
	Params []string
}

// Response is one output line. ID is nil when the request carried no usable
// id; EntityID is set by methods that create entities.
type Response struct {
	ID       *string       `json:"id,omitempty"`
	EntityID *ecs.EntityID `json:"entity_id,omitempty"`
	Err      string        `json:"err,omitempty"`
}

// OK reports whether the response carries no error.
func (r Response) OK() bool { return r.Err == "" }

// ParseRequest checks a decoded JSON value against the command schema.
// hasID reports whether req.ID was recovered, which is true for every
// error after ErrMissingID.
func ParseRequest(v any) (req Request, hasID bool, err error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return req, false, ErrNotObject
	}

	id, ok := obj["id"].(string)
	if !ok {
		return req, false, ErrMissingID
	}
	req.ID = id

	method, ok := obj["method"].(string)
	if !ok {
		return req, true, ErrMissingMethod
	}
	req.Method = method

	raw, ok := obj["params"].([]any)
	if !ok {
		return req, true, ErrInvalidParams
	}
	params := make([]string, len(raw))
	for i, p := range raw {
		s, ok := p.(string)
		if !ok {
			return req, true, ErrInvalidParams
		}
		params[i] = s
	}
	req.Params = params
	return req, true, nil
}
