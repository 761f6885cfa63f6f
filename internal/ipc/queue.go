package ipc

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrDisconnected is returned once the producer side of a Queue is gone and
// every buffered command was consumed.
var ErrDisconnected = errors.New("command stream disconnected")

// Inbound is one line read from the command stream.
type Inbound struct {
	Line  []byte // raw line without the trailing newline
	Value any    // decoded JSON value, nil when Err is set
	Err   error  // decode failure
}

// PopStatus tells the consumer what TryPop found.
type PopStatus int

const (
	PopReady        PopStatus = iota // an item was returned
	PopEmpty                         // nothing available right now
	PopDisconnected                  // producer closed and queue drained
)

func (s PopStatus) String() string {
	switch s {
	case PopReady:
		return "ready"
	case PopEmpty:
		return "empty"
	case PopDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("PopStatus(%d)", int(s))
	}
}

// Queue is the single-producer single-consumer handoff between the reader
// goroutine and the tick loop. Only the producer may call Push and Close.
type Queue struct {
	ch        chan Inbound
	closeOnce sync.Once

	mu    sync.Mutex
	cause error
}

func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan Inbound, size)}
}

// Push blocks the producer until there is room or ctx is done.
func (q *Queue) Push(ctx context.Context, in Inbound) error {
	select {
	case q.ch <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryPop never blocks.
func (q *Queue) TryPop() (Inbound, PopStatus) {
	select {
	case in, ok := <-q.ch:
		if !ok {
			return Inbound{}, PopDisconnected
		}
		return in, PopReady
	default:
		return Inbound{}, PopEmpty
	}
}

// Close marks the producer as gone. Items already queued are still
// delivered before TryPop reports PopDisconnected. cause is nil for a
// clean end of input.
func (q *Queue) Close(cause error) {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.cause = cause
		q.mu.Unlock()
		close(q.ch)
	})
}

// Err returns the cause passed to Close.
func (q *Queue) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.cause
}

// Len returns the number of buffered items.
func (q *Queue) Len() int { return len(q.ch) }
