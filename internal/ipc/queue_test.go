package ipc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueueEmptyThenReady(t *testing.T) {
	q := NewQueue(4)
	_, st := q.TryPop()
	require.Equal(t, PopEmpty, st)

	require.NoError(t, q.Push(context.Background(), Inbound{Line: []byte("a")}))
	in, st := q.TryPop()
	require.Equal(t, PopReady, st)
	require.Equal(t, "a", string(in.Line))

	_, st = q.TryPop()
	require.Equal(t, PopEmpty, st)
}

func TestQueueDrainsBeforeDisconnect(t *testing.T) {
	q := NewQueue(4)
	ctx := context.Background()
	require.NoError(t, q.Push(ctx, Inbound{Line: []byte("1")}))
	require.NoError(t, q.Push(ctx, Inbound{Line: []byte("2")}))
	q.Close(nil)

	in, st := q.TryPop()
	require.Equal(t, PopReady, st)
	require.Equal(t, "1", string(in.Line))
	in, st = q.TryPop()
	require.Equal(t, PopReady, st)
	require.Equal(t, "2", string(in.Line))

	_, st = q.TryPop()
	require.Equal(t, PopDisconnected, st)
	_, st = q.TryPop()
	require.Equal(t, PopDisconnected, st, "disconnect is permanent")
	require.NoError(t, q.Err())
}

func TestQueueCloseKeepsFirstCause(t *testing.T) {
	q := NewQueue(1)
	first := errors.New("first")
	q.Close(first)
	q.Close(errors.New("second"))
	require.ErrorIs(t, q.Err(), first)
}

func TestQueuePushHonoursContext(t *testing.T) {
	q := NewQueue(1)
	require.NoError(t, q.Push(context.Background(), Inbound{}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, q.Push(ctx, Inbound{}), context.DeadlineExceeded)
}

func TestQueuePreservesOrderAcrossGoroutines(t *testing.T) {
	const n = 1000
	q := NewQueue(8)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_ = q.Push(context.Background(), Inbound{Value: float64(i)})
		}
		q.Close(nil)
	}()

	var got []float64
	for {
		in, st := q.TryPop()
		if st == PopDisconnected {
			break
		}
		if st == PopEmpty {
			time.Sleep(time.Microsecond)
			continue
		}
		got = append(got, in.Value.(float64))
	}
	wg.Wait()

	require.Len(t, got, n)
	for i, v := range got {
		require.Equal(t, float64(i), v)
	}
}
