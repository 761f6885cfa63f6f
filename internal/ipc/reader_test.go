package ipc

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func drain(t *testing.T, q *Queue) []Inbound {
	t.Helper()
	var out []Inbound
	for {
		in, st := q.TryPop()
		switch st {
		case PopReady:
			out = append(out, in)
		case PopDisconnected:
			return out
		case PopEmpty:
			t.Fatal("queue empty before disconnect")
		}
	}
}

func TestReaderDecodesLines(t *testing.T) {
	src := strings.NewReader("{\"id\":\"1\"}\r\nnot-json\n[1,2]\n\n\"tail\"")
	q := NewQueue(16)
	r := NewReader(src, q, 0, zap.NewNop())

	require.NoError(t, r.Run(context.Background()))
	items := drain(t, q)
	require.Len(t, items, 5)

	require.NoError(t, items[0].Err)
	require.Equal(t, map[string]any{"id": "1"}, items[0].Value)
	require.Equal(t, `{"id":"1"}`, string(items[0].Line))

	require.Error(t, items[1].Err)
	require.Nil(t, items[1].Value)
	require.Equal(t, "not-json", string(items[1].Line))

	require.Equal(t, []any{float64(1), float64(2)}, items[2].Value)
	require.Error(t, items[3].Err, "blank line is not a JSON value")
	require.Equal(t, "tail", items[4].Value)
	require.NoError(t, q.Err())
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestReaderPropagatesReadError(t *testing.T) {
	boom := errors.New("boom")
	q := NewQueue(1)
	r := NewReader(io.MultiReader(strings.NewReader("{}\n"), failingReader{boom}), q, 0, zap.NewNop())

	err := r.Run(context.Background())
	require.ErrorIs(t, err, boom)
	require.Len(t, drain(t, q), 1)
	require.ErrorIs(t, q.Err(), boom)
}

func TestReaderRejectsOverlongLine(t *testing.T) {
	q := NewQueue(4)
	r := NewReader(strings.NewReader(strings.Repeat("x", 64)+"\n"), q, 16, zap.NewNop())
	require.Error(t, r.Run(context.Background()))
	require.Empty(t, drain(t, q))
	require.Error(t, q.Err())
}
