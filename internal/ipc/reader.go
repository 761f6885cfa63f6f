package ipc

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Reader turns a newline-delimited stream into decoded Inbound items.
// Run owns the only blocking read in the process.
type Reader struct {
	src     io.Reader
	queue   *Queue
	maxLine int
	log     *zap.Logger
}

func NewReader(src io.Reader, queue *Queue, maxLine int, log *zap.Logger) *Reader {
	if maxLine <= 0 {
		maxLine = bufio.MaxScanTokenSize
	}
	return &Reader{src: src, queue: queue, maxLine: maxLine, log: log}
}

// Run reads until EOF, a read error or ctx cancellation, then closes the
// queue with the cause (nil on EOF) and returns it.
func (r *Reader) Run(ctx context.Context) error {
	err := r.readLines(ctx)
	r.queue.Close(err)
	if err != nil {
		r.log.Warn("command stream failed", zap.Error(err))
	} else {
		r.log.Info("command stream closed")
	}
	return err
}

func (r *Reader) readLines(ctx context.Context) error {
	sc := bufio.NewScanner(r.src)
	sc.Buffer(make([]byte, 0, min(4096, r.maxLine)), r.maxLine)

	var n uint64
	for sc.Scan() {
		n++
		line := bytes.Clone(bytes.TrimSuffix(sc.Bytes(), []byte("\r")))
		in := Decode(line)
		if in.Err != nil {
			r.log.Debug("undecodable command line", zap.Uint64("line", n), zap.Error(in.Err))
		}
		if err := r.queue.Push(ctx, in); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", n+1, err)
	}
	return nil
}

// Decode parses one line as a JSON value. Failures are carried in the
// result, never returned.
func Decode(line []byte) Inbound {
	in := Inbound{Line: line}
	var v any
	if err := json.Unmarshal(line, &v); err != nil {
		in.Err = err
		return in
	}
	in.Value = v
	return in
}
