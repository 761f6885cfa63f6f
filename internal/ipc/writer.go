package ipc

import (
	"bufio"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// LineWriter writes one JSON document per line and flushes after each, so a
// response leaves the process in the tick that produced it.
type LineWriter struct {
	w     *bufio.Writer
	lines uint64
}

func NewLineWriter(dst io.Writer) *LineWriter {
	return &LineWriter{w: bufio.NewWriter(dst)}
}

func (lw *LineWriter) WriteLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	b = append(b, '\n')
	if _, err := lw.w.Write(b); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	if err := lw.w.Flush(); err != nil {
		return fmt.Errorf("flush response: %w", err)
	}
	lw.lines++
	return nil
}

// Lines returns how many lines were written successfully.
func (lw *LineWriter) Lines() uint64 { return lw.lines }
