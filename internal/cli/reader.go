package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when the context ends before an answer arrives.
var ErrInputCancelled = errors.New("input canceled")

// LineReader hands out trimmed lines of an input stream, one per call, and
// gives up on a call when its context ends. A single goroutine scans the
// input from the first call on; lines nobody asked for stay buffered there.
type LineReader struct {
	in    io.Reader
	lines chan scanned
	once  sync.Once
}

type scanned struct {
	err  error
	text string
}

// NewLineReader wraps in. It panics on a nil reader.
func NewLineReader(in io.Reader) *LineReader {
	if in == nil {
		panic("cli: nil input for LineReader")
	}
	return &LineReader{in: in, lines: make(chan scanned, 1)}
}

func (r *LineReader) scan() {
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			r.lines <- scanned{text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			r.lines <- scanned{err: err}
		}
	}()
}

// ReadLine returns the next line without surrounding whitespace. A last line
// without a newline still counts; io.EOF means the input is exhausted.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.once.Do(r.scan)

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case line, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}
