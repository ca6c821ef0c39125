package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader provides context-aware line reading that can be interrupted.
type LineReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewLineReader creates a reader over the given input stream.
func NewLineReader(reader io.Reader) *LineReader {
	if reader == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{reader: bufio.NewReader(reader)}
}

// ReadLine reads one trimmed line, respecting context cancellation.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		// The reading goroutine keeps blocking until stdin delivers a
		// line, but the caller returns immediately.
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && (res.value == "" || res.err != io.EOF) {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
