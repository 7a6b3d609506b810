package venice

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	sseDataPrefix = "data: "
	sseDoneMarker = "[DONE]"
)

// Stream decodes a server-sent-event response body into a lazy, pull-based,
// single-pass sequence of T values. No bytes are read from the connection
// until Next is called, and no background task exists: closing or abandoning
// the stream releases the connection immediately.
type Stream[T any] struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

func newStream[T any](body io.ReadCloser) *Stream[T] {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream[T]{body: body, scanner: scanner}
}

// Next returns the next decoded value. Lines without the "data: " prefix are
// ignored, and the "data: [DONE]" sentinel ends the sequence with io.EOF.
// A malformed data line yields a *ParseError without terminating the stream;
// the caller may keep pulling. Read failures on the underlying body are
// terminal and surface as *NetworkError.
func (s *Stream[T]) Next() (*T, error) {
	if s.done {
		return nil, io.EOF
	}

	for s.scanner.Scan() {
		raw := s.scanner.Bytes()
		if !utf8.Valid(raw) {
			s.done = true
			return nil, &ParseError{Message: "stream contains invalid UTF-8"}
		}

		data, ok := strings.CutPrefix(string(raw), sseDataPrefix)
		if !ok {
			continue
		}
		if data == sseDoneMarker {
			s.done = true
			return nil, io.EOF
		}

		var value T
		if err := json.Unmarshal([]byte(data), &value); err != nil {
			return nil, &ParseError{Message: "failed to decode stream chunk", Err: err}
		}
		return &value, nil
	}

	s.done = true
	if err := s.scanner.Err(); err != nil {
		return nil, &NetworkError{Err: err}
	}
	return nil, io.EOF
}

// Close releases the underlying connection. It is safe to call multiple
// times and safe to call before the stream is exhausted.
func (s *Stream[T]) Close() error {
	s.done = true
	return s.body.Close()
}

// ChatCompletionStream is a Stream of chat completion chunks.
type ChatCompletionStream = Stream[ChatCompletionChunk]
