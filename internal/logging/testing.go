package logging

import (
	"bytes"
	"context"
)

// NewTestContext returns a context carrying a logger configured from flags,
// plus the buffer that logger writes to so tests can assert on emitted lines.
func NewTestContext(flags Flags) (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	Configure(l, flags)
	return WithLogger(context.Background(), l), &buf
}
