package logging

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// WithLogger attaches l to the context so request plumbing downstream can
// pick it up.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger carried by ctx. Contexts without one get a
// silent WarnLevel fallback so call sites never have to nil-check.
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return NewLogger(io.Discard)
}

// NewLogger builds a logger on w at the package default level, WarnLevel.
// Callers raise or lower the level afterwards via Configure.
func NewLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level: log.WarnLevel,
	})
}
