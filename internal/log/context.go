// SPDX-License-Identifier: MIT

package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey string

const runIDKey ctxKey = "run_id"

// ContextWithRunID stores the provided refresh-run ID in the context.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the refresh-run ID from context if present.
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}

// WithComponentFromContext returns a logger annotated with the component name
// and enriched with the run ID from ctx when one is present.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	l := WithComponent(component)
	if rid := RunIDFromContext(ctx); rid != "" {
		l = l.With().Str(FieldRunID, rid).Logger()
	}
	return l
}
