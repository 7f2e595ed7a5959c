// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := ContextWithRunID(context.Background(), "run-42")
	assert.Equal(t, "run-42", RunIDFromContext(ctx))
}

func TestRunIDFromContext_Empty(t *testing.T) {
	assert.Empty(t, RunIDFromContext(context.Background()))
	assert.Empty(t, RunIDFromContext(nil)) //nolint:staticcheck // nil ctx is part of the contract
}

func TestWithComponentFromContext(t *testing.T) {
	// Must not panic without a run ID, and must return a usable logger.
	l := WithComponentFromContext(context.Background(), "epg")
	l.Debug().Msg("noop")

	l = WithComponentFromContext(ContextWithRunID(context.Background(), "r1"), "epg")
	l.Debug().Msg("noop")
}
