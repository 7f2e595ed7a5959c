// SPDX-License-Identifier: MIT

package tv123

import (
	"errors"
	"fmt"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrFeedUnavailable = errors.New("tv123: feed unavailable")
	ErrBadResponse     = errors.New("tv123: invalid response format or malformed data")
)

// ProviderError wraps a sentinel error with request context.
type ProviderError struct {
	Sentinel  error
	Operation string
	FeedID    string
	Status    int
	Err       error // nested lower-level error (e.g. net.Error)
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("tv123: %s feed %q: %v", e.Operation, e.FeedID, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Sentinel
}
