// Package ai wraps an OpenAI-compatible chat-completions endpoint and
// supplies the static fallback payloads used whenever the model is
// unavailable or returns something unparseable. Every call is a single
// attempt: no retry, no backoff.
package ai

import (
	"context"
	"errors"
)

// Client produces a completion for a system/user prompt pair.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ErrDisabled is returned by the disabled client so callers take their
// fallback branch without special-casing configuration.
var ErrDisabled = errors.New("llm client not configured")

type disabled struct{}

// NewDisabled returns a Client that always fails with ErrDisabled, used
// when no LLM credentials are configured.
func NewDisabled() Client { return disabled{} }

func (disabled) Complete(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}
