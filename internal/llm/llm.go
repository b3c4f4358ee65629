package llm

import (
	"context"
	"errors"
)

// Chat roles understood by every provider adapter.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of a text-generation request.
type Message struct {
	Role    string
	Content string
}

// Request is a single text-generation call. JSON asks the provider for a
// structured JSON object instead of free text.
type Request struct {
	Messages []Message
	JSON     bool
}

// Client abstracts text-generation providers. A nil Client means no
// credential is configured and callers use their deterministic fallback.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Provider() string
	Model() string
}

var (
	// ErrTimeout marks a provider call that exceeded its deadline.
	ErrTimeout = errors.New("llm request timeout")
	// ErrEmptyResponse marks a completion with no usable content.
	ErrEmptyResponse = errors.New("llm response empty content")
)

// Provider reports c's provider name, or "mock" for a nil client.
func Provider(c Client) string {
	if c == nil {
		return "mock"
	}
	return c.Provider()
}

// Model reports c's model name, or "mock" for a nil client.
func Model(c Client) string {
	if c == nil {
		return "mock"
	}
	return c.Model()
}
