package domain

import "context"

// Prompt is one chat completion request: a fixed system instruction plus the
// assembled user message.
type Prompt struct {
	System string
	User   string
}

// Completer generates a text completion for a prompt. Implementations return
// the first completion's content, or an empty string when the provider
// responds with no choices.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
