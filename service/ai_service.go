package service

import (
	"context"
)

// AIService is the language-model boundary: a rendered prompt in, generated
// text out. Output may be non-deterministic; callers decide about retries.
type AIService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StreamHandler receives incremental pieces of a streamed generation.
type StreamHandler func(response string)

// StreamingAIService is implemented by providers that can deliver the
// generation incrementally.
type StreamingAIService interface {
	GenerateStream(ctx context.Context, prompt string, streamHandler StreamHandler) error
}
