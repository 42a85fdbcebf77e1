// Package llm provides report-generation model clients behind one
// provider-neutral interface.
package llm

import "context"

// Client generates a single non-streaming completion.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request is one completion request.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature *float64
	TopP        *float64
	MaxTokens   int
}

// Response is the model's reply.
type Response struct {
	Text  string
	Model string
	Usage Usage
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
}
