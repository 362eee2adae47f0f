package llm

import (
	"context"
	"errors"
)

// ErrEmptyPrompt is returned when no user message is supplied.
var ErrEmptyPrompt = errors.New("no user message to send")

type Provider interface {
	// Analyze sends one generation request and returns the raw response.
	Analyze(ctx context.Context, systemMessages []string, userMessages []string, opts ...Option) (*Response, error)
	// Name identifies the backend in logs and result metadata.
	Name() string
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	// WebSearch asks the backend to ground its answer with a web search tool,
	// if it has one.
	WebSearch bool
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

// WithWebSearch enables search grounding.
func WithWebSearch(enabled bool) Option {
	return func(o *Options) { o.WebSearch = enabled }
}

// WithModel overrides the configured model.
func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

// Citation is a grounding source exactly as the backend reported it.
type Citation struct {
	URI   string
	Title string
}

type Response struct {
	Content   string
	Citations []Citation
	Model     string
	Usage     Usage
}
