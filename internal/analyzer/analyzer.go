package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sozercan/algowhisperer/apimodels"
	"github.com/sozercan/algowhisperer/internal/llm"
	"github.com/sozercan/algowhisperer/internal/platform"
	"github.com/sozercan/algowhisperer/internal/prompt"
)

var errUnsupportedURL = errors.New("unsupported problem URL: paste a LeetCode, Codeforces or CodeChef problem link")

// Analyzer turns one user action into exactly one provider call. It keeps no
// state between calls and does not guard against overlapping submissions;
// callers that need single-flight behaviour enforce it themselves.
type Analyzer struct {
	llmProvider llm.Provider
	builder     *prompt.Builder
}

func New(llmProvider llm.Provider, builder *prompt.Builder) *Analyzer {
	if builder == nil {
		builder = prompt.DefaultBuilder()
	}
	return &Analyzer{
		llmProvider: llmProvider,
		builder:     builder,
	}
}

// Analyze classifies rawURL, builds the prompt for action and submits it.
// Refusals are returned as *ValidationError and nothing is sent.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string, action prompt.Action, opts ...llm.Option) (*apimodels.AnalysisResponse, error) {
	c := platform.Evaluate(rawURL)
	if !c.Valid() {
		return nil, NewValidationError("url", errUnsupportedURL)
	}

	req, err := a.builder.Build(c.Input, action)
	if err != nil {
		field := "action"
		if _, ok := action.(prompt.Solve); ok {
			field = "language"
		}
		return nil, NewValidationError(field, err)
	}

	resp, err := a.Submit(ctx, req, opts...)
	if err != nil {
		return nil, err
	}
	resp.Platform = string(c.Platform)
	return resp, nil
}

// Submit sends req to the provider once, with no retry, and normalizes the
// answer. Any provider failure is returned as *ProviderError.
func (a *Analyzer) Submit(ctx context.Context, req prompt.Request, opts ...llm.Option) (*apimodels.AnalysisResponse, error) {
	if req.Action == nil {
		return nil, NewValidationError("action", fmt.Errorf("%w: action is required", prompt.ErrInvalidArgument))
	}
	kind := req.Action.Kind()
	slog.Info("Starting analysis", "url", req.URL, "action", kind, "provider", a.llmProvider.Name())
	startTime := time.Now()

	callOpts := make([]llm.Option, 0, len(opts)+2)
	if req.Temperature != nil {
		callOpts = append(callOpts, llm.WithTemperature(*req.Temperature))
	}
	if req.WebSearch != nil {
		callOpts = append(callOpts, llm.WithWebSearch(*req.WebSearch))
	}
	callOpts = append(callOpts, opts...)

	llmResp, err := a.llmProvider.Analyze(
		ctx,
		[]string{req.SystemInstruction},
		[]string{req.Prompt},
		callOpts...,
	)
	if err != nil {
		slog.Error("LLM analysis failed", "provider", a.llmProvider.Name(), "action", kind, "error", err)
		return nil, &ProviderError{Provider: a.llmProvider.Name(), cause: err}
	}
	if llmResp == nil {
		slog.Error("LLM analysis returned no response", "provider", a.llmProvider.Name(), "action", kind)
		return nil, &ProviderError{Provider: a.llmProvider.Name(), cause: errors.New("empty provider response")}
	}

	content := llmResp.Content
	if strings.TrimSpace(content) == "" {
		content = NoAnswerMessage
	}

	result := &apimodels.AnalysisResponse{
		ID:      uuid.NewString(),
		Action:  string(kind),
		URL:     req.URL,
		Content: content,
		Sources: normalizeSources(llmResp.Citations),
		Metadata: apimodels.AnalysisMetadata{
			Duration:   time.Since(startTime).String(),
			Model:      llmResp.Model,
			Provider:   a.llmProvider.Name(),
			TokensUsed: llmResp.Usage.TotalTokens,
		},
	}
	if s, ok := req.Action.(prompt.Solve); ok {
		result.Language = s.Language.String()
	}

	slog.Info("Analysis completed", "action", kind, "duration", result.Metadata.Duration, "sources", len(result.Sources))
	return result, nil
}
