package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/sozercan/algowhisperer/internal/config"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-3-pro-preview"

// Gemini talks to the Gemini API through google.golang.org/genai and can
// ground answers with Google Search.
type Gemini struct {
	cfg *config.LLMConfig

	// The client is built on first use so that a missing key surfaces as a
	// failed call rather than a startup error.
	once      sync.Once
	client    *genai.Client
	clientErr error
}

func NewGemini(cfg *config.LLMConfig) (*Gemini, error) {
	return &Gemini{cfg: cfg}, nil
}

func (g *Gemini) Name() string {
	return string(config.ProviderGemini)
}

func (g *Gemini) genaiClient(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		if g.cfg.APIKey == "" {
			g.clientErr = fmt.Errorf("GenAI API key is required")
			return
		}
		cc := &genai.ClientConfig{
			APIKey:  g.cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if g.cfg.Endpoint != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.Endpoint}
		}
		g.client, g.clientErr = genai.NewClient(ctx, cc)
		if g.clientErr != nil {
			g.clientErr = fmt.Errorf("failed to create GenAI client: %w", g.clientErr)
		}
	})
	return g.client, g.clientErr
}

func (g *Gemini) Analyze(ctx context.Context, systemMessages []string, userMessages []string, opts ...Option) (*Response, error) {
	options := &Options{
		Model:       g.cfg.Model,
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
		WebSearch:   g.cfg.WebSearch,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Model == "" {
		options.Model = DefaultGeminiModel
	}

	if len(userMessages) == 0 {
		return nil, ErrEmptyPrompt
	}

	client, err := g.genaiClient(ctx)
	if err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, len(userMessages))
	for i, m := range userMessages {
		contents[i] = genai.NewContentFromText(m, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, options.Model, contents, generateConfig(systemMessages, options))
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	out := fromGenAI(resp)
	if out.Model == "" {
		out.Model = options.Model
	}
	slog.Debug("gemini response received",
		"model", out.Model,
		"response_len", len(out.Content),
		"grounding_sources", len(out.Citations),
	)
	return out, nil
}

func generateConfig(systemMessages []string, options *Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(options.Temperature)),
	}
	if system := strings.Join(systemMessages, "\n\n"); system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if options.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(options.MaxTokens)
	}
	if options.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return cfg
}

// fromGenAI flattens the first candidate's text and web grounding chunks.
// Chunks that are not web results are skipped.
func fromGenAI(resp *genai.GenerateContentResponse) *Response {
	out := &Response{}
	if resp == nil {
		return out
	}
	out.Model = resp.ModelVersion
	out.Content = resp.Text()

	if um := resp.UsageMetadata; um != nil {
		out.Usage = Usage{
			PromptTokens:     int64(um.PromptTokenCount),
			CompletionTokens: int64(um.CandidatesTokenCount),
			TotalTokens:      int64(um.TotalTokenCount),
		}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].GroundingMetadata == nil {
		return out
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		out.Citations = append(out.Citations, Citation{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return out
}
