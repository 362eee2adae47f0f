package llm

import (
	"context"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/algowhisperer/internal/config"
)

// OpenAI client implementation. It has no search tool, so responses never
// carry citations.
type OpenAI struct {
	client *openai.Client
	cfg    *config.LLMConfig
}

func NewOpenAI(cfg *config.LLMConfig) (*OpenAI, error) {
	var client *openai.Client

	switch cfg.Provider {
	case config.ProviderAzure:
		client = openai.NewClient(
			azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
			azure.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		)
	default: // "openai"
		opts := []option.RequestOption{
			option.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		}
		if cfg.Endpoint != "" {
			opts = append(opts, option.WithBaseURL(cfg.Endpoint))
		}
		client = openai.NewClient(opts...)
	}

	return &OpenAI{
		client: client,
		cfg:    cfg,
	}, nil
}

func (o *OpenAI) Name() string {
	return string(o.cfg.Provider)
}

func (o *OpenAI) Analyze(ctx context.Context, systemMessages []string, userMessages []string, opts ...Option) (*Response, error) {
	// Apply options
	options := &Options{
		Model:       o.cfg.Model,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
		WebSearch:   o.cfg.WebSearch,
	}
	for _, opt := range opts {
		opt(options)
	}

	if len(userMessages) == 0 {
		return nil, ErrEmptyPrompt
	}
	if options.WebSearch {
		slog.Debug("web search grounding is not available for this provider", "provider", o.Name())
	}

	model := options.Model
	if o.cfg.Provider == config.ProviderAzure && o.cfg.DeploymentName != "" {
		model = o.cfg.DeploymentName
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(systemMessages)+len(userMessages))
	if system := strings.Join(systemMessages, "\n\n"); system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	for _, m := range userMessages {
		messages = append(messages, openai.UserMessage(m))
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.F(model),
		Messages:    openai.F(messages),
		Temperature: openai.F(options.Temperature),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.F(options.MaxTokens)
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}

	// Process the response
	response := &Response{
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		response.Content = resp.Choices[0].Message.Content
	}

	return response, nil
}
