// Package llm adapts generation backends to a single Provider interface.
package llm

import (
	"fmt"
	"log/slog"

	"github.com/sozercan/algowhisperer/internal/config"
)

// NewProvider builds the backend named by cfg.Provider.
func NewProvider(cfg *config.LLMConfig) (Provider, error) {
	slog.Info("creating LLM provider", "provider", cfg.Provider, "model", cfg.Model)

	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGemini(cfg)
	case config.ProviderOpenAI, config.ProviderAzure:
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
