// cmd/server/main.go
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/sozercan/algowhisperer/internal/analyzer"
	"github.com/sozercan/algowhisperer/internal/config"
	"github.com/sozercan/algowhisperer/internal/llm"
	"github.com/sozercan/algowhisperer/internal/prompt"
	"github.com/sozercan/algowhisperer/internal/server"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	llmProvider, err := llm.NewProvider(&cfg.LLM)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	builder, err := prompt.LoadBuilder(cfg.Prompt.TemplatesFile)
	if err != nil {
		log.Fatalf("failed to load prompt templates: %v", err)
	}

	analyzer := analyzer.New(llmProvider, builder)

	srv := server.New(*cfg, analyzer)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
