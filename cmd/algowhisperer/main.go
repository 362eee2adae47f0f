// Package main implements the algowhisperer command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sozercan/algowhisperer/internal/analyzer"
	"github.com/sozercan/algowhisperer/internal/config"
	"github.com/sozercan/algowhisperer/internal/llm"
	"github.com/sozercan/algowhisperer/internal/prompt"
)

var (
	// Global flags
	configPath string
	verbose    bool
	raw        bool
	model      string
)

var rootCmd = &cobra.Command{
	Use:   "algowhisperer",
	Short: "Explain, solve and stress-test competitive programming problems",
	Long: `algowhisperer takes a LeetCode, Codeforces or CodeChef problem URL and asks a
generative model, grounded with web search, for one of:

  - a plain-language explanation of the problem
  - a solution in a language of your choice, with complexity analysis
  - a table of nasty edge cases to break your solution`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&raw, "raw", false, "Print Markdown without terminal rendering")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Override the configured model")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and wires the analyzer the commands share.
func setup() (*config.Config, *analyzer.Analyzer, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	provider, err := llm.NewProvider(&cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	builder, err := prompt.LoadBuilder(cfg.Prompt.TemplatesFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, analyzer.New(provider, builder), nil
}
