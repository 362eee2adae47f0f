package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderAzure  Provider = "azure"
)

type Config struct {
	Server   ServerConfig `mapstructure:"server"`
	LLM      LLMConfig    `mapstructure:"llm"`
	Prompt   PromptConfig `mapstructure:"prompt"`
	Input    InputConfig  `mapstructure:"input"`
	LogLevel string       `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type LLMConfig struct {
	Provider       Provider `mapstructure:"provider"`
	APIKey         string   `mapstructure:"api_key"`
	Endpoint       string   `mapstructure:"endpoint"`
	Model          string   `mapstructure:"model"`
	DeploymentName string   `mapstructure:"deployment"`
	APIVersion     string   `mapstructure:"api_version"`
	Temperature    float64  `mapstructure:"temperature"`
	MaxTokens      int64    `mapstructure:"max_tokens"`
	WebSearch      bool     `mapstructure:"web_search"`
}

type PromptConfig struct {
	// TemplatesFile overrides the built-in prompt templates when set.
	TemplatesFile string `mapstructure:"templates_file"`
}

type InputConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	// Grounded generation regularly takes longer than a typical API call.
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("llm.provider", string(ProviderGemini))
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.model", "gemini-3-pro-preview")
	v.SetDefault("llm.deployment", "")
	v.SetDefault("llm.api_version", "2024-06-01")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("llm.web_search", true)

	v.SetDefault("prompt.templates_file", "")
	v.SetDefault("input.debounce", "300ms")
	v.SetDefault("log_level", "info")
}

// LoadConfig reads configuration from defaults, an optional config file and
// the environment, in increasing order of precedence. A .env file in the
// working directory is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The API key is the one credential; accept the names people already use.
	if err := v.BindEnv("llm.api_key", "LLM_API_KEY", "API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("configuration loaded successfully", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	return &cfg, nil
}

func (c *Config) validate() error {
	c.LLM.Provider = Provider(strings.ToLower(string(c.LLM.Provider)))
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAzure:
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.Provider == ProviderAzure && c.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required for the azure provider")
	}
	if c.Input.Debounce < 0 {
		return fmt.Errorf("input.debounce must not be negative")
	}
	// A missing API key shows up later as a failed provider call.
	return nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
