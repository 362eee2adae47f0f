// Package prompt turns a problem URL and an Action into the instructions sent
// to a generation provider.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// ErrInvalidArgument is wrapped by every validation failure in this package.
var ErrInvalidArgument = errors.New("invalid argument")

//go:embed templates.yaml
var defaultTemplates []byte

// Request is a fully rendered, provider-agnostic generation request.
type Request struct {
	Action            Action
	URL               string
	SystemInstruction string
	Prompt            string

	// Temperature and WebSearch are set only when the template set pins
	// them. Nil leaves the provider's configured value in place.
	Temperature *float64
	WebSearch   *bool
}

// TemplateSet is the on-disk shape of a prompt template file.
type TemplateSet struct {
	Temperature *float64          `yaml:"temperature,omitempty"`
	WebSearch   *bool             `yaml:"web_search,omitempty"`
	System      string            `yaml:"system"`
	Prompts     map[string]string `yaml:"prompts"`
}

// Builder renders Requests from a parsed TemplateSet.
type Builder struct {
	system      string
	temperature *float64
	webSearch   *bool
	prompts     map[Kind]*template.Template
}

type templateData struct {
	URL      string
	Language string
}

// ParseTemplates reads a YAML template set. Every action kind must have a
// prompt.
func ParseTemplates(data []byte) (*TemplateSet, error) {
	var set TemplateSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}
	if strings.TrimSpace(set.System) == "" {
		return nil, fmt.Errorf("prompt templates: system instruction is empty")
	}
	for _, k := range Kinds {
		if strings.TrimSpace(set.Prompts[string(k)]) == "" {
			return nil, fmt.Errorf("prompt templates: missing prompt for %q", k)
		}
	}
	return &set, nil
}

// NewBuilder compiles set into a Builder.
func NewBuilder(set *TemplateSet) (*Builder, error) {
	b := &Builder{
		system:      strings.TrimSpace(set.System),
		temperature: set.Temperature,
		webSearch:   set.WebSearch,
		prompts:     make(map[Kind]*template.Template, len(Kinds)),
	}
	for _, k := range Kinds {
		tmpl, err := template.New(string(k)).Option("missingkey=error").Parse(set.Prompts[string(k)])
		if err != nil {
			return nil, fmt.Errorf("failed to compile %q prompt: %w", k, err)
		}
		b.prompts[k] = tmpl
	}
	return b, nil
}

// DefaultBuilder returns a Builder over the embedded templates.
func DefaultBuilder() *Builder {
	set, err := ParseTemplates(defaultTemplates)
	if err != nil {
		panic("prompt: embedded templates are invalid: " + err.Error())
	}
	b, err := NewBuilder(set)
	if err != nil {
		panic("prompt: embedded templates are invalid: " + err.Error())
	}
	return b
}

// LoadBuilder reads templates from path, or uses the embedded set when path
// is empty.
func LoadBuilder(path string) (*Builder, error) {
	if path == "" {
		return DefaultBuilder(), nil
	}

	slog.Info("loading prompt templates", "file", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt templates: %w", err)
	}
	set, err := ParseTemplates(data)
	if err != nil {
		return nil, err
	}
	return NewBuilder(set)
}

// Build renders the request for url and action. It does no I/O.
func (b *Builder) Build(url string, action Action) (Request, error) {
	if action == nil {
		return Request{}, fmt.Errorf("%w: action is required", ErrInvalidArgument)
	}

	data := templateData{URL: url}
	if s, ok := action.(Solve); ok {
		if _, err := NewSolve(s.Language); err != nil {
			return Request{}, err
		}
		data.Language = s.Language.String()
	}

	tmpl, ok := b.prompts[action.Kind()]
	if !ok {
		return Request{}, fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, action.Kind())
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return Request{}, fmt.Errorf("failed to render %q prompt: %w", action.Kind(), err)
	}

	return Request{
		Action:            action,
		URL:               url,
		SystemInstruction: b.system,
		Prompt:            strings.TrimSpace(sb.String()),
		Temperature:       b.temperature,
		WebSearch:         b.webSearch,
	}, nil
}

var defaultBuilder = DefaultBuilder()

// Build renders a request with the embedded templates.
func Build(url string, action Action) (Request, error) {
	return defaultBuilder.Build(url, action)
}
