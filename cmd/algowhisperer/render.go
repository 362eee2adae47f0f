package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/sozercan/algowhisperer/apimodels"
	"github.com/sozercan/algowhisperer/internal/prompt"
	"github.com/sozercan/algowhisperer/internal/session"
)

// renderMarkdown renders md for the terminal, falling back to the raw text if
// glamour cannot.
func renderMarkdown(md string, plain bool) string {
	if plain {
		return md
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// formatResult renders a result followed by its numbered sources.
func formatResult(res *apimodels.AnalysisResponse, plain bool) string {
	var sb strings.Builder

	header := prompt.Kind(res.Action).DisplayName()
	if res.Language != "" {
		header += " (" + res.Language + ")"
	}
	if res.Platform != "" {
		header += " · " + res.Platform
	}
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString("\n")
	sb.WriteString(renderMarkdown(res.Content, plain))

	if len(res.Sources) > 0 {
		sb.WriteString("\nSources\n")
		for i, s := range res.Sources {
			fmt.Fprintf(&sb, "  %d. %s <%s>\n", i+1, s.Title, s.URI)
		}
	}
	return sb.String()
}

// withLoadingMessages prints cycling status lines to w until the returned
// stop func is called.
func withLoadingMessages(ctx context.Context, w io.Writer) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		session.CycleMessages(ctx, session.LoadingInterval, func(msg string) {
			fmt.Fprintf(w, "\r\033[K%s", msg)
		})
	}()
	return func() {
		cancel()
		<-done
		fmt.Fprint(w, "\r\033[K")
	}
}
