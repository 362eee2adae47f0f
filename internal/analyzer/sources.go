package analyzer

import (
	"strings"

	"github.com/sozercan/algowhisperer/apimodels"
	"github.com/sozercan/algowhisperer/internal/llm"
)

// normalizeSources drops citations without a URI, fills in missing titles and
// removes duplicate URIs. The first occurrence of a URI wins and order is
// preserved.
func normalizeSources(citations []llm.Citation) []apimodels.Source {
	sources := make([]apimodels.Source, 0, len(citations))
	seen := make(map[string]struct{}, len(citations))

	for _, c := range citations {
		uri := strings.TrimSpace(c.URI)
		if uri == "" {
			continue
		}
		if _, dup := seen[uri]; dup {
			continue
		}
		seen[uri] = struct{}{}

		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = DefaultSourceTitle
		}
		sources = append(sources, apimodels.Source{URI: uri, Title: title})
	}
	return sources
}
