package apimodels

type AnalysisResponse struct {
	// Unique identifier for this result
	ID string `json:"id"`

	// Wire name of the requested action (explain, solve, test-cases)
	Action string `json:"action"`

	// Target language, only set for solve
	Language string `json:"language,omitempty"`

	// Platform hosting the problem
	Platform string `json:"platform,omitempty"`

	// Problem URL the result was generated for
	URL string `json:"url"`

	// Generated Markdown
	Content string `json:"content"`

	// Deduplicated grounding sources, in first-seen order
	Sources []Source `json:"sources"`

	// Metadata about the analysis
	Metadata AnalysisMetadata `json:"metadata"`
}

type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type AnalysisMetadata struct {
	// Time taken for analysis
	Duration string `json:"duration"`

	// Model used for analysis
	Model string `json:"model"`

	// Backend that served the request
	Provider string `json:"provider"`

	// Tokens used in analysis
	TokensUsed int64 `json:"tokensUsed"`
}

type ClassifyResponse struct {
	URL      string `json:"url"`
	Status   string `json:"status"`
	Valid    bool   `json:"valid"`
	Platform string `json:"platform"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
