package models

type AnalysisRequest struct {
	// URL of the problem to analyze
	URL string `json:"url"`

	// Action is one of explain, solve or test-cases
	Action string `json:"action"`

	// Language is the solution language; required when Action is solve
	Language string `json:"language,omitempty"`

	// Optional parameters to control analysis behavior
	Options AnalysisOptions `json:"options,omitempty"`
}

type AnalysisOptions struct {
	// Model overrides the configured model (e.g. "gemini-2.5-flash")
	Model string `json:"model,omitempty"`
}

type ClassifyRequest struct {
	URL string `json:"url"`
}
