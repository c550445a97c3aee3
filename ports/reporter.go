package ports

import "fairlens/domain/fairness"

// Reporter renders an analysis result into a human-facing document. The
// core never formats output itself; it hands the typed result over.
type Reporter interface {
	RenderMarkdown(result *fairness.AnalysisResult) string
	RenderHTML(result *fairness.AnalysisResult) []byte
}
