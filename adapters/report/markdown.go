package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"fairlens/domain/core"
	"fairlens/domain/fairness"
)

// Renderer turns analysis results into markdown and HTML audit reports.
// It implements ports.Reporter.
type Renderer struct{}

// NewRenderer creates a report renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderMarkdown produces the markdown audit report for one result.
func (r *Renderer) RenderMarkdown(result *fairness.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fairness Audit %s\n\n", result.ID)
	fmt.Fprintf(&b, "- Generated: %s\n", result.Timestamp.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Records: %d, groups: %d\n", result.RecordCount, result.GroupCount)
	fmt.Fprintf(&b, "- Overall bias score: %.3f (risk: %s)\n", result.Overall.BiasScore, result.Overall.RiskLevel())
	if result.Overall.MostBiasedAttribute != "" {
		fmt.Fprintf(&b, "- Most biased attribute: %s; least biased: %s\n",
			result.Overall.MostBiasedAttribute, result.Overall.LeastBiasedAttribute)
	}
	b.WriteString("\n")

	b.WriteString("## Protected attributes\n\n")
	for _, attr := range sortedAttrKeys(result.Attributes) {
		analysis := result.Attributes[attr]
		fmt.Fprintf(&b, "### %s\n\n", attr)
		b.WriteString("| Group | Count | Share |\n|---|---:|---:|\n")
		for _, key := range sortedGroupKeys(analysis.Groups) {
			grp := analysis.Groups[key]
			fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", key, grp.Count, grp.Percentage)
		}
		b.WriteString("\n")

		if len(analysis.Metrics) > 0 {
			b.WriteString("| Target | Disparate impact | Parity diff | Bias severity |\n|---|---:|---:|---:|\n")
			for _, target := range sortedMetricKeys(analysis.Metrics) {
				m := analysis.Metrics[target]
				fmt.Fprintf(&b, "| %s | %.3f | %.3f | %.3f |\n",
					target, m.DisparateImpact, m.StatisticalParityDiff, m.BiasSeverity)
			}
			b.WriteString("\n")
		}
	}

	if len(result.Flags) > 0 {
		b.WriteString("## Flags\n\n")
		for _, f := range result.Flags {
			fmt.Fprintf(&b, "- **%s** [%s] %s\n", f.Type, f.Severity, f.Message)
		}
		b.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "- **%s** [%s] %s: %s\n", rec.Type, rec.Priority, rec.Action, rec.Details)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML converts the markdown report into a standalone HTML page.
func (r *Renderer) RenderHTML(result *fairness.AnalysisResult) []byte {
	md := r.RenderMarkdown(result)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Fairness Audit " + result.ID.String(),
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

func sortedAttrKeys(m map[core.ColumnName]fairness.AttributeAnalysis) []core.ColumnName {
	keys := make([]core.ColumnName, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedMetricKeys(m map[core.ColumnName]fairness.MetricSet) []core.ColumnName {
	keys := make([]core.ColumnName, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedGroupKeys(g fairness.GroupAnalysis) []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
