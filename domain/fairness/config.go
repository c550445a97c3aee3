package fairness

import "strings"

// Config carries one invocation's analysis settings. Values are copied at
// construction; nothing here is process-global or mutable between runs.
type Config struct {
	// Keyword lists drive column classification. Matching is
	// case-insensitive substring, with a separator-stripped variant tried
	// as well.
	ProtectedAttributeKeywords []string `json:"protected_attribute_keywords"`
	TargetKeywords             []string `json:"target_keywords"`

	// Flagging thresholds
	DisparateImpactThreshold   float64 `json:"disparate_impact_threshold"`
	StatisticalParityThreshold float64 `json:"statistical_parity_threshold"`
	EqualOpportunityThreshold  float64 `json:"equal_opportunity_threshold"`

	// Tractability bounds for the pairwise metrics. Deterministic
	// first-N prefixes of the dataset, not statistical samples.
	IndividualFairnessLimit int `json:"individual_fairness_limit"`
	CounterfactualLimit     int `json:"counterfactual_limit"`
}

// Default keyword lists. DemographicValueKeywords is the fallback matched
// against headers when none of the attribute keywords hit.
var (
	DefaultProtectedKeywords = []string{
		"gender", "sex", "race", "ethnicity", "age", "religion",
		"nationality", "disability", "marital", "pregnancy", "veteran",
	}
	DemographicValueKeywords = []string{
		"male", "female", "black", "white", "asian", "hispanic",
		"young", "old", "elderly",
	}
	DefaultTargetKeywords = []string{
		"prediction", "predicted", "score", "label", "outcome",
		"approved", "decision", "result", "target", "class",
	}
)

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		ProtectedAttributeKeywords: append([]string(nil), DefaultProtectedKeywords...),
		TargetKeywords:             append([]string(nil), DefaultTargetKeywords...),
		DisparateImpactThreshold:   0.8,
		StatisticalParityThreshold: 0.1,
		EqualOpportunityThreshold:  0.1,
		IndividualFairnessLimit:    100,
		CounterfactualLimit:        50,
	}
}

// Normalized returns a copy with keyword lists lower-cased and zero-valued
// fields replaced by defaults, so a partially specified override behaves
// sanely.
func (c Config) Normalized() Config {
	def := DefaultConfig()
	out := c
	if len(out.ProtectedAttributeKeywords) == 0 {
		out.ProtectedAttributeKeywords = def.ProtectedAttributeKeywords
	}
	if len(out.TargetKeywords) == 0 {
		out.TargetKeywords = def.TargetKeywords
	}
	if out.DisparateImpactThreshold == 0 {
		out.DisparateImpactThreshold = def.DisparateImpactThreshold
	}
	if out.StatisticalParityThreshold == 0 {
		out.StatisticalParityThreshold = def.StatisticalParityThreshold
	}
	if out.EqualOpportunityThreshold == 0 {
		out.EqualOpportunityThreshold = def.EqualOpportunityThreshold
	}
	if out.IndividualFairnessLimit == 0 {
		out.IndividualFairnessLimit = def.IndividualFairnessLimit
	}
	if out.CounterfactualLimit == 0 {
		out.CounterfactualLimit = def.CounterfactualLimit
	}
	out.ProtectedAttributeKeywords = lowerAll(out.ProtectedAttributeKeywords)
	out.TargetKeywords = lowerAll(out.TargetKeywords)
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
