package fairness

import (
	"math"
	"time"

	"fairlens/domain/core"
	"fairlens/domain/dataset"
)

// UnknownGroup is the sentinel key for records missing the grouping value.
const UnknownGroup = "Unknown"

// TargetStats holds descriptive statistics of one target column inside one
// group. Only values that coerced to numbers contribute.
type TargetStats struct {
	Count        int     `json:"count"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	PositiveRate float64 `json:"positive_rate"` // fraction of values > 0.5
}

// Group is one partition cell of the dataset for a grouping key.
type Group struct {
	Key        string                             `json:"key"`
	Members    []dataset.Record                   `json:"-"`
	Count      int                                `json:"count"`
	Percentage float64                            `json:"percentage"`
	Targets    map[core.ColumnName]TargetStats    `json:"targets"`
}

// GroupAnalysis maps group key to its aggregate. Groups for one attribute
// partition the dataset exactly: counts sum to the record total and
// percentages to 100.
type GroupAnalysis map[string]Group

// TotalCount sums member counts across groups
func (g GroupAnalysis) TotalCount() int {
	total := 0
	for _, grp := range g {
		total += grp.Count
	}
	return total
}

// MetricSet holds the core fairness metrics for one (attribute, target)
// pair.
type MetricSet struct {
	DisparateImpact       float64 `json:"disparate_impact"`
	StatisticalParityDiff float64 `json:"statistical_parity_diff"`
	EqualOpportunity      float64 `json:"equal_opportunity"`
	BiasSeverity          float64 `json:"bias_severity"`
}

// EqualizedOdds compares true- and false-positive rates across groups.
type EqualizedOdds struct {
	TPRByGroup    map[string]float64 `json:"tpr_by_group"`
	FPRByGroup    map[string]float64 `json:"fpr_by_group"`
	TPRDifference float64            `json:"tpr_difference"`
	FPRDifference float64            `json:"fpr_difference"`
	Satisfied     bool               `json:"satisfied"`
}

// Calibration reports per-group calibration error over 0.1-wide score bins
// and the cross-group spread of those errors.
type Calibration struct {
	ErrorByGroup   map[string]float64 `json:"error_by_group"`
	Spread         float64            `json:"spread"`
	WellCalibrated bool               `json:"well_calibrated"`
}

// IndividualFairness summarizes bounded pairwise outcome comparison between
// similar records.
type IndividualFairness struct {
	AverageDifference float64 `json:"average_difference"`
	ComparedPairs     int     `json:"compared_pairs"`
	Violations        bool    `json:"violations"`
}

// CounterfactualFairness scores nearest-neighbor outcome stability across
// group boundaries.
type CounterfactualFairness struct {
	Score       float64 `json:"score"`
	Violations  int     `json:"violations"`
	Comparisons int     `json:"comparisons"`
}

// TreatmentEquality compares per-group false-positive/false-negative
// ratios. Ratios may be +Inf when a group has false positives but no false
// negatives; the spread considers finite ratios only.
type TreatmentEquality struct {
	RatioByGroup map[string]float64 `json:"ratio_by_group"`
	Spread       float64            `json:"spread"`
	Satisfied    bool               `json:"satisfied"`
}

// ExtendedMetricSet bundles the advanced fairness metrics for one
// (attribute, target) pair.
type ExtendedMetricSet struct {
	EqualizedOdds          EqualizedOdds          `json:"equalized_odds"`
	Calibration            Calibration            `json:"calibration"`
	IndividualFairness     IndividualFairness     `json:"individual_fairness"`
	CounterfactualFairness CounterfactualFairness `json:"counterfactual_fairness"`
	TreatmentEquality      TreatmentEquality      `json:"treatment_equality"`
}

// TestResult is the outcome of one significance test. PValue and
// DegreesOfFreedom are nil when the test does not produce them; a nil
// *TestResult means the test's preconditions were unmet, not a failure.
type TestResult struct {
	Statistic        float64  `json:"statistic"`
	PValue           *float64 `json:"p_value,omitempty"`
	DegreesOfFreedom *int     `json:"degrees_of_freedom,omitempty"`
	Significant      bool     `json:"significant"`
}

// TestSet groups the three significance tests for one (attribute, target)
// pair.
type TestSet struct {
	ChiSquare         *TestResult `json:"chi_square,omitempty"`
	TTest             *TestResult `json:"t_test,omitempty"`
	KolmogorovSmirnov *TestResult `json:"kolmogorov_smirnov,omitempty"`
}

// Severity buckets flag and recommendation urgency
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// FlagType identifies what a bias flag is about
type FlagType string

const (
	FlagDisparateImpact   FlagType = "DISPARATE_IMPACT"
	FlagStatisticalParity FlagType = "STATISTICAL_PARITY"
)

// BiasFlag marks one metric crossing its configured threshold.
type BiasFlag struct {
	Type      FlagType        `json:"type"`
	Severity  Severity        `json:"severity"`
	Attribute core.ColumnName `json:"attribute"`
	Target    core.ColumnName `json:"target"`
	Value     float64         `json:"value"`
	Threshold float64         `json:"threshold"`
	Message   string          `json:"message"`
}

// RecommendationType identifies the suggested remediation
type RecommendationType string

const (
	RecommendDataBalancing       RecommendationType = "DATA_BALANCING"
	RecommendThresholdAdjustment RecommendationType = "THRESHOLD_ADJUSTMENT"
	RecommendModelRetraining     RecommendationType = "MODEL_RETRAINING"
)

// Recommendation is one suggested remediation step.
type Recommendation struct {
	Type      RecommendationType `json:"type"`
	Priority  Severity           `json:"priority"`
	Attribute core.ColumnName    `json:"attribute,omitempty"`
	Action    string             `json:"action"`
	Details   string             `json:"details"`
}

// AttributeAnalysis holds the grouped view and core metrics for one
// protected attribute.
type AttributeAnalysis struct {
	Attribute core.ColumnName                 `json:"attribute"`
	Groups    GroupAnalysis                   `json:"groups"`
	Metrics   map[core.ColumnName]MetricSet   `json:"metrics"`
}

// OverallMetrics averages the core metrics across every (attribute, target)
// pair and tracks the extremes.
type OverallMetrics struct {
	AvgDisparateImpact    float64         `json:"avg_disparate_impact"`
	AvgStatisticalParity  float64         `json:"avg_statistical_parity"`
	BiasScore             float64         `json:"bias_score"` // average bias severity
	MostBiasedAttribute   core.ColumnName `json:"most_biased_attribute,omitempty"`
	LeastBiasedAttribute  core.ColumnName `json:"least_biased_attribute,omitempty"`
	MetricPairCount       int             `json:"metric_pair_count"`
}

// RiskLevel buckets the overall bias score for the history summary row.
func (o OverallMetrics) RiskLevel() Severity {
	switch {
	case o.BiasScore > 0.3:
		return SeverityHigh
	case o.BiasScore > 0.15:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// IntersectionAnalysis is the grouped view over one protected-attribute
// pair with composite value1_value2 keys.
type IntersectionAnalysis struct {
	Attributes []core.ColumnName                         `json:"attributes"`
	Groups     GroupAnalysis                             `json:"groups"`
	Metrics    map[core.ColumnName]MetricSet             `json:"metrics"`
}

// PeriodScore is one temporal bucket's overall bias score.
type PeriodScore struct {
	Period      string  `json:"period"` // YYYY-MM
	BiasScore   float64 `json:"bias_score"`
	RecordCount int     `json:"record_count"`
}

// Trend classifications for a chronological bias-score sequence
const (
	TrendImproving        = "improving"
	TrendWorsening        = "worsening"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// TemporalAnalysis is the per-period pipeline rerun over one date column.
type TemporalAnalysis struct {
	Column  core.ColumnName `json:"column"`
	Periods []PeriodScore   `json:"periods"`
	Trend   string          `json:"trend"`
}

// ProxyCorrelation flags a non-protected feature correlated with a
// protected attribute.
type ProxyCorrelation struct {
	Feature            core.ColumnName `json:"feature"`
	ProtectedAttribute core.ColumnName `json:"protected_attribute"`
	Correlation        float64         `json:"correlation"`
	Risk               Severity        `json:"risk"`
	Recommendation     string          `json:"recommendation"`
}

// AnalysisResult is the root record of one core-pipeline invocation: the
// sole contract handed to reporting collaborators.
type AnalysisResult struct {
	ID          core.AnalysisID  `json:"id"`
	Timestamp   time.Time        `json:"timestamp"`
	DatasetHash core.DatasetHash `json:"dataset_hash"`
	RecordCount int              `json:"record_count"`
	GroupCount  int              `json:"group_count"`

	Profiles        dataset.ProfileSet                    `json:"profiles"`
	Attributes      map[core.ColumnName]AttributeAnalysis `json:"attributes"`
	Overall         OverallMetrics                        `json:"overall"`
	Flags           []BiasFlag                            `json:"flags"`
	Recommendations []Recommendation                      `json:"recommendations"`
}

// ExtendedResult adds the statistical, intersectional, temporal, and
// proxy-correlation layers on top of the core result.
type ExtendedResult struct {
	AnalysisResult

	StatisticalTests   map[core.ColumnName]map[core.ColumnName]TestSet           `json:"statistical_tests"`
	AdvancedMetrics    map[core.ColumnName]map[core.ColumnName]ExtendedMetricSet `json:"advanced_metrics"`
	IntersectionalBias map[string]IntersectionAnalysis                           `json:"intersectional_bias"`
	TemporalAnalysis   map[core.ColumnName]TemporalAnalysis                      `json:"temporal_analysis"`
	FeatureImportance  []ProxyCorrelation                                        `json:"feature_importance"`
}

// Summary is the one-row digest appended to the history sink per
// invocation.
type Summary struct {
	ID          core.AnalysisID `json:"id" db:"id"`
	Timestamp   time.Time       `json:"timestamp" db:"created_at"`
	RecordCount int             `json:"record_count" db:"record_count"`
	GroupCount  int             `json:"group_count" db:"group_count"`
	BiasScore   float64         `json:"bias_score" db:"bias_score"`
	FlagCount   int             `json:"flag_count" db:"flag_count"`
	RiskLevel   Severity        `json:"risk_level" db:"risk_level"`
}

// Summarize derives the history row from a result.
func (r *AnalysisResult) Summarize() Summary {
	return Summary{
		ID:          r.ID,
		Timestamp:   r.Timestamp,
		RecordCount: r.RecordCount,
		GroupCount:  r.GroupCount,
		BiasScore:   r.Overall.BiasScore,
		FlagCount:   len(r.Flags),
		RiskLevel:   r.Overall.RiskLevel(),
	}
}

// PositiveRates extracts group -> positive rate for one target, skipping
// groups without stats for that target.
func (g GroupAnalysis) PositiveRates(target core.ColumnName) map[string]float64 {
	rates := make(map[string]float64)
	for key, grp := range g {
		if ts, ok := grp.Targets[target]; ok {
			rates[key] = ts.PositiveRate
		}
	}
	return rates
}

// RateBounds returns the min and max of a positive-rate map. Zero values
// when the map is empty.
func RateBounds(rates map[string]float64) (min, max float64) {
	first := true
	for _, r := range rates {
		if first {
			min, max = r, r
			first = false
			continue
		}
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}
	return min, max
}

// Severity of a bias flag value relative to the 0.2 escalation cutoff used
// for statistical parity.
func ParitySeverity(diff float64) Severity {
	if diff > 0.2 {
		return SeverityHigh
	}
	return SeverityMedium
}

// FiniteSpread returns max-min over the finite entries of a ratio map, 0
// when fewer than one finite entry exists.
func FiniteSpread(ratios map[string]float64) float64 {
	min, max := math.Inf(1), math.Inf(-1)
	found := false
	for _, r := range ratios {
		if math.IsInf(r, 0) || math.IsNaN(r) {
			continue
		}
		found = true
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}
	if !found {
		return 0
	}
	return max - min
}
