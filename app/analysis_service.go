package app

import (
	"context"
	"time"

	"fairlens/adapters/stats/correlation"
	"fairlens/adapters/stats/flags"
	"fairlens/adapters/stats/groups"
	"fairlens/adapters/stats/intersect"
	"fairlens/adapters/stats/metrics"
	"fairlens/adapters/stats/profile"
	"fairlens/adapters/stats/temporal"
	"fairlens/adapters/stats/tests"
	"fairlens/domain/core"
	"fairlens/domain/dataset"
	"fairlens/domain/fairness"
	"fairlens/internal"
	"fairlens/ports"
)

// AnalysisService runs the fairness pipeline over a dataset snapshot. The
// pipeline itself is pure and sequential: given the same snapshot and
// configuration it produces the same result.
type AnalysisService struct {
	cfg     fairness.Config
	history ports.HistorySink
}

// NewAnalysisService creates an analysis service. The history sink may be
// nil; results are then simply not recorded.
func NewAnalysisService(cfg fairness.Config, history ports.HistorySink) *AnalysisService {
	return &AnalysisService{cfg: cfg.Normalized(), history: history}
}

// Config returns the service's normalized configuration
func (s *AnalysisService) Config() fairness.Config {
	return s.cfg
}

// Analyze runs the core pipeline: profiling, grouped aggregation, fairness
// metrics, flags, and recommendations.
func (s *AnalysisService) Analyze(ctx context.Context, ds *dataset.Dataset) (result *fairness.AnalysisResult, err error) {
	defer recoverComputation("core analysis", &err)

	result, err = s.analyzeCore(ds)
	if err != nil {
		return nil, err
	}
	s.record(ctx, result)
	return result, nil
}

// AnalyzeExtended runs the core pipeline plus significance tests, advanced
// metrics, intersectional, temporal, and proxy-correlation analysis.
func (s *AnalysisService) AnalyzeExtended(ctx context.Context, ds *dataset.Dataset) (result *fairness.ExtendedResult, err error) {
	defer recoverComputation("extended analysis", &err)

	base, err := s.analyzeCore(ds)
	if err != nil {
		return nil, err
	}

	ext := &fairness.ExtendedResult{
		AnalysisResult:   *base,
		StatisticalTests: make(map[core.ColumnName]map[core.ColumnName]fairness.TestSet),
		AdvancedMetrics:  make(map[core.ColumnName]map[core.ColumnName]fairness.ExtendedMetricSet),
	}

	for attr, analysis := range base.Attributes {
		testsByTarget := make(map[core.ColumnName]fairness.TestSet)
		advancedByTarget := make(map[core.ColumnName]fairness.ExtendedMetricSet)
		for _, target := range base.Profiles.TargetColumns {
			testsByTarget[target] = tests.RunAll(analysis.Groups, target)
			advancedByTarget[target] = metrics.ComputeExtended(ds, analysis.Groups, attr, target, s.cfg)
		}
		ext.StatisticalTests[attr] = testsByTarget
		ext.AdvancedMetrics[attr] = advancedByTarget
	}

	ext.IntersectionalBias = intersect.Analyze(ds, base.Profiles.ProtectedAttributes, base.Profiles.TargetColumns)
	ext.TemporalAnalysis = temporal.Analyze(ds, s.cfg)
	ext.FeatureImportance = correlation.Analyze(ds, base.Profiles)

	s.record(ctx, &ext.AnalysisResult)
	return ext, nil
}

// analyzeCore is the shared core pass. Validation failures surface as the
// domain's distinct error kinds before any stage runs.
func (s *AnalysisService) analyzeCore(ds *dataset.Dataset) (*fairness.AnalysisResult, error) {
	if ds == nil || ds.Len() < 2 {
		count := 0
		if ds != nil {
			count = ds.Len()
		}
		return nil, core.NewInsufficientDataError(count)
	}

	profiles := profile.NewProfiler(s.cfg).Profile(ds)
	if len(profiles.ProtectedAttributes) == 0 {
		return nil, core.ErrNoProtectedAttributes
	}

	attrs := make(map[core.ColumnName]fairness.AttributeAnalysis, len(profiles.ProtectedAttributes))
	groupCount := 0
	for _, attr := range profiles.ProtectedAttributes {
		analysis := groups.Aggregate(ds, attr, profiles.TargetColumns)
		groupCount += len(analysis)
		attrs[attr] = fairness.AttributeAnalysis{
			Attribute: attr,
			Groups:    analysis,
			Metrics:   metrics.Compute(analysis, profiles.TargetColumns),
		}
	}

	overall := flags.Overall(attrs)
	raised := flags.Flags(attrs, s.cfg)

	return &fairness.AnalysisResult{
		ID:              core.NewAnalysisID(),
		Timestamp:       time.Now().UTC(),
		DatasetHash:     ds.Hash(),
		RecordCount:     ds.Len(),
		GroupCount:      groupCount,
		Profiles:        profiles,
		Attributes:      attrs,
		Overall:         overall,
		Flags:           raised,
		Recommendations: flags.Recommendations(attrs, raised, overall),
	}, nil
}

// record appends the history summary row. Sink failures are not fatal to
// the analysis; the result is already complete.
func (s *AnalysisService) record(ctx context.Context, result *fairness.AnalysisResult) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(ctx, result.Summarize()); err != nil {
		internal.DefaultLogger.Warn("history sink append failed: %v", err)
	}
}

// recoverComputation converts an unexpected panic inside the pipeline into
// the opaque computation error. The pipeline builds everything fresh, so a
// failed run leaves no partial external state.
func recoverComputation(stage string, err *error) {
	if r := recover(); r != nil {
		*err = core.NewComputationError(stage, r)
	}
}
