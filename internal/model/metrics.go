package model

import "time"

// AnalysisMetrics holds the six lexical counters extracted from one
// transcript. All counters are non-negative and derived solely from the
// transcript text, so the same text always yields the same record.
type AnalysisMetrics struct {
	Exchanges            int
	CodeBlocks           int
	QuestionsAsked       int
	EnthusiasmMarkers    int
	ConfusionMarkers     int
	CompactionIndicators int
}

// Add accumulates another record elementwise.
func (m *AnalysisMetrics) Add(other AnalysisMetrics) {
	m.Exchanges += other.Exchanges
	m.CodeBlocks += other.CodeBlocks
	m.QuestionsAsked += other.QuestionsAsked
	m.EnthusiasmMarkers += other.EnthusiasmMarkers
	m.ConfusionMarkers += other.ConfusionMarkers
	m.CompactionIndicators += other.CompactionIndicators
}

// SessionQuality holds the four derived scores, each within [0,100].
// Overall is the unweighted mean of the other three.
type SessionQuality struct {
	Engagement   float64
	Clarity      float64
	Productivity float64
	Overall      float64
}

// MethodologyStats is a running accumulator over the sessions of one
// methodology group. Averages are recomputed on every fold so a partial
// report taken mid-aggregation is still correct.
type MethodologyStats struct {
	Sessions      int
	TotalDuration time.Duration
	AvgDuration   time.Duration
	EnergyRatings []int
	AvgEnergy     *float64
	Metrics       AnalysisMetrics
}

// AddSession folds one session and its extracted metrics into the stats.
func (s *MethodologyStats) AddSession(session SessionMetadata, metrics AnalysisMetrics) {
	s.Sessions++

	if session.DurationSecs != nil {
		s.TotalDuration += session.Duration()
		s.AvgDuration = s.TotalDuration / time.Duration(s.Sessions)
	}

	if session.CreativeEnergy != nil {
		s.EnergyRatings = append(s.EnergyRatings, *session.CreativeEnergy)
		sum := 0
		for _, e := range s.EnergyRatings {
			sum += e
		}
		avg := float64(sum) / float64(len(s.EnergyRatings))
		s.AvgEnergy = &avg
	}

	s.Metrics.Add(metrics)
}

// MethodologyReport is the per-group slice of a comparison: the folded
// stats plus derived per-session averages and an optional quality sample.
type MethodologyReport struct {
	Methodology   Methodology
	Stats         MethodologyStats
	AvgExchanges  float64
	AvgCodeBlocks float64
	Quality       *QualitySample
}

// QualitySample averages the scorer output over up to the first five
// sessions of a group, in session-id (creation) order.
type QualitySample struct {
	Engagement   float64
	Clarity      float64
	Productivity float64
	Overall      float64
	Sampled      int
}

// Comparison is the full cross-methodology report. Groups appear in the
// fixed Methodologies order; zero-session groups are omitted.
type Comparison struct {
	TotalSessions   int
	Skipped         int
	Groups          []MethodologyReport
	Recommendations []string
}

// SessionSummary pairs one session's metadata with its freshly computed
// metrics and quality scores, for single-session views.
type SessionSummary struct {
	Session SessionMetadata
	Metrics AnalysisMetrics
	Quality SessionQuality
}
