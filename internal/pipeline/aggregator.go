package pipeline

import (
	"fmt"

	"github.com/theirongolddev/ctrail/internal/analyze"
	"github.com/theirongolddev/ctrail/internal/model"
)

// qualitySampleSize caps how many sessions per group go through the full
// extract-and-score pass; folding raw counters stays O(sessions) while
// scoring stays cheap on big histories.
const qualitySampleSize = 5

// Recommendation thresholds, per methodology group.
const (
	energyThreshold    = 2.0 // avg creative energy above this is worth continuing
	confusionThreshold = 2.0 // confusion markers per session
	codeRateThreshold  = 5.0 // code blocks per session
)

// WarnFunc receives non-fatal aggregation warnings (unreadable
// transcripts). May be nil.
type WarnFunc func(format string, args ...any)

// analyzedSession is one successfully analyzed session within a group,
// retained in id (creation) order for the quality sample.
type analyzedSession struct {
	session model.SessionMetadata
	metrics model.AnalysisMetrics
}

// Compare groups sessions by methodology and folds each readable
// transcript's metrics into per-group running stats. Sessions whose
// transcript cannot be read are warned about and skipped; one bad file
// never aborts the report. Groups appear in the fixed enum order and
// zero-session groups are dropped.
func Compare(sessions []model.SessionMetadata, analyzer *Analyzer, warn WarnFunc) model.Comparison {
	groups := make(map[model.Methodology][]model.SessionMetadata)
	for _, sess := range sessions {
		groups[sess.Methodology] = append(groups[sess.Methodology], sess)
	}

	var cmp model.Comparison

	for _, meth := range model.Methodologies {
		group := groups[meth]
		if len(group) == 0 {
			continue
		}
		model.SortSessions(group)

		var stats model.MethodologyStats
		analyzed := make([]analyzedSession, 0, len(group))

		for _, sess := range group {
			metrics, err := analyzer.AnalyzeFile(sess.LogFile)
			if err != nil {
				cmp.Skipped++
				if warn != nil {
					warn("failed to analyze session %s: %v", sess.ID, err)
				}
				continue
			}
			stats.AddSession(sess, metrics)
			analyzed = append(analyzed, analyzedSession{session: sess, metrics: metrics})
		}

		if stats.Sessions == 0 {
			continue
		}

		report := model.MethodologyReport{
			Methodology:   meth,
			Stats:         stats,
			AvgExchanges:  float64(stats.Metrics.Exchanges) / float64(stats.Sessions),
			AvgCodeBlocks: float64(stats.Metrics.CodeBlocks) / float64(stats.Sessions),
			Quality:       sampleQuality(analyzed),
		}

		cmp.TotalSessions += stats.Sessions
		cmp.Groups = append(cmp.Groups, report)
	}

	cmp.Recommendations = recommend(cmp.Groups)
	return cmp
}

// sampleQuality scores up to the first qualitySampleSize analyzed
// sessions of a group (creation order) and averages the four scores.
func sampleQuality(analyzed []analyzedSession) *model.QualitySample {
	if len(analyzed) == 0 {
		return nil
	}
	if len(analyzed) > qualitySampleSize {
		analyzed = analyzed[:qualitySampleSize]
	}

	var sample model.QualitySample
	for _, as := range analyzed {
		q := analyze.Score(as.metrics)
		sample.Engagement += q.Engagement
		sample.Clarity += q.Clarity
		sample.Productivity += q.Productivity
		sample.Overall += q.Overall
	}

	n := float64(len(analyzed))
	sample.Engagement /= n
	sample.Clarity /= n
	sample.Productivity /= n
	sample.Overall /= n
	sample.Sampled = len(analyzed)

	return &sample
}

// recommend derives natural-language recommendations from finished group
// stats. Order is stable: the energy rule first, then the confusion and
// productivity rules in group order.
func recommend(groups []model.MethodologyReport) []string {
	var recs []string

	// Highest average creative energy. Unrated groups count as 0; ties
	// resolve to the earliest group in the fixed order.
	var best *model.MethodologyReport
	bestEnergy := 0.0
	for i := range groups {
		energy := 0.0
		if g := groups[i].Stats.AvgEnergy; g != nil {
			energy = *g
		}
		if best == nil || energy > bestEnergy {
			best = &groups[i]
			bestEnergy = energy
		}
	}
	if best != nil && best.Stats.AvgEnergy != nil && *best.Stats.AvgEnergy > energyThreshold {
		recs = append(recs, fmt.Sprintf(
			"Continue using %s methodology - it shows high creative energy (%.1f/3)",
			best.Methodology.Display(), *best.Stats.AvgEnergy))
	}

	for _, g := range groups {
		confusionRate := float64(g.Stats.Metrics.ConfusionMarkers) / float64(g.Stats.Sessions)
		if confusionRate > confusionThreshold {
			recs = append(recs, fmt.Sprintf(
				"Consider clearer requirements when using %s - high confusion rate (%.1f per session)",
				g.Methodology.Display(), confusionRate))
		}
	}

	for _, g := range groups {
		if g.AvgCodeBlocks > codeRateThreshold {
			recs = append(recs, fmt.Sprintf(
				"%s shows high code productivity (%.1f blocks per session)",
				g.Methodology.Display(), g.AvgCodeBlocks))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "No specific recommendations - continue logging sessions for better insights.")
	}
	return recs
}
