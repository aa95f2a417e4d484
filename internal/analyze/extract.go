// Package analyze turns raw transcript text into metrics and quality
// scores.
package analyze

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/ctrail/internal/model"
	"github.com/theirongolddev/ctrail/internal/pattern"
)

// Extractor produces per-transcript metrics records using a compiled
// pattern set. Stateless between calls; safe to reuse across transcripts.
type Extractor struct {
	patterns *pattern.Set
}

// NewExtractor wraps a compiled pattern set.
func NewExtractor(ps *pattern.Set) *Extractor {
	return &Extractor{patterns: ps}
}

// Extract computes all six counters for one transcript.
func (e *Extractor) Extract(content string) model.AnalysisMetrics {
	return model.AnalysisMetrics{
		Exchanges:            e.patterns.CountExchanges(content),
		CodeBlocks:           e.patterns.CountCodeBlocks(content),
		QuestionsAsked:       countQuestions(content),
		EnthusiasmMarkers:    e.patterns.Count(pattern.Enthusiasm, content),
		ConfusionMarkers:     e.patterns.Count(pattern.Confusion, content),
		CompactionIndicators: e.patterns.Count(pattern.Compaction, content),
	}
}

// ExtractFile reads a transcript from disk and extracts its metrics.
func (e *Extractor) ExtractFile(path string) (model.AnalysisMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.AnalysisMetrics{}, fmt.Errorf("reading transcript %s: %w", path, err)
	}
	return e.Extract(string(data)), nil
}

// countQuestions counts '?' characters outside fenced code. A line whose
// left-trimmed content starts with ``` flips the in-fence toggle and is
// itself excluded. The toggle is a streaming approximation: an unbalanced
// fence leaves it open for the rest of the transcript, which diverges
// from CountCodeBlocks (complete regions only). Accepted behavior, not
// an error.
func countQuestions(content string) int {
	count := 0
	inCodeBlock := false

	for line := range strings.Lines(content) {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if !inCodeBlock {
			count += strings.Count(line, "?")
		}
	}
	return count
}
