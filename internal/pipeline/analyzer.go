// Package pipeline orchestrates transcript analysis, caching, and
// cross-session aggregation.
package pipeline

import (
	"os"
	"path/filepath"

	"github.com/theirongolddev/ctrail/internal/analyze"
	"github.com/theirongolddev/ctrail/internal/model"
	"github.com/theirongolddev/ctrail/internal/store"
)

// Analyzer runs the extractor over transcript files, consulting the
// metrics cache first when one is attached. A nil cache means every call
// re-reads and re-extracts.
type Analyzer struct {
	extractor *analyze.Extractor
	cache     *store.Cache
}

// NewAnalyzer builds an analyzer. cache may be nil.
func NewAnalyzer(ex *analyze.Extractor, cache *store.Cache) *Analyzer {
	return &Analyzer{extractor: ex, cache: cache}
}

// AnalyzeFile returns the metrics for one transcript, from cache when the
// file's mtime/size fingerprint matches. Cache read or write failures
// degrade to a full extraction; only the transcript read itself can fail.
func (a *Analyzer) AnalyzeFile(path string) (model.AnalysisMetrics, error) {
	if a.cache == nil {
		return a.extractor.ExtractFile(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return model.AnalysisMetrics{}, err
	}
	mtimeNs, size := info.ModTime().UnixNano(), info.Size()

	if m, ok, err := a.cache.Get(path, mtimeNs, size); err == nil && ok {
		return m, nil
	}

	m, err := a.extractor.ExtractFile(path)
	if err != nil {
		return model.AnalysisMetrics{}, err
	}
	_ = a.cache.Put(path, mtimeNs, size, m)

	return m, nil
}

// Summarize runs the full extract-and-score pipeline for one session.
func (a *Analyzer) Summarize(sess model.SessionMetadata) (model.SessionSummary, error) {
	metrics, err := a.AnalyzeFile(sess.LogFile)
	if err != nil {
		return model.SessionSummary{}, err
	}
	return model.SessionSummary{
		Session: sess,
		Metrics: metrics,
		Quality: analyze.Score(metrics),
	}, nil
}

// CacheDir returns the platform cache directory for ctrail.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ctrail")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "ctrail")
}

// CachePath returns the full path to the metrics cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "metrics.db")
}
