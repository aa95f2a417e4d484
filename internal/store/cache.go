package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/ctrail/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache is a SQLite-backed cache of extracted transcript metrics, keyed
// by file path and fingerprinted by mtime and size. It lets repeated
// aggregations skip re-scanning multi-megabyte transcripts that have not
// changed since the last run.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the cache database at the given path.
func OpenCache(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached metrics for a transcript if the stored
// fingerprint still matches the file's current mtime and size.
func (c *Cache) Get(path string, mtimeNs, sizeBytes int64) (model.AnalysisMetrics, bool, error) {
	var m model.AnalysisMetrics
	var storedMtime, storedSize int64

	err := c.db.QueryRow(`SELECT mtime_ns, size_bytes, exchanges, code_blocks,
		questions, enthusiasm, confusion, compaction
		FROM transcript_metrics WHERE file_path = ?`, path).Scan(
		&storedMtime, &storedSize, &m.Exchanges, &m.CodeBlocks,
		&m.QuestionsAsked, &m.EnthusiasmMarkers, &m.ConfusionMarkers,
		&m.CompactionIndicators,
	)
	if err == sql.ErrNoRows {
		return model.AnalysisMetrics{}, false, nil
	}
	if err != nil {
		return model.AnalysisMetrics{}, false, err
	}
	if storedMtime != mtimeNs || storedSize != sizeBytes {
		return model.AnalysisMetrics{}, false, nil
	}

	return m, true, nil
}

// Put stores freshly extracted metrics together with the file
// fingerprint they were computed from.
func (c *Cache) Put(path string, mtimeNs, sizeBytes int64, m model.AnalysisMetrics) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := c.db.Exec(`INSERT OR REPLACE INTO transcript_metrics
		(file_path, mtime_ns, size_bytes, exchanges, code_blocks,
		 questions, enthusiasm, confusion, compaction, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		path, mtimeNs, sizeBytes, m.Exchanges, m.CodeBlocks,
		m.QuestionsAsked, m.EnthusiasmMarkers, m.ConfusionMarkers,
		m.CompactionIndicators, now,
	)
	return err
}

// Delete removes one transcript's cached metrics.
func (c *Cache) Delete(path string) error {
	_, err := c.db.Exec("DELETE FROM transcript_metrics WHERE file_path = ?", path)
	return err
}

// Count returns the number of cached transcript records.
func (c *Cache) Count() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM transcript_metrics").Scan(&count)
	return count, err
}
