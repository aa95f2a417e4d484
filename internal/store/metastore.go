// Package store persists session metadata as JSON and caches transcript
// metrics in SQLite.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/ctrail/internal/model"
)

// MetadataFileName is the JSON document holding every logged session,
// kept inside the logs directory alongside the transcripts.
const MetadataFileName = "sessions_metadata.json"

// MetaStore owns the full session collection, keyed by session id.
// Loaded once at open, mutated by insertion, and persisted wholesale
// after every mutation. Not safe for concurrent use; a multi-process
// setup would need the load-mutate-persist cycle to become an atomic
// read-modify-write (file lock), which is out of scope here.
type MetaStore struct {
	path     string
	sessions map[string]model.SessionMetadata
}

// metadataFile is the on-disk shape: { "sessions": { "<id>": {...} } }.
type metadataFile struct {
	Sessions map[string]model.SessionMetadata `json:"sessions"`
}

// OpenMeta loads the session collection from logsDir. A missing file
// yields an empty store; a file that exists but fails to parse is fatal,
// since silently dropping metadata would corrupt every later aggregation.
func OpenMeta(logsDir string) (*MetaStore, error) {
	path := filepath.Join(logsDir, MetadataFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &MetaStore{path: path, sessions: make(map[string]model.SessionMetadata)}, nil
		}
		return nil, fmt.Errorf("reading metadata file %s: %w", path, err)
	}

	var doc metadataFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing metadata file %s: %w", path, err)
	}
	if doc.Sessions == nil {
		doc.Sessions = make(map[string]model.SessionMetadata)
	}

	return &MetaStore{path: path, sessions: doc.Sessions}, nil
}

// Get returns the session with the given id.
func (s *MetaStore) Get(id string) (model.SessionMetadata, bool) {
	sess, ok := s.sessions[id]
	return sess, ok
}

// Put inserts a session (overwriting any duplicate id — ids are unique
// by construction since they derive from start timestamps) and persists
// the whole collection. On a persist failure the in-memory state is
// already updated, so the caller may retry with Save without losing the
// insertion.
func (s *MetaStore) Put(sess model.SessionMetadata) error {
	s.sessions[sess.ID] = sess
	return s.Save()
}

// Save serializes the entire collection and overwrites the storage file.
// A crash mid-write can leave a partial file; known limitation.
func (s *MetaStore) Save() error {
	data, err := json.MarshalIndent(metadataFile{Sessions: s.sessions}, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing metadata: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing metadata file %s: %w", s.path, err)
	}
	return nil
}

// All returns every session in id (creation) order.
func (s *MetaStore) All() []model.SessionMetadata {
	out := make([]model.SessionMetadata, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	model.SortSessions(out)
	return out
}

// ByMethodology builds a fresh grouping view, each group in id order.
// Rebuilt on every call; there is no cached index to go stale.
func (s *MetaStore) ByMethodology() map[model.Methodology][]model.SessionMetadata {
	groups := make(map[model.Methodology][]model.SessionMetadata)
	for _, sess := range s.sessions {
		groups[sess.Methodology] = append(groups[sess.Methodology], sess)
	}
	for _, group := range groups {
		model.SortSessions(group)
	}
	return groups
}

// Len returns the number of stored sessions.
func (s *MetaStore) Len() int {
	return len(s.sessions)
}

// Path returns the metadata file location.
func (s *MetaStore) Path() string {
	return s.path
}
