package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transcript_metrics (
    file_path     TEXT PRIMARY KEY,
    mtime_ns      INTEGER NOT NULL,
    size_bytes    INTEGER NOT NULL,
    exchanges     INTEGER NOT NULL,
    code_blocks   INTEGER NOT NULL,
    questions     INTEGER NOT NULL,
    enthusiasm    INTEGER NOT NULL,
    confusion     INTEGER NOT NULL,
    compaction    INTEGER NOT NULL,
    analyzed_at   TEXT NOT NULL
);
`
