package index

// SQLite schema DDL constants

const schemaScans = `
CREATE TABLE IF NOT EXISTS scans (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    sha256 TEXT NOT NULL,
    size_bytes INTEGER NOT NULL,
    chunk_count INTEGER NOT NULL,
    created_at DATETIME NOT NULL
)`

const schemaChunks = `
CREATE TABLE IF NOT EXISTS chunks (
    scan_id TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    type TEXT NOT NULL,
    length INTEGER NOT NULL,
    crc INTEGER NOT NULL,
    critical INTEGER NOT NULL,
    public INTEGER NOT NULL,
    safe_to_copy INTEGER NOT NULL,
    valid INTEGER NOT NULL,
    PRIMARY KEY (scan_id, position)
)`

const indexScansSha = `CREATE INDEX IF NOT EXISTS idx_scans_sha256 ON scans(sha256)`
const indexChunksType = `CREATE INDEX IF NOT EXISTS idx_chunks_type ON chunks(type)`

// SQLite pragmas for optimal performance
const pragmaWAL = `PRAGMA journal_mode=WAL`
const pragmaFK = `PRAGMA foreign_keys=ON`
const pragmaBusyTimeout = `PRAGMA busy_timeout=5000`
const pragmaSynchronous = `PRAGMA synchronous=NORMAL`

// allSchemaStatements returns all schema DDL in order
func allSchemaStatements() []string {
	return []string{
		schemaScans,
		schemaChunks,
		indexScansSha,
		indexChunksType,
	}
}

// allPragmas returns all pragma statements
func allPragmas() []string {
	return []string{
		pragmaWAL,
		pragmaFK,
		pragmaBusyTimeout,
		pragmaSynchronous,
	}
}
