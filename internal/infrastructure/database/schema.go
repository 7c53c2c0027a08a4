package database

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS feedback (
		id           UUID PRIMARY KEY,
		content_hash TEXT NOT NULL,
		was_accurate BOOLEAN NOT NULL,
		user_rating  SMALLINT NOT NULL CHECK (user_rating BETWEEN 1 AND 5),
		comments     TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_content_hash ON feedback (content_hash)`,
	`CREATE TABLE IF NOT EXISTS content_reports (
		id           UUID PRIMARY KEY,
		content_hash TEXT NOT NULL,
		category     TEXT NOT NULL,
		source       TEXT,
		evidence     TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_content_reports_category ON content_reports (category)`,
}

// SQLite stores ids and timestamps as text
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS feedback (
		id           TEXT PRIMARY KEY,
		content_hash TEXT NOT NULL,
		was_accurate INTEGER NOT NULL,
		user_rating  INTEGER NOT NULL CHECK (user_rating BETWEEN 1 AND 5),
		comments     TEXT,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_content_hash ON feedback (content_hash)`,
	`CREATE TABLE IF NOT EXISTS content_reports (
		id           TEXT PRIMARY KEY,
		content_hash TEXT NOT NULL,
		category     TEXT NOT NULL,
		source       TEXT,
		evidence     TEXT,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_content_reports_category ON content_reports (category)`,
}
