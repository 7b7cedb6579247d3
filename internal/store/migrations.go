package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tickets (
	id                   TEXT PRIMARY KEY,
	title                TEXT NOT NULL,
	description          TEXT NOT NULL DEFAULT '',
	repository           TEXT NOT NULL,
	severity             TEXT NOT NULL DEFAULT 'medium',
	status               TEXT NOT NULL DEFAULT 'open',
	labels               TEXT NOT NULL DEFAULT '[]',
	assigned_at          DATETIME NOT NULL,
	estimated_completion INTEGER NOT NULL DEFAULT 0,
	author               TEXT NOT NULL DEFAULT '',
	comments             INTEGER NOT NULL DEFAULT 0,
	url                  TEXT NOT NULL DEFAULT '',
	is_pull_request      INTEGER NOT NULL DEFAULT 0,
	position             INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
	id         TEXT PRIMARY KEY,
	ticket_id  TEXT NOT NULL DEFAULT '',
	timestamp  DATETIME NOT NULL,
	action     TEXT NOT NULL,
	details    TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status);
CREATE INDEX IF NOT EXISTS idx_activities_timestamp ON activities(timestamp);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
