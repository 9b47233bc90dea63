package storage

// SnippetColumn names a column of the snippet table.
type SnippetColumn string

const (
	SnippetID        SnippetColumn = "id"
	SnippetReference SnippetColumn = "reference"
	SnippetContent   SnippetColumn = "content"
	SnippetDue       SnippetColumn = "due"
	SnippetInterval  SnippetColumn = "interval"
	SnippetEase      SnippetColumn = "ease"
	SnippetDismissed SnippetColumn = "dismissed"
)

// RevlogColumn names a column of the revlog table.
type RevlogColumn string

const (
	RevlogID         RevlogColumn = "id"
	RevlogSnippetID  RevlogColumn = "snippet_id"
	RevlogReviewedAt RevlogColumn = "reviewed_at"
	RevlogRating     RevlogColumn = "rating"
	RevlogInterval   RevlogColumn = "interval"
	RevlogEase       RevlogColumn = "ease"
)

// The closed set of tables the composers can target.
var (
	Snippets = Table[SnippetColumn]{name: "snippet"}
	Revlog   = Table[RevlogColumn]{name: "revlog"}
)

// Schema is re-applied on every load. IF NOT EXISTS keeps it idempotent, so
// tables and indexes added in later plugin versions appear in old database
// files without a migration framework.
const Schema = `
CREATE TABLE IF NOT EXISTS snippet (
	id TEXT PRIMARY KEY,
	reference TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	due INTEGER NOT NULL DEFAULT 0,
	interval REAL NOT NULL DEFAULT 1.0,
	ease REAL NOT NULL DEFAULT 2.5,
	dismissed INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS revlog (
	id TEXT PRIMARY KEY,
	snippet_id TEXT NOT NULL,
	reviewed_at INTEGER NOT NULL,
	rating INTEGER NOT NULL,
	interval REAL NOT NULL,
	ease REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snippet_due ON snippet(due);
CREATE INDEX IF NOT EXISTS idx_snippet_reference ON snippet(reference);
CREATE INDEX IF NOT EXISTS idx_revlog_snippet ON revlog(snippet_id);
`
