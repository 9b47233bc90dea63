package ports

import "context"

// Row maps column names to cell values for one result row.
type Row = map[string]any

// SnippetStore is the upward query surface exposed to commands and host
// integrations. Query never fails on bad SQL (it degrades to zero rows);
// Mutate persists unconditionally and reports persistence failures.
type SnippetStore interface {
	Query(ctx context.Context, query string, params ...any) []Row
	Mutate(ctx context.Context, query string, params ...any) ([]Row, error)
}
