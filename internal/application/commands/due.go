package commands

import (
	"context"

	"ripasso/internal/domain"
	"ripasso/internal/ports"
	"ripasso/internal/storage"
)

// ListDueCommand lists snippets due on or before a cutoff, skipping
// dismissed ones. An optional reference restricts the listing to one note.
type ListDueCommand struct {
	store     ports.SnippetStore
	Before    int64
	Reference string
}

// NewListDueCommand creates a new ListDueCommand
func NewListDueCommand(store ports.SnippetStore, before int64, reference string) *ListDueCommand {
	return &ListDueCommand{
		store:     store,
		Before:    before,
		Reference: reference,
	}
}

// Execute returns the due snippets ordered as stored
func (c *ListDueCommand) Execute(ctx context.Context) []domain.Snippet {
	chain := storage.Select(storage.Snippets).
		Where(storage.SnippetDue).Lte(c.Before).
		And(storage.SnippetDismissed).Eq(false)
	if c.Reference != "" {
		chain = chain.And(storage.SnippetReference).Eq(c.Reference)
	}
	query, params := chain.Build()

	rows := c.store.Query(ctx, query, params...)
	snippets := make([]domain.Snippet, 0, len(rows))
	for _, row := range rows {
		snippets = append(snippets, domain.SnippetFromRow(row))
	}
	return snippets
}
