package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ripasso/internal/application"
	"ripasso/internal/domain"
	"ripasso/internal/ports"
	"ripasso/internal/storage"
)

// AddSnippetCommand inserts a new snippet for a note reference
type AddSnippetCommand struct {
	store     ports.SnippetStore
	Reference string
	Content   string
	Due       int64
}

// NewAddSnippetCommand creates a new AddSnippetCommand
func NewAddSnippetCommand(store ports.SnippetStore, reference, content string, due int64) *AddSnippetCommand {
	return &AddSnippetCommand{
		store:     store,
		Reference: reference,
		Content:   content,
		Due:       due,
	}
}

// Validate checks if the add operation is valid
func (c *AddSnippetCommand) Validate() error {
	if c.Reference == "" {
		return &application.ValidationError{
			Field:   "reference",
			Message: "reference is required",
		}
	}
	if c.Content == "" {
		return &application.ValidationError{
			Field:   "content",
			Message: "content is required",
		}
	}
	return nil
}

// Execute inserts the snippet and returns it
func (c *AddSnippetCommand) Execute(ctx context.Context) (*domain.Snippet, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s := domain.Snippet{
		ID:        uuid.NewString(),
		Reference: c.Reference,
		Content:   c.Content,
		Due:       c.Due,
		Interval:  domain.DefaultInterval,
		Ease:      domain.DefaultEase,
	}

	query, params := storage.Insert(storage.Snippets).
		Columns(storage.SnippetID, storage.SnippetReference, storage.SnippetContent,
			storage.SnippetDue, storage.SnippetInterval, storage.SnippetEase,
			storage.SnippetDismissed).
		Values(s.ID, s.Reference, s.Content, s.Due, s.Interval, s.Ease, s.Dismissed).
		Build()

	if _, err := c.store.Mutate(ctx, query, params...); err != nil {
		return nil, fmt.Errorf("failed to add snippet: %w", err)
	}
	return &s, nil
}
