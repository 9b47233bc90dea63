package commands

import (
	"context"
	"fmt"

	"ripasso/internal/application"
	"ripasso/internal/ports"
	"ripasso/internal/storage"
)

// DismissCommand marks a snippet as dismissed so it stops coming up for
// review. The row is kept; dismissal is reversible by hand.
type DismissCommand struct {
	store ports.SnippetStore
	ID    string
}

// NewDismissCommand creates a new DismissCommand
func NewDismissCommand(store ports.SnippetStore, id string) *DismissCommand {
	return &DismissCommand{store: store, ID: id}
}

// Validate checks if the dismiss operation is valid
func (c *DismissCommand) Validate() error {
	if c.ID == "" {
		return &application.ValidationError{
			Field:   "id",
			Message: "snippet ID is required",
		}
	}
	return nil
}

// Execute dismisses the snippet
func (c *DismissCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if _, err := findSnippet(ctx, c.store, c.ID); err != nil {
		return err
	}

	query, params := storage.Update(storage.Snippets).
		Set(storage.SnippetDismissed, true).
		Where(storage.SnippetID).Eq(c.ID).
		Build()

	if _, err := c.store.Mutate(ctx, query, params...); err != nil {
		return fmt.Errorf("failed to dismiss snippet: %w", err)
	}
	return nil
}
