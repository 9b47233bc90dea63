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

// ReviewCommand records one review of a snippet: a revlog entry plus the
// snippet's next scheduling state. The scheduling values are computed by
// the caller; this layer only persists them.
type ReviewCommand struct {
	store      ports.SnippetStore
	SnippetID  string
	Rating     int
	ReviewedAt int64
	NextDue    int64
	Interval   float64
	Ease       float64
}

// NewReviewCommand creates a new ReviewCommand
func NewReviewCommand(store ports.SnippetStore, snippetID string, rating int, reviewedAt, nextDue int64, interval, ease float64) *ReviewCommand {
	return &ReviewCommand{
		store:      store,
		SnippetID:  snippetID,
		Rating:     rating,
		ReviewedAt: reviewedAt,
		NextDue:    nextDue,
		Interval:   interval,
		Ease:       ease,
	}
}

// Validate checks if the review operation is valid
func (c *ReviewCommand) Validate() error {
	if c.SnippetID == "" {
		return &application.ValidationError{
			Field:   "snippet_id",
			Message: "snippet ID is required",
		}
	}
	if c.Rating < 0 || c.Rating > 3 {
		return &application.ValidationError{
			Field:   "rating",
			Message: "rating must be between 0 and 3",
		}
	}
	return nil
}

// Execute records the review and updates the snippet's schedule
func (c *ReviewCommand) Execute(ctx context.Context) (*domain.Review, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if _, err := findSnippet(ctx, c.store, c.SnippetID); err != nil {
		return nil, err
	}

	review := domain.Review{
		ID:         uuid.NewString(),
		SnippetID:  c.SnippetID,
		ReviewedAt: c.ReviewedAt,
		Rating:     c.Rating,
		Interval:   c.Interval,
		Ease:       c.Ease,
	}

	query, params := storage.Insert(storage.Revlog).
		Columns(storage.RevlogID, storage.RevlogSnippetID, storage.RevlogReviewedAt,
			storage.RevlogRating, storage.RevlogInterval, storage.RevlogEase).
		Values(review.ID, review.SnippetID, review.ReviewedAt,
			review.Rating, review.Interval, review.Ease).
		Build()
	if _, err := c.store.Mutate(ctx, query, params...); err != nil {
		return nil, fmt.Errorf("failed to record review: %w", err)
	}

	query, params = storage.Update(storage.Snippets).
		Set(storage.SnippetDue, c.NextDue).
		Set(storage.SnippetInterval, c.Interval).
		Set(storage.SnippetEase, c.Ease).
		Where(storage.SnippetID).Eq(c.SnippetID).
		Build()
	if _, err := c.store.Mutate(ctx, query, params...); err != nil {
		return nil, fmt.Errorf("failed to reschedule snippet: %w", err)
	}

	return &review, nil
}

// findSnippet loads one snippet by ID or reports it missing.
func findSnippet(ctx context.Context, store ports.SnippetStore, id string) (*domain.Snippet, error) {
	query, params := storage.Select(storage.Snippets).
		Where(storage.SnippetID).Eq(id).
		Build()
	rows := store.Query(ctx, query, params...)
	if len(rows) == 0 {
		return nil, &application.NotFoundError{ID: id}
	}
	s := domain.SnippetFromRow(rows[0])
	return &s, nil
}
