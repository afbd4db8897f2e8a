// Package repository declares the storage-agnostic persistence contracts.
// Concrete implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"pressroom/internal/domain/entity"
)

// ListParams carries optional pagination bounds for List.
// A nil field means "no bound". Offset is applied before Limit and each can
// be set independently; every implementation accepts offset without limit.
// Set values must be non-negative; implementations treat negatives as
// absent.
type ListParams struct {
	Limit  *int
	Offset *int
}

// ArticleRepository is the contract for article persistence.
// Implementations must be safe for concurrent use.
type ArticleRepository interface {
	// Get retrieves an article by ID.
	// Returns (nil, nil) if the article does not exist; absence is a normal
	// result, not an error.
	Get(ctx context.Context, id string) (*entity.Article, error)
	// List retrieves articles ordered by creation time descending, with ID
	// ascending as tie-break, honoring the optional bounds in params.
	List(ctx context.Context, params ListParams) ([]*entity.Article, error)
	// ListByAuthor retrieves all articles created by the given author,
	// newest first.
	ListByAuthor(ctx context.Context, authorID string) ([]*entity.Article, error)
	// Create persists a new article and returns the stored record.
	// The repository stamps ID and CreatedAt when they are zero.
	Create(ctx context.Context, article *entity.Article) (*entity.Article, error)
	// Update persists the given entity and returns the stored record.
	// Returns an error wrapping entity.ErrNotFound if no record matches.
	// AuthorID and CreatedAt are never modified by an update.
	Update(ctx context.Context, article *entity.Article) (*entity.Article, error)
	// Delete removes an article by ID. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id string) error
}
