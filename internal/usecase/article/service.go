package article

import (
	"context"
	"errors"
	"fmt"

	"pressroom/internal/domain/entity"
	"pressroom/internal/repository"
)

// CreateInput represents the input parameters for creating a new article.
// AuthorID comes from the authenticated identity, never from the client.
type CreateInput struct {
	Title      string
	Content    string
	AuthorID   string
	Visibility entity.Visibility
}

// UpdateInput represents the input parameters for updating an article.
// Nil fields are left unchanged; AuthorID and CreatedAt can never be updated.
type UpdateInput struct {
	ID         string
	Title      *string
	Content    *string
	Visibility *entity.Visibility
}

// Service provides article management use cases.
// It handles validation and merge rules and delegates persistence to the
// repository bound at construction.
type Service struct {
	Repo repository.ArticleRepository
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is empty.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Article, error) {
	if id == "" {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// List retrieves articles honoring the optional pagination bounds.
func (s *Service) List(ctx context.Context, params repository.ListParams) ([]*entity.Article, error) {
	articles, err := s.Repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// ListByAuthor retrieves the articles created by the given author.
func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Article, error) {
	articles, err := s.Repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list articles by author: %w", err)
	}
	return articles, nil
}

// Create validates the input and persists a new article.
// Visibility defaults to public when omitted. The store stamps ID and
// CreatedAt. Returns a ValidationError for invalid input; nothing is
// written in that case.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	if err := entity.ValidateTitle(in.Title); err != nil {
		return nil, err
	}
	if in.AuthorID == "" {
		return nil, &entity.ValidationError{Field: "authorId", Message: "is required"}
	}
	visibility := in.Visibility
	if visibility == "" {
		visibility = entity.VisibilityPublic
	}
	if err := entity.ValidateVisibility(visibility); err != nil {
		return nil, err
	}

	created, err := s.Repo.Create(ctx, &entity.Article{
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   in.AuthorID,
		Visibility: visibility,
	})
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return created, nil
}

// Update merges the provided fields into the current record and persists
// the result. Unspecified fields retain their prior values; AuthorID and
// CreatedAt are carried over unchanged.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Article, error) {
	if in.ID == "" {
		return nil, ErrInvalidArticleID
	}

	current, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if current == nil {
		return nil, ErrArticleNotFound
	}

	merged := current.Clone()
	if in.Title != nil {
		if err := entity.ValidateTitle(*in.Title); err != nil {
			return nil, err
		}
		merged.Title = *in.Title
	}
	if in.Content != nil {
		merged.Content = *in.Content
	}
	if in.Visibility != nil {
		if err := entity.ValidateVisibility(*in.Visibility); err != nil {
			return nil, err
		}
		merged.Visibility = *in.Visibility
	}

	updated, err := s.Repo.Update(ctx, merged)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return updated, nil
}

// Delete removes an article by its ID.
// Returns ErrInvalidArticleID if the ID is empty and ErrArticleNotFound if
// the article does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArticleID
	}

	current, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if current == nil {
		return ErrArticleNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
