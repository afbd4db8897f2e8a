// Package postgres provides PostgreSQL implementations of the repository
// interfaces. Entity fields are remapped to snake_case columns
// (AuthorID <-> author_id, CreatedAt <-> created_at) at the SQL layer.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"pressroom/internal/domain/entity"
	"pressroom/internal/repository"
)

// articleColumns is the canonical SELECT list. Content is stored NULLable
// and read back as an empty string.
var articleColumns = []string{
	"id",
	"title",
	"COALESCE(content, '') AS content",
	"author_id",
	"created_at",
	"visibility",
}

// ArticleRepo implements repository.ArticleRepository over PostgreSQL.
type ArticleRepo struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

// NewArticleRepo creates a new PostgreSQL-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get retrieves an article by ID. Returns (nil, nil) when no row matches.
func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	const query = `
SELECT id, title, COALESCE(content, '') AS content, author_id, created_at, visibility
FROM articles
WHERE id = $1
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

// List retrieves articles ordered by created_at descending, honoring the
// optional limit/offset bounds. Offset without limit is a plain OFFSET.
func (repo *ArticleRepo) List(ctx context.Context, params repository.ListParams) ([]*entity.Article, error) {
	qb := repo.builder.
		Select(articleColumns...).
		From("articles").
		OrderBy("created_at DESC", "id ASC")
	if params.Offset != nil && *params.Offset >= 0 {
		qb = qb.Offset(uint64(*params.Offset))
	}
	if params.Limit != nil && *params.Limit >= 0 {
		qb = qb.Limit(uint64(*params.Limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("List: build query: %w", err)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectArticles(rows)
}

// ListByAuthor retrieves the author's articles, newest first.
func (repo *ArticleRepo) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Article, error) {
	const query = `
SELECT id, title, COALESCE(content, '') AS content, author_id, created_at, visibility
FROM articles
WHERE author_id = $1
ORDER BY created_at DESC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ListByAuthor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectArticles(rows)
}

// Create inserts a new article, stamping ID and CreatedAt when zero, and
// returns the stored row.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	id := article.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := article.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	const query = `
INSERT INTO articles (id, title, content, author_id, created_at, visibility)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
RETURNING id, title, COALESCE(content, '') AS content, author_id, created_at, visibility`
	stored, err := scanArticle(repo.db.QueryRowContext(ctx, query,
		id, article.Title, article.Content, article.AuthorID, createdAt, article.Visibility))
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return stored, nil
}

// Update writes the mutable columns (title, content, visibility) of the
// given article. author_id and created_at are never part of the SET list.
// Returns an error wrapping entity.ErrNotFound when no row matches.
func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	qb := repo.builder.
		Update("articles").
		Set("title", article.Title).
		Set("content", sq.Expr("NULLIF(?, '')", article.Content)).
		Set("visibility", string(article.Visibility)).
		Where(sq.Eq{"id": article.ID}).
		Suffix("RETURNING id, title, COALESCE(content, '') AS content, author_id, created_at, visibility")

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("Update: build query: %w", err)
	}

	stored, err := scanArticle(repo.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update article %s: %w", article.ID, entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return stored, nil
}

// Delete removes an article by ID. A missing row is not an error; any
// store-level failure is surfaced to the caller.
func (repo *ArticleRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM articles WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var article entity.Article
	var visibility string
	if err := row.Scan(&article.ID, &article.Title, &article.Content,
		&article.AuthorID, &article.CreatedAt, &visibility); err != nil {
		return nil, err
	}
	article.Visibility = entity.Visibility(visibility)
	return &article, nil
}

func collectArticles(rows *sql.Rows) ([]*entity.Article, error) {
	articles := make([]*entity.Article, 0, 20)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}
