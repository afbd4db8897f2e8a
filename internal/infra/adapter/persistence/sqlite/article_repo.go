// Package sqlite provides SQLite implementations of the repository
// interfaces, backed by the pure-Go modernc.org/sqlite driver. Timestamps
// are stored as RFC 3339 text.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/domain/entity"
	"pressroom/internal/repository"
)

// ArticleRepo implements repository.ArticleRepository using SQLite.
type ArticleRepo struct{ db *sql.DB }

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

const selectColumns = `id, title, COALESCE(content, ''), author_id, created_at, visibility`

// Get retrieves an article by ID. Returns (nil, nil) when no row matches.
func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	query := `SELECT ` + selectColumns + ` FROM articles WHERE id = ? LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

// List retrieves articles newest first, honoring the optional bounds.
// SQLite has no bare OFFSET clause, so offset-without-limit is expressed as
// LIMIT -1 OFFSET n.
func (repo *ArticleRepo) List(ctx context.Context, params repository.ListParams) ([]*entity.Article, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + selectColumns + ` FROM articles ORDER BY created_at DESC, id ASC`)

	var args []any
	switch {
	case params.Limit != nil && params.Offset != nil:
		query.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, *params.Limit, *params.Offset)
	case params.Limit != nil:
		query.WriteString(` LIMIT ?`)
		args = append(args, *params.Limit)
	case params.Offset != nil:
		query.WriteString(` LIMIT -1 OFFSET ?`)
		args = append(args, *params.Offset)
	}

	rows, err := repo.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectArticles(rows)
}

// ListByAuthor retrieves the author's articles, newest first.
func (repo *ArticleRepo) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Article, error) {
	query := `SELECT ` + selectColumns + ` FROM articles WHERE author_id = ? ORDER BY created_at DESC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ListByAuthor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectArticles(rows)
}

// Create inserts a new article, stamping ID and CreatedAt when zero.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	stored := article.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	const query = `
INSERT INTO articles (id, title, content, author_id, created_at, visibility)
VALUES (?, ?, NULLIF(?, ''), ?, ?, ?)`
	_, err := repo.db.ExecContext(ctx, query,
		stored.ID, stored.Title, stored.Content, stored.AuthorID,
		stored.CreatedAt.Format(time.RFC3339Nano), string(stored.Visibility))
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return stored, nil
}

// Update writes the mutable columns of the given article.
// Returns an error wrapping entity.ErrNotFound when no row matches.
func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	const query = `
UPDATE articles
SET title = ?, content = NULLIF(?, ''), visibility = ?
WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, string(article.Visibility), article.ID)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("update article %s: %w", article.ID, entity.ErrNotFound)
	}
	stored, err := repo.Get(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		// The row was deleted between the UPDATE and the read-back.
		return nil, fmt.Errorf("update article %s: %w", article.ID, entity.ErrNotFound)
	}
	return stored, nil
}

// Delete removes an article by ID. A missing row is not an error.
func (repo *ArticleRepo) Delete(ctx context.Context, id string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var article entity.Article
	var createdAt, visibility string
	if err := row.Scan(&article.ID, &article.Title, &article.Content,
		&article.AuthorID, &createdAt, &visibility); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	article.CreatedAt = ts
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
