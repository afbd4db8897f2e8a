// Package memory provides a map-backed implementation of the repository
// interfaces. Data lives for the lifetime of the process only; the package
// is intended for demos and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/domain/entity"
	"pressroom/internal/repository"
)

// ArticleRepo implements repository.ArticleRepository over an in-memory map.
// A mutex guards the map: request handlers run on parallel goroutines, so
// unsynchronized access would race.
type ArticleRepo struct {
	mu       sync.RWMutex
	articles map[string]*entity.Article
}

// NewArticleRepo creates an in-memory article repository, optionally seeded
// with existing articles. Seeded articles are cloned on the way in.
func NewArticleRepo(seed ...*entity.Article) *ArticleRepo {
	repo := &ArticleRepo{articles: make(map[string]*entity.Article, len(seed))}
	for _, a := range seed {
		repo.articles[a.ID] = a.Clone()
	}
	return repo
}

// Get retrieves an article by ID. Returns (nil, nil) when absent.
func (repo *ArticleRepo) Get(_ context.Context, id string) (*entity.Article, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.articles[id].Clone(), nil
}

// List returns articles ordered by creation time descending (ID ascending as
// tie-break). Offset is applied first, then limit; each bound is optional.
func (repo *ArticleRepo) List(_ context.Context, params repository.ListParams) ([]*entity.Article, error) {
	repo.mu.RLock()
	articles := repo.snapshot(func(*entity.Article) bool { return true })
	repo.mu.RUnlock()

	sortNewestFirst(articles)
	return paginate(articles, params), nil
}

// ListByAuthor returns the author's articles, newest first.
func (repo *ArticleRepo) ListByAuthor(_ context.Context, authorID string) ([]*entity.Article, error) {
	repo.mu.RLock()
	articles := repo.snapshot(func(a *entity.Article) bool { return a.AuthorID == authorID })
	repo.mu.RUnlock()

	sortNewestFirst(articles)
	return articles, nil
}

// Create stores a new article, stamping ID and CreatedAt when zero.
func (repo *ArticleRepo) Create(_ context.Context, article *entity.Article) (*entity.Article, error) {
	stored := article.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, exists := repo.articles[stored.ID]; exists {
		return nil, fmt.Errorf("create article %s: id already in use", stored.ID)
	}
	repo.articles[stored.ID] = stored
	return stored.Clone(), nil
}

// Update replaces the stored record for the article's ID. AuthorID and
// CreatedAt always come from the stored record, matching the SQL
// backends, which exclude those columns from the update.
// Returns an error wrapping entity.ErrNotFound when the ID is absent.
func (repo *ArticleRepo) Update(_ context.Context, article *entity.Article) (*entity.Article, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	current, exists := repo.articles[article.ID]
	if !exists {
		return nil, fmt.Errorf("update article %s: %w", article.ID, entity.ErrNotFound)
	}
	stored := article.Clone()
	stored.AuthorID = current.AuthorID
	stored.CreatedAt = current.CreatedAt
	repo.articles[article.ID] = stored
	return stored.Clone(), nil
}

// Delete removes an article. Deleting an absent ID is a no-op.
func (repo *ArticleRepo) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.articles, id)
	return nil
}

// Len reports the number of stored articles. Used by tests.
func (repo *ArticleRepo) Len() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.articles)
}

// snapshot clones every article matching keep. Caller must hold the lock.
func (repo *ArticleRepo) snapshot(keep func(*entity.Article) bool) []*entity.Article {
	articles := make([]*entity.Article, 0, len(repo.articles))
	for _, a := range repo.articles {
		if keep(a) {
			articles = append(articles, a.Clone())
		}
	}
	return articles
}

func sortNewestFirst(articles []*entity.Article) {
	sort.Slice(articles, func(i, j int) bool {
		if !articles[i].CreatedAt.Equal(articles[j].CreatedAt) {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		}
		return articles[i].ID < articles[j].ID
	})
}

// paginate applies slice semantics: drop the first Offset items, then take
// the first Limit of the remainder. Negative bounds are treated as absent.
func paginate(articles []*entity.Article, params repository.ListParams) []*entity.Article {
	if params.Offset != nil && *params.Offset > 0 {
		if *params.Offset >= len(articles) {
			return []*entity.Article{}
		}
		articles = articles[*params.Offset:]
	}
	if params.Limit != nil && *params.Limit >= 0 && *params.Limit < len(articles) {
		articles = articles[:*params.Limit]
	}
	return articles
}
