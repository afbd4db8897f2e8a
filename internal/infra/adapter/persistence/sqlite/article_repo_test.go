package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"pressroom/internal/domain/entity"
	"pressroom/internal/infra/adapter/persistence/sqlite"
	"pressroom/internal/infra/db"
	"pressroom/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	// The in-memory database disappears with the connection, so keep one.
	database.SetMaxOpenConns(1)
	if err := db.MigrateUp(database, db.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func newTestRepo(t *testing.T) repository.ArticleRepository {
	t.Helper()
	return sqlite.NewArticleRepo(newTestDB(t))
}

func seed(t *testing.T, repo repository.ArticleRepository) []*entity.Article {
	t.Helper()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	input := []*entity.Article{
		{ID: "a1", Title: "Oldest", AuthorID: "author-1", CreatedAt: base, Visibility: entity.VisibilityPublic},
		{ID: "a2", Title: "Middle", AuthorID: "author-2", CreatedAt: base.Add(time.Hour), Visibility: entity.VisibilityPublic},
		{ID: "a3", Title: "Newest", AuthorID: "author-1", CreatedAt: base.Add(2 * time.Hour), Visibility: entity.VisibilityPrivate},
	}
	for _, a := range input {
		if _, err := repo.Create(context.Background(), a); err != nil {
			t.Fatalf("seed Create: %v", err)
		}
	}
	return input
}

func TestCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Create(ctx, &entity.Article{
		Title:      "Hello",
		Content:    "Body",
		AuthorID:   "author-1",
		Visibility: entity.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("Create did not stamp ID/CreatedAt: %+v", created)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Title != "Hello" || got.Content != "Body" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created.CreatedAt)
	}
}

func TestEmptyContentReadsBackEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Create(ctx, &entity.Article{
		Title: "No body", AuthorID: "author-1", Visibility: entity.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != "" {
		t.Errorf("Content = %q, want empty", got.Content)
	}
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seed(t, repo)

	all, err := repo.List(ctx, repository.ListParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a3" || all[2].ID != "a1" {
		t.Fatalf("List() order = %v, want [a3 a2 a1]", ids(all))
	}

	limit, offset := 1, 1
	page, err := repo.List(ctx, repository.ListParams{Limit: &limit, Offset: &offset})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 1 || page[0].ID != "a2" {
		t.Errorf("List(limit:1, offset:1) = %v, want [a2]", ids(page))
	}

	// Offset without limit is accepted.
	rest, err := repo.List(ctx, repository.ListParams{Offset: &offset})
	if err != nil {
		t.Fatalf("List(offset only): %v", err)
	}
	if len(rest) != 2 || rest[0].ID != "a2" {
		t.Errorf("List(offset:1) = %v, want [a2 a1]", ids(rest))
	}
}

func TestListByAuthor(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seed(t, repo)

	got, err := repo.ListByAuthor(ctx, "author-1")
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a3" || got[1].ID != "a1" {
		t.Errorf("ListByAuthor(author-1) = %v, want [a3 a1]", ids(got))
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seed(t, repo)

	current, err := repo.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	modified := current.Clone()
	modified.Title = "Renamed"

	updated, err := repo.Update(ctx, modified)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("Title = %q, want Renamed", updated.Title)
	}
	if updated.AuthorID != current.AuthorID || !updated.CreatedAt.Equal(current.CreatedAt) {
		t.Errorf("Update changed immutable fields: %+v", updated)
	}

	_, err = repo.Update(ctx, &entity.Article{ID: "missing", Title: "x", Visibility: entity.VisibilityPublic})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want entity.ErrNotFound", err)
	}
}

func TestUpdateRowDeletedBeforeReadBack(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	repo := sqlite.NewArticleRepo(database)
	seed(t, repo)

	// Simulate a concurrent delete landing between the UPDATE and the
	// read-back: the trigger removes the row as soon as it is updated.
	_, err := database.ExecContext(ctx, `
CREATE TRIGGER drop_after_update AFTER UPDATE ON articles
BEGIN
	DELETE FROM articles WHERE id = NEW.id;
END`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	updated, err := repo.Update(ctx, &entity.Article{
		ID: "a1", Title: "Renamed", Visibility: entity.VisibilityPublic,
	})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Update error = %v, want entity.ErrNotFound", err)
	}
	if updated != nil {
		t.Errorf("Update = %+v, want nil", updated)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seed(t, repo)

	if err := repo.Delete(ctx, "a2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := repo.Get(ctx, "a2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("Get after delete = %+v, want nil", got)
	}
	if err := repo.Delete(ctx, "a2"); err != nil {
		t.Errorf("second Delete = %v, want nil", err)
	}
}

func ids(articles []*entity.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}
