package article_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pressroom/internal/common/pagination"
	"pressroom/internal/handler/http/article"
	"pressroom/internal/infra/adapter/persistence/memory"
	artUC "pressroom/internal/usecase/article"
)

func listConfig() pagination.Config {
	return pagination.Config{MaxLimit: 100}
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []article.DTO {
	t.Helper()
	var body struct {
		Articles []article.DTO `json:"articles"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Articles
}

func TestListHandler_Empty(t *testing.T) {
	handler := article.ListHandler{
		Svc:           &artUC.Service{Repo: memory.NewArticleRepo()},
		PaginationCfg: listConfig(),
	}

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := decodeList(t, rr); len(got) != 0 {
		t.Errorf("articles = %d, want 0", len(got))
	}
	// An empty listing still serializes as a JSON array.
	if body := rr.Body.String(); body != "{\"articles\":[]}\n" {
		t.Errorf("body = %q, want empty array envelope", body)
	}
}

func TestListHandler_NewestFirst(t *testing.T) {
	repo := memory.NewArticleRepo()
	first := seedArticle(t, repo, "First", "author-1")
	second := seedArticle(t, repo, "Second", "author-1")
	third := seedArticle(t, repo, "Third", "author-2")

	handler := article.ListHandler{Svc: &artUC.Service{Repo: repo}, PaginationCfg: listConfig()}

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	got := decodeList(t, rr)
	if len(got) != 3 {
		t.Fatalf("articles = %d, want 3", len(got))
	}
	wantOrder := []string{third.ID, second.ID, first.ID}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("articles[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestListHandler_Pagination(t *testing.T) {
	repo := memory.NewArticleRepo()
	first := seedArticle(t, repo, "First", "author-1")
	second := seedArticle(t, repo, "Second", "author-1")
	seedArticle(t, repo, "Third", "author-1")

	handler := article.ListHandler{Svc: &artUC.Service{Repo: repo}, PaginationCfg: listConfig()}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "limit only", query: "?limit=1", want: []string{"Third"}},
		{name: "limit and offset", query: "?limit=1&offset=1", want: []string{second.Title}},
		{name: "offset without limit", query: "?offset=2", want: []string{first.Title}},
		{name: "offset past the end", query: "?offset=10", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/articles"+tt.query, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
			}
			got := decodeList(t, rr)
			if len(got) != len(tt.want) {
				t.Fatalf("articles = %d, want %d", len(got), len(tt.want))
			}
			for i, title := range tt.want {
				if got[i].Title != title {
					t.Errorf("articles[%d].Title = %q, want %q", i, got[i].Title, title)
				}
			}
		})
	}
}

func TestListHandler_FilterByAuthor(t *testing.T) {
	repo := memory.NewArticleRepo()
	seedArticle(t, repo, "Mine", "author-1")
	seedArticle(t, repo, "Theirs", "author-2")

	handler := article.ListHandler{Svc: &artUC.Service{Repo: repo}, PaginationCfg: listConfig()}

	req := httptest.NewRequest(http.MethodGet, "/articles?authorId=author-1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	got := decodeList(t, rr)
	if len(got) != 1 {
		t.Fatalf("articles = %d, want 1", len(got))
	}
	if got[0].Title != "Mine" {
		t.Errorf("title = %q, want %q", got[0].Title, "Mine")
	}
}

func TestListHandler_InvalidPagination(t *testing.T) {
	handler := article.ListHandler{
		Svc:           &artUC.Service{Repo: memory.NewArticleRepo()},
		PaginationCfg: listConfig(),
	}

	for _, query := range []string{"?limit=0", "?limit=abc", "?limit=101", "?offset=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/articles"+query, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("query %q: status code = %d, want %d", query, rr.Code, http.StatusBadRequest)
		}
	}
}

func TestListHandler_RepoFailure(t *testing.T) {
	handler := article.ListHandler{
		Svc:           &artUC.Service{Repo: &failingRepo{err: errors.New("connection refused")}},
		PaginationCfg: listConfig(),
	}

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
