package article

import (
	"log/slog"
	"net/http"

	"pressroom/internal/common/pagination"
	"pressroom/internal/handler/http/auth"
	artUC "pressroom/internal/usecase/article"
)

// Register mounts all article HTTP handlers on the given mux.
// Every article route requires authentication.
func Register(mux *http.ServeMux, svc *artUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /articles", auth.Authorized(ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("GET    /articles/", auth.Authorized(GetHandler{svc}))

	mux.Handle("POST   /articles", auth.Authorized(CreateHandler{svc}))
	mux.Handle("PUT    /articles/", auth.Authorized(UpdateHandler{svc}))
	mux.Handle("DELETE /articles/", auth.Authorized(DeleteHandler{svc}))
}
