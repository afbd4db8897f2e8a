package article

import (
	"log/slog"
	"net/http"

	"pressroom/internal/common/pagination"
	"pressroom/internal/handler/http/respond"
	"pressroom/internal/repository"
	artUC "pressroom/internal/usecase/article"
)

type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP lists articles, newest first. Optional query parameters:
// limit and offset bound the result page, authorId narrows the listing
// to one author.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if authorID := r.URL.Query().Get("authorId"); authorID != "" {
		found, err := h.Svc.ListByAuthor(r.Context(), authorID)
		if err != nil {
			h.logFailure(r, err)
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
		respond.JSON(w, http.StatusOK, listEnvelope{Articles: toDTOs(found)})
		return
	}

	found, err := h.Svc.List(r.Context(), repository.ListParams{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		h.logFailure(r, err)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, listEnvelope{Articles: toDTOs(found)})
}

func (h ListHandler) logFailure(r *http.Request, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.ErrorContext(r.Context(), "failed to list articles",
		slog.String("error", err.Error()),
	)
}
