package article

import (
	"errors"
	"net/http"

	"pressroom/internal/handler/http/pathutil"
	"pressroom/internal/handler/http/respond"
	artUC "pressroom/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP returns a single article by its ID. A missing article yields
// a plain-text 404.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	found, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, artUC.ErrArticleNotFound):
			respond.Text(w, http.StatusNotFound, "Article not found")
		case errors.Is(err, artUC.ErrInvalidArticleID):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, articleEnvelope{Article: toDTO(found)})
}
