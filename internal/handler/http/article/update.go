package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"pressroom/internal/domain/entity"
	"pressroom/internal/handler/http/pathutil"
	"pressroom/internal/handler/http/respond"
	artUC "pressroom/internal/usecase/article"
)

type UpdateHandler struct{ Svc *artUC.Service }

// ServeHTTP applies a partial update. Absent fields keep their current
// values; authorId and createdAt never change.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title      *string `json:"title"`
		Content    *string `json:"content"`
		Visibility *string `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	in := artUC.UpdateInput{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	}
	if req.Visibility != nil {
		v := entity.Visibility(*req.Visibility)
		in.Visibility = &v
	}

	updated, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.Is(err, artUC.ErrArticleNotFound):
			respond.Text(w, http.StatusNotFound, "Article not found")
		case errors.Is(err, artUC.ErrInvalidArticleID), errors.As(err, &vErr):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, articleEnvelope{Article: toDTO(updated)})
}
