package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"pressroom/internal/domain/entity"
	"pressroom/internal/handler/http/auth"
	"pressroom/internal/handler/http/respond"
	artUC "pressroom/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP creates a new article. The author is the authenticated
// identity; an authorId in the body is ignored.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respond.Text(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		Visibility string `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	created, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   user.ID,
		Visibility: entity.Visibility(req.Visibility),
	})
	if err != nil {
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, articleEnvelope{Article: toDTO(created)})
}
