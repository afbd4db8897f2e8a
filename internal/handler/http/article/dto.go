// Package article provides HTTP handlers for article endpoints.
// It includes handlers for creating, listing, retrieving, updating, and
// deleting articles.
package article

import (
	"time"

	"pressroom/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID         string    `json:"id" example:"9f1c2a4e-5b6d-4c7e-8a90-1b2c3d4e5f6a"`
	Title      string    `json:"title" example:"Shipping the new editor"`
	Content    string    `json:"content" example:"We rebuilt the editor from scratch..."`
	AuthorID   string    `json:"authorId" example:"4d3c2b1a-0f9e-4d8c-b7a6-5e4f3d2c1b0a"`
	CreatedAt  time.Time `json:"createdAt" example:"2025-10-26T12:00:00Z"`
	Visibility string    `json:"visibility" example:"public"`
}

// articleEnvelope wraps a single article in the response body.
type articleEnvelope struct {
	Article DTO `json:"article"`
}

// listEnvelope wraps an article collection in the response body.
type listEnvelope struct {
	Articles []DTO `json:"articles"`
}

// messageEnvelope carries a human-readable confirmation.
type messageEnvelope struct {
	Message string `json:"message"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:         a.ID,
		Title:      a.Title,
		Content:    a.Content,
		AuthorID:   a.AuthorID,
		CreatedAt:  a.CreatedAt,
		Visibility: string(a.Visibility),
	}
}

func toDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}
