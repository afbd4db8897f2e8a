// Package entity defines the core domain entities and validation logic for
// the application. It contains the fundamental business objects such as
// Article and User, along with their validation rules and domain-specific
// errors.
package entity

import "time"

// Visibility controls who may read a published article.
type Visibility string

// Supported visibility values.
const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Article represents a published article in the system.
// AuthorID and CreatedAt are set once at creation and never change across
// updates; ID is system-generated and immutable.
type Article struct {
	ID         string
	Title      string
	Content    string
	AuthorID   string
	CreatedAt  time.Time
	Visibility Visibility
}

// Clone returns a copy of the article. Repositories hand out clones so that
// callers cannot mutate shared state.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}
