// Package article provides use cases for managing articles.
// It implements business logic for creating, updating, deleting, and
// querying articles, including validation and field-merge rules, and
// delegates persistence to the repository.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs are opaque non-empty strings.
	ErrInvalidArticleID = errors.New("invalid article ID")
)
