package entity

// User is the authenticated principal resolved from request credentials.
// It is resolved fresh on every request and never persisted by the core.
type User struct {
	ID    string
	Email string
}
