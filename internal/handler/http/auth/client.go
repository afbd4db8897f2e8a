// Package auth provides the per-request authentication client and the
// middleware that gates protected routes behind it.
package auth

import (
	"context"
	"net/http"

	"pressroom/internal/domain/entity"
)

// Error describes an authentication failure destined for the client.
// It is a value, not a Go error, because handlers branch on it rather
// than propagate it.
type Error struct {
	Message string
	Status  int
}

// StatusCode returns the HTTP status for the failure, defaulting to 401
// when none was set.
func (e *Error) StatusCode() int {
	if e.Status == 0 {
		return http.StatusUnauthorized
	}
	return e.Status
}

// Client resolves the identity behind a request. Exactly one of the
// returned values is non-nil.
type Client interface {
	GetUser(ctx context.Context) (*entity.User, *Error)
}

type contextKey int

const (
	clientKey contextKey = iota
	userKey
)

// WithClientContext stores a client on the context.
func WithClientContext(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey, c)
}

// ClientFrom returns the client placed on the context by WithClient, or
// nil when the middleware did not run.
func ClientFrom(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey).(Client)
	return c
}

// WithUser stores a resolved identity on the context.
func WithUser(ctx context.Context, u *entity.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFrom returns the identity placed on the context by Authorized, or
// nil outside a protected route.
func UserFrom(ctx context.Context) *entity.User {
	u, _ := ctx.Value(userKey).(*entity.User)
	return u
}
