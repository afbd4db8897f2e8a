package auth

import (
	"context"
	"net/http"

	"pressroom/internal/domain/entity"
	authsvc "pressroom/internal/service/auth"
)

// SessionCookie is the name of the session cookie issued on login.
const SessionCookie = "pressroom_session"

// SessionClient authenticates a request by its session cookie.
type SessionClient struct {
	sessionID string
	sessions  *authsvc.SessionStore
}

func NewSessionClient(sessionID string, sessions *authsvc.SessionStore) *SessionClient {
	return &SessionClient{sessionID: sessionID, sessions: sessions}
}

func (c *SessionClient) GetUser(_ context.Context) (*entity.User, *Error) {
	if c.sessionID == "" {
		return nil, &Error{Message: "missing session", Status: http.StatusUnauthorized}
	}
	user, ok := c.sessions.Resolve(c.sessionID)
	if !ok {
		return nil, &Error{Message: "session expired", Status: http.StatusUnauthorized}
	}
	return &user, nil
}
