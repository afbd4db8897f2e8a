package auth

import (
	"net/http"

	"pressroom/internal/handler/http/respond"
	authsvc "pressroom/internal/service/auth"
)

// ClientFactory builds the authentication client for one request.
type ClientFactory func(r *http.Request) Client

// NewClientFactory prefers a bearer token when one is present and falls
// back to the session cookie otherwise.
func NewClientFactory(secret []byte, sessions *authsvc.SessionStore) ClientFactory {
	return func(r *http.Request) Client {
		if token := ParseBearerToken(r.Header.Get("Authorization")); token != "" {
			return NewTokenClient(token, secret)
		}
		var sessionID string
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			sessionID = cookie.Value
		}
		return NewSessionClient(sessionID, sessions)
	}
}

// WithClient attaches a per-request client to the context. It performs
// no authentication itself; Authorized and handlers that need identity
// pull the client back off the context.
func WithClient(factory ClientFactory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithClientContext(r.Context(), factory(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorized resolves the identity and rejects the request when
// resolution fails. On success the user is stored on the context.
func Authorized(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := ClientFrom(r.Context())
		if client == nil {
			respond.Text(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, authErr := client.GetUser(r.Context())
		if authErr != nil {
			recordAuthFailure(authErr.StatusCode())
			respond.Text(w, authErr.StatusCode(), authErr.Message)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}
