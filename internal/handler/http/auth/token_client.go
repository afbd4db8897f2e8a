package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"pressroom/internal/domain/entity"
)

// TokenClient authenticates a request by its bearer token. The token is
// captured at construction so GetUser needs no request access.
type TokenClient struct {
	token  string
	secret []byte
}

func NewTokenClient(token string, secret []byte) *TokenClient {
	return &TokenClient{token: token, secret: secret}
}

func (c *TokenClient) GetUser(_ context.Context) (*entity.User, *Error) {
	if c.token == "" {
		return nil, &Error{Message: "missing bearer token", Status: http.StatusUnauthorized}
	}

	parsed, err := jwt.Parse(c.token, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, &Error{Message: "invalid token", Status: http.StatusUnauthorized}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &Error{Message: "invalid token", Status: http.StatusUnauthorized}
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, &Error{Message: "invalid token", Status: http.StatusUnauthorized}
	}

	return &entity.User{ID: sub, Email: email}, nil
}

// ParseBearerToken extracts the token from an Authorization header,
// returning "" when the header is absent or not a bearer scheme.
func ParseBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
