package mailer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMailerSendLoginCode(t *testing.T) {
	m := NewLogMailer(slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := m.SendLoginCode(context.Background(), "user@example.com", "123456")
	assert.NoError(t, err)
}

func TestWebhookMailerSendLoginCode(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got, _ = url.ParseQuery(string(body))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewWebhookMailer(srv.URL)
	err := m.SendLoginCode(context.Background(), "user@example.com", "654321")
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", got.Get("email"))
	assert.Equal(t, "654321", got.Get("code"))
}

func TestWebhookMailerRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	m := NewWebhookMailer(srv.URL)
	err := m.SendLoginCode(context.Background(), "user@example.com", "000000")
	assert.ErrorContains(t, err, "status 502")
}
