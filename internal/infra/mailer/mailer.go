// Package mailer delivers one-time login codes to users.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Mailer sends a login code to the given address.
type Mailer interface {
	SendLoginCode(ctx context.Context, email, code string) error
}

// LogMailer writes login codes to the structured log instead of sending
// mail. It is the default for local development.
type LogMailer struct {
	Logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{Logger: logger}
}

func (m *LogMailer) SendLoginCode(ctx context.Context, email, code string) error {
	m.Logger.InfoContext(ctx, "login code issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}

// WebhookMailer posts login codes to an external delivery endpoint as a
// form payload. Non-2xx responses are reported as errors.
type WebhookMailer struct {
	URL    string
	Client *http.Client
}

func NewWebhookMailer(url string) *WebhookMailer {
	return &WebhookMailer{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *WebhookMailer) SendLoginCode(ctx context.Context, email, code string) error {
	form := url.Values{"email": {email}, "code": {code}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL, strings.NewReader(form))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver login code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
