package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/domain/entity"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type recordingMailer struct {
	email string
	code  string
}

func (m *recordingMailer) SendLoginCode(_ context.Context, email, code string) error {
	m.email = email
	m.code = code
	return nil
}

func newTestService(clock Clock) (*Service, *recordingMailer) {
	mail := &recordingMailer{}
	svc := NewService(
		NewCodeStore(5*time.Minute, clock),
		NewSessionStore(time.Hour, clock),
		mail,
		[]byte("0123456789abcdef0123456789abcdef"),
		time.Hour,
		clock,
	)
	return svc, mail
}

func TestRequestAndVerifyCode(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc, mail := newTestService(clock)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "Reader@Example.com"))
	assert.Equal(t, "reader@example.com", mail.email)
	require.Len(t, mail.code, 6)

	out, err := svc.VerifyCode(ctx, "reader@example.com", mail.code)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", out.User.Email)
	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.SessionID)

	user, ok := svc.Sessions.Resolve(out.SessionID)
	require.True(t, ok)
	assert.Equal(t, out.User, user)
}

func TestVerifyCodeStableUserID(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, mail := newTestService(clock)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "reader@example.com"))
	first, err := svc.VerifyCode(ctx, "reader@example.com", mail.code)
	require.NoError(t, err)

	require.NoError(t, svc.RequestCode(ctx, "reader@example.com"))
	second, err := svc.VerifyCode(ctx, "reader@example.com", mail.code)
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, mail := newTestService(clock)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "reader@example.com"))

	_, err := svc.VerifyCode(ctx, "reader@example.com", "000000")
	if mail.code == "000000" {
		t.Skip("collided with the issued code")
	}
	assert.ErrorIs(t, err, ErrCodeInvalid)

	// The real code still works after a wrong guess.
	_, err = svc.VerifyCode(ctx, "reader@example.com", mail.code)
	assert.NoError(t, err)
}

func TestVerifyCodeSingleUse(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, mail := newTestService(clock)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "reader@example.com"))
	_, err := svc.VerifyCode(ctx, "reader@example.com", mail.code)
	require.NoError(t, err)

	_, err = svc.VerifyCode(ctx, "reader@example.com", mail.code)
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestVerifyCodeExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc, mail := newTestService(clock)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "reader@example.com"))
	clock.now = clock.now.Add(6 * time.Minute)

	_, err := svc.VerifyCode(ctx, "reader@example.com", mail.code)
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestVerifyCodeAttemptBudget(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, mail := newTestService(clock)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "reader@example.com"))
	wrong := "000000"
	if mail.code == wrong {
		wrong = "000001"
	}

	var err error
	for i := 0; i < maxAttempts; i++ {
		_, err = svc.VerifyCode(ctx, "reader@example.com", wrong)
	}
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// The code was discarded along with the budget.
	_, err = svc.VerifyCode(ctx, "reader@example.com", mail.code)
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestRequestCodeRejectsInvalidEmail(t *testing.T) {
	svc, _ := newTestService(&fakeClock{now: time.Now()})

	err := svc.RequestCode(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestIssuedTokenClaims(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc, mail := newTestService(clock)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "reader@example.com"))
	out, err := svc.VerifyCode(ctx, "reader@example.com", mail.code)
	require.NoError(t, err)

	parsed, err := jwt.Parse(out.Token, func(*jwt.Token) (any, error) {
		return svc.JWTSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(clock.Now))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, out.User.ID, claims["sub"])
	assert.Equal(t, "reader@example.com", claims["email"])
}

func TestLogoutDestroysSession(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, mail := newTestService(clock)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "reader@example.com"))
	out, err := svc.VerifyCode(ctx, "reader@example.com", mail.code)
	require.NoError(t, err)

	svc.Logout(ctx, out.SessionID)
	_, ok := svc.Sessions.Resolve(out.SessionID)
	assert.False(t, ok)
}

func TestStorePurge(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	codes := NewCodeStore(5*time.Minute, clock)
	sessions := NewSessionStore(30*time.Minute, clock)

	_, err := codes.Issue("reader@example.com")
	require.NoError(t, err)
	sessions.Create(entity.User{ID: "u1", Email: "reader@example.com"})

	assert.Zero(t, codes.Purge())
	assert.Zero(t, sessions.Purge())

	clock.now = clock.now.Add(time.Hour)
	assert.Equal(t, 1, codes.Purge())
	assert.Equal(t, 1, sessions.Purge())
}
