// Package auth implements passwordless login with one-time email codes.
// A verified code yields both a signed token and a server-side session,
// so clients may authenticate with either.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pressroom/internal/domain/entity"
	"pressroom/internal/infra/mailer"
)

// userNamespace makes user IDs a pure function of the email address, so
// repeat logins map to the same identity without a user table.
var userNamespace = uuid.MustParse("6f2c4e1a-9d3b-4c7e-8a50-1b2d3e4f5a6b")

// TokenOutput is the result of a successful code verification.
type TokenOutput struct {
	Token     string
	SessionID string
	User      entity.User
}

// Service ties together code issuance, verification, and credential
// minting.
type Service struct {
	Codes     *CodeStore
	Sessions  *SessionStore
	Mail      mailer.Mailer
	JWTSecret []byte
	TokenTTL  time.Duration
	clock     Clock
}

func NewService(codes *CodeStore, sessions *SessionStore, mail mailer.Mailer, jwtSecret []byte, tokenTTL time.Duration, clock Clock) *Service {
	if clock == nil {
		clock = RealClock{}
	}
	return &Service{
		Codes:     codes,
		Sessions:  sessions,
		Mail:      mail,
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
		clock:     clock,
	}
}

// RequestCode issues a one-time code for the address and hands it to the
// mailer for delivery.
func (s *Service) RequestCode(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	code, err := s.Codes.Issue(email)
	if err != nil {
		return err
	}
	if err := s.Mail.SendLoginCode(ctx, email, code); err != nil {
		return fmt.Errorf("send login code: %w", err)
	}
	return nil
}

// VerifyCode checks the code and, on success, returns a signed token and
// a fresh session for the resolved user.
func (s *Service) VerifyCode(_ context.Context, email, code string) (*TokenOutput, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := s.Codes.Consume(email, code); err != nil {
		return nil, err
	}

	user := entity.User{
		ID:    uuid.NewSHA1(userNamespace, []byte(email)).String(),
		Email: email,
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &TokenOutput{
		Token:     token,
		SessionID: s.Sessions.Create(user),
		User:      user,
	}, nil
}

// Logout destroys the given session.
func (s *Service) Logout(_ context.Context, sessionID string) {
	s.Sessions.Destroy(sessionID)
}

func (s *Service) issueToken(user entity.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
