package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	codeDigits  = 6
	maxAttempts = 5
)

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

// RealClock uses the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

type pendingCode struct {
	hash      string
	expiresAt time.Time
	attempts  int
}

// CodeStore keeps hashed one-time login codes in memory, keyed by email.
// Only the most recent code per address is valid.
type CodeStore struct {
	mu    sync.Mutex
	codes map[string]*pendingCode
	ttl   time.Duration
	clock Clock
}

func NewCodeStore(ttl time.Duration, clock Clock) *CodeStore {
	if clock == nil {
		clock = RealClock{}
	}
	return &CodeStore{
		codes: make(map[string]*pendingCode),
		ttl:   ttl,
		clock: clock,
	}
}

// Issue generates a fresh numeric code for the address, replacing any
// previous one, and returns the plain code for delivery. Only the hash
// is retained.
func (s *CodeStore) Issue(email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate login code: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = &pendingCode{
		hash:      hashCode(code),
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	return code, nil
}

// Consume validates the code for the address. A successful match removes
// the pending code. Wrong guesses count against a bounded attempt budget;
// once spent the code is discarded.
func (s *CodeStore) Consume(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.codes[email]
	if !ok {
		return ErrCodeInvalid
	}
	if s.clock.Now().After(pending.expiresAt) {
		delete(s.codes, email)
		return ErrCodeInvalid
	}

	want := pending.hash
	got := hashCode(code)
	if subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
		pending.attempts++
		if pending.attempts >= maxAttempts {
			delete(s.codes, email)
			return ErrTooManyAttempts
		}
		return ErrCodeInvalid
	}

	delete(s.codes, email)
	return nil
}

// Purge drops expired codes and returns how many were removed.
func (s *CodeStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for email, pending := range s.codes {
		if now.After(pending.expiresAt) {
			delete(s.codes, email)
			removed++
		}
	}
	return removed
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
