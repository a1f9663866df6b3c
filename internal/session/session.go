// Package session owns the bearer token lifecycle and the identity derived from it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"tasky/internal/service"
)

const (
	// NoUser is returned by CurrentUserID when no identity can be derived.
	NoUser int64 = 0

	// userIDClaim is the claim holding the numeric user id.
	userIDClaim = "user_id"

	tokenType = "Bearer"
)

// claimsParser decodes claim segments only. Signatures are never verified.
var claimsParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Session holds the current token and persists changes through a TokenStore.
// It implements oauth2.TokenSource.
type Session struct {
	mu    sync.RWMutex
	store TokenStore
	token string
}

// Option configures a Session.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger that reports a discarded token file.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a session and loads any previously stored token.
// A corrupt stored token is removed and the session starts empty.
func New(store TokenStore, opts ...Option) (*Session, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	token, err := store.Load()
	if errors.Is(err, ErrCorruptToken) {
		o.logger.Debug("discarding stored token", zap.Error(err))
		if rmErr := store.Remove(); rmErr != nil {
			return nil, fmt.Errorf("failed to remove corrupt token: %w", rmErr)
		}
		token, err = "", nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	return &Session{store: store, token: token}, nil
}

// AccessToken returns the stored token, or "" when there is none.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasToken reports whether a token is stored.
func (s *Session) HasToken() bool {
	return s.AccessToken() != ""
}

// Token implements oauth2.TokenSource. It returns service.ErrNoSession
// when no token is stored.
func (s *Session) Token() (*oauth2.Token, error) {
	t := s.AccessToken()
	if t == "" {
		return nil, service.ErrNoSession
	}
	return &oauth2.Token{AccessToken: t, TokenType: tokenType}, nil
}

// SetToken stores token, replacing any prior value.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	s.token = token
	return nil
}

// ClearToken removes the stored token. Clearing an empty session is not an error.
func (s *Session) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	s.token = ""
	return nil
}

// CurrentUserID returns the user_id claim of the stored token.
// It returns NoUser when the token is absent, malformed, or lacks the claim.
func (s *Session) CurrentUserID() int64 {
	claims, ok := decodeClaims(s.AccessToken())
	if !ok {
		return NoUser
	}
	v, ok := claims[userIDClaim].(float64)
	if !ok || v <= 0 || v != math.Trunc(v) || v >= math.MaxInt64 {
		return NoUser
	}
	return int64(v)
}

// ExpiresAt returns the token's exp claim, or the zero time when unknown.
func (s *Session) ExpiresAt() time.Time {
	claims, ok := decodeClaims(s.AccessToken())
	if !ok {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// decodeClaims reads the middle segment of token as a JSON claims object.
func decodeClaims(token string) (jwt.MapClaims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, false
	}
	raw, err := claimsParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, false
	}
	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, false
	}
	return claims, true
}
