package erp

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dispatch/backend/internal/domain/orders"
)

const (
	defaultTokenValidity = 55 * time.Minute
	authTimeout          = 30 * time.Second

	authResultElement = "AuthenticateUserResult"
)

// Session holds the authentication token for the export endpoint. Access
// is serialized with a mutex, so concurrent callers of EnsureValidToken
// trigger at most one reauthentication; everyone else blocks and reuses
// the token the winner obtained.
type Session struct {
	creds     Credentials
	transport *Transport
	validity  time.Duration
	logger    *zap.Logger
	now       func() time.Time

	mu         sync.Mutex
	token      string
	acquiredAt time.Time
}

type SessionOption func(*Session)

// WithTokenValidity overrides the freshness window the upstream grants a
// token. The default stays under the server's one-hour expiry.
func WithTokenValidity(d time.Duration) SessionOption {
	return func(s *Session) { s.validity = d }
}

func NewSession(creds Credentials, transport *Transport, logger *zap.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		creds:     creds,
		transport: transport,
		validity:  defaultTokenValidity,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureValidToken returns the cached token when it is still inside the
// validity window, otherwise authenticates and caches the replacement.
func (s *Session) EnsureValidToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Sub(s.acquiredAt) <= s.validity {
		return s.token, nil
	}
	return s.authenticateLocked(ctx)
}

// Invalidate discards the cached token so the next EnsureValidToken
// reauthenticates. Used when the upstream rejects a token before the
// local window has elapsed.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Reset discards the cached token and immediately authenticates again.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	_, err := s.authenticateLocked(ctx)
	return err
}

func (s *Session) authenticateLocked(ctx context.Context) (string, error) {
	resp, err := s.transport.Send(ctx, authenticateEnvelope(s.creds), actionAuthenticate, authTimeout)
	if err != nil {
		return "", fmt.Errorf("%w: %v", orders.ErrAuthenticationFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: authentication returned status %d", orders.ErrAuthenticationFailed, resp.StatusCode)
	}

	token, found, err := collectElementText(bytes.NewReader(resp.Body), authResultElement)
	if err != nil {
		return "", fmt.Errorf("%w: %v", orders.ErrMalformedResponse, err)
	}
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", fmt.Errorf("%w: empty authentication result", orders.ErrAuthenticationFailed)
	}

	s.token = token
	s.acquiredAt = s.now()
	s.logger.Info("authenticated against export service",
		zap.String("username", s.creds.Username),
		zap.Duration("validity", s.validity))
	return token, nil
}
