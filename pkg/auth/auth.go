// Package auth verifies OpenID Connect bearer tokens for administrative endpoints.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/JaimeStill/bizz/pkg/handlers"
	"github.com/JaimeStill/bizz/pkg/lifecycle"
)

var (
	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken indicates the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid bearer token")
	// ErrUnavailable indicates the identity provider has not been discovered yet.
	ErrUnavailable = errors.New("identity provider unavailable")
)

// Principal identifies the caller of an authenticated request.
type Principal struct {
	Subject string
	Name    string
}

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (Principal, error)
}

// System guards handlers with bearer token verification.
type System interface {
	// Start registers a startup hook that discovers the identity provider.
	Start(lc *lifecycle.Coordinator) error
	// Middleware rejects requests without a valid token and stores the Principal in the context.
	Middleware() func(http.Handler) http.Handler
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the Principal stored by the middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

type oidcSystem struct {
	cfg    *Config
	logger *slog.Logger

	mu       sync.RWMutex
	verifier TokenVerifier
}

// New creates an auth system. When auth is disabled the middleware passes
// every request through without a Principal.
func New(cfg *Config, logger *slog.Logger) System {
	return &oidcSystem{
		cfg:    cfg,
		logger: logger.With("system", "auth"),
	}
}

// NewWithVerifier creates an enabled auth system around an existing verifier.
func NewWithVerifier(v TokenVerifier, logger *slog.Logger) System {
	return &oidcSystem{
		cfg:      &Config{Enabled: true},
		logger:   logger.With("system", "auth"),
		verifier: v,
	}
}

func (s *oidcSystem) Start(lc *lifecycle.Coordinator) error {
	if !s.cfg.Enabled {
		s.logger.Info("auth disabled")
		return nil
	}

	lc.OnStartup(func() {
		provider, err := oidc.NewProvider(lc.Context(), s.cfg.Issuer)
		if err != nil {
			s.logger.Error("identity provider discovery failed", "issuer", s.cfg.Issuer, "error", err)
			return
		}

		v := &idTokenVerifier{
			verifier: provider.Verifier(&oidc.Config{ClientID: s.cfg.ClientID}),
			claim:    s.cfg.ReviewerClaim,
		}

		s.mu.Lock()
		s.verifier = v
		s.mu.Unlock()

		s.logger.Info("identity provider ready", "issuer", s.cfg.Issuer)
	})

	return nil
}

func (s *oidcSystem) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			s.mu.RLock()
			v := s.verifier
			s.mu.RUnlock()

			if v == nil {
				handlers.RespondError(w, s.logger, http.StatusServiceUnavailable, ErrUnavailable)
				return
			}

			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondError(w, s.logger, http.StatusUnauthorized, ErrMissingToken)
				return
			}

			p, err := v.Verify(r.Context(), raw)
			if err != nil {
				s.logger.Warn("token verification failed", "error", err)
				handlers.RespondError(w, s.logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

type idTokenVerifier struct {
	verifier *oidc.IDTokenVerifier
	claim    string
}

// NewKeySetVerifier builds a TokenVerifier from a static key set, for issuers
// that do not publish a discovery document.
func NewKeySetVerifier(issuer, clientID, claim string, keys oidc.KeySet) TokenVerifier {
	return &idTokenVerifier{
		verifier: oidc.NewVerifier(issuer, keys, &oidc.Config{ClientID: clientID}),
		claim:    claim,
	}
}

func (v *idTokenVerifier) Verify(ctx context.Context, raw string) (Principal, error) {
	token, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return Principal{}, fmt.Errorf("verify id token: %w", err)
	}

	var claims map[string]any
	if err := token.Claims(&claims); err != nil {
		return Principal{}, fmt.Errorf("decode claims: %w", err)
	}

	p := Principal{Subject: token.Subject, Name: token.Subject}
	if name, ok := claims[v.claim].(string); ok && name != "" {
		p.Name = name
	}
	return p, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
