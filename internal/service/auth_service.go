package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/provider"
	"github.com/spec-kit/auth-gateway/internal/repository"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

// LoginLimiter throttles repeated login attempts. Implementations must
// fail open.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// AuthService orchestrates account-lifecycle operations against the
// identity provider and owns the error taxonomy at that boundary. Every
// operation makes at most one provider call; a failure is final for the
// request, retry policy lives outside this service.
type AuthService struct {
	provider   provider.IdentityProvider
	normalizer *Normalizer
	audit      repository.AuditRepository
	limiter    LoginLimiter
	allowed    map[string]struct{}
	log        *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements. Audit and
// Limiter are optional; a nil value disables the concern.
type AuthDependencies struct {
	Provider provider.IdentityProvider
	Audit    repository.AuditRepository
	Limiter  LoginLimiter
}

// NewAuthService builds the orchestrator.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	allowed := make(map[string]struct{}, len(cfg.OAuth.Providers))
	for _, name := range cfg.OAuth.Providers {
		allowed[name] = struct{}{}
	}
	return &AuthService{
		provider:   deps.Provider,
		normalizer: NewNormalizer(logger),
		audit:      deps.Audit,
		limiter:    deps.Limiter,
		allowed:    allowed,
		log:        logger,
	}
}

// Signup registers a new account with the provider, attaching the full
// name as metadata. Provider faults are collapsed to a registration
// failure carrying the underlying message, never propagated raw.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName string) (*domain.AuthResult, error) {
	metadata := map[string]any{provider.FullNameField: fullName}

	user, err := s.provider.CreateAccount(ctx, email, password, metadata)
	if err != nil {
		s.log.Error("signup failed", zap.Error(err))
		return nil, apperrors.NewRegistrationFailed(err)
	}
	if user == nil {
		return nil, apperrors.NewRegistrationFailed(errors.New("provider returned no user"))
	}

	s.log.Info("user created", zap.String("user_id", user.ID))
	s.recordEvent(ctx, domain.EventSignup, user.ID, email)

	result := s.normalizer.Normalize(user, nil)
	return &result, nil
}

// Login authenticates with email and password. A user without an active
// session is not a valid login. Credential rejections and backend faults
// surface as distinct error kinds, both 401 externally.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if s.limiter != nil && !s.limiter.Allow(ctx, email) {
		s.log.Warn("login throttled", zap.String("email", email))
		return nil, apperrors.NewTooManyRequests("too many login attempts, try again later")
	}

	user, session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.log.Warn("login failed", zap.Error(err))
		s.recordEvent(ctx, domain.EventLoginFailed, "", email)
		if errors.Is(err, provider.ErrInvalidCredentials) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewAuthenticationFailed(err)
	}
	if user == nil || session == nil {
		s.recordEvent(ctx, domain.EventLoginFailed, "", email)
		return nil, apperrors.NewAuthenticationFailed(errors.New("provider returned no session"))
	}

	s.log.Info("user logged in", zap.String("user_id", user.ID))
	s.recordEvent(ctx, domain.EventLogin, user.ID, email)

	result := s.normalizer.Normalize(user, session)
	return &result, nil
}

// Logout tears down the provider session behind the token. It is
// best-effort and never raises: client-side token disposal is the real
// guarantee, server-side teardown is advisory.
func (s *AuthService) Logout(ctx context.Context, token string) bool {
	if err := s.provider.SignOut(ctx, token); err != nil {
		s.log.Error("logout failed", zap.Error(err))
		return false
	}

	subject, _ := domain.SubjectFromContext(ctx)
	s.log.Info("user logged out")
	s.recordEvent(ctx, domain.EventLogout, subject, "")
	return true
}

// RequestPasswordReset asks the provider to send a reset email. Same
// best-effort policy as Logout; the boolean leaks nothing about whether
// the account exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) bool {
	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		s.log.Error("password reset failed", zap.Error(err))
		return false
	}

	s.recordEvent(ctx, domain.EventPasswordReset, "", email)
	return true
}

// GetUser resolves the identity behind a live token. Nil means "not
// authenticated", never a system fault.
func (s *AuthService) GetUser(ctx context.Context, token string) *domain.Identity {
	user, err := s.provider.GetCurrentUser(ctx, token)
	if err != nil || user == nil {
		s.log.Warn("get user failed", zap.Error(err))
		return nil
	}

	identity := s.normalizer.Normalize(user, nil).User
	return &identity
}

// OAuthLogin starts the social-login flow for an allow-listed provider
// and returns the URL to redirect the user to. PKCE verifier handling is
// delegated entirely to the identity provider.
func (s *AuthService) OAuthLogin(ctx context.Context, providerName, redirectURL string) (string, error) {
	if !s.providerAllowed(providerName) {
		return "", apperrors.NewUnsupportedProvider(providerName)
	}

	authURL, err := s.provider.BeginOAuth(providerName, redirectURL)
	if err != nil {
		s.log.Error("oauth initiate failed", zap.Error(err))
		return "", apperrors.NewOAuthFailed(err)
	}
	return authURL, nil
}

// OAuthCallback exchanges the authorization code for a session. OAuth
// users often carry different metadata shapes than password signups; the
// normalizer absorbs that variability.
func (s *AuthService) OAuthCallback(ctx context.Context, providerName, code, redirectURL string) (*domain.AuthResult, error) {
	if !s.providerAllowed(providerName) {
		return nil, apperrors.NewUnsupportedProvider(providerName)
	}

	user, session, err := s.provider.ExchangeOAuthCode(ctx, code, redirectURL)
	if err != nil {
		s.log.Error("oauth code exchange failed", zap.Error(err))
		return nil, apperrors.NewOAuthFailed(err)
	}
	if user == nil || session == nil {
		return nil, apperrors.NewOAuthFailed(errors.New("code exchange returned no session"))
	}

	s.log.Info("user logged in via oauth",
		zap.String("user_id", user.ID),
		zap.String("provider", providerName),
	)
	s.recordEvent(ctx, domain.EventOAuthLogin, user.ID, user.Email)

	result := s.normalizer.Normalize(user, session)
	return &result, nil
}

func (s *AuthService) providerAllowed(name string) bool {
	_, ok := s.allowed[name]
	return ok
}

// recordEvent appends to the audit trail when one is configured. Audit
// failures are logged and swallowed; they never fail the operation.
func (s *AuthService) recordEvent(ctx context.Context, event domain.AuthEventType, subject, email string) {
	if s.audit == nil {
		return
	}

	ev := &domain.AuthEvent{
		Event:   event,
		Subject: subject,
		Email:   email,
		IP:      domain.ClientIPFromContext(ctx),
	}
	if err := s.audit.Record(ctx, ev); err != nil {
		s.log.Warn("audit record failed", zap.Error(err), zap.String("event", string(event)))
	}
}
