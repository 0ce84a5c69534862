package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/provider"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

// LivenessChecker confirms a cryptographically valid token still maps to
// an active session at the identity provider. It always runs after the
// Verifier: the cheap local check gates the network round-trip.
type LivenessChecker struct {
	provider provider.IdentityProvider
	log      *zap.Logger
}

// NewLivenessChecker builds the checker.
func NewLivenessChecker(idp provider.IdentityProvider, logger *zap.Logger) *LivenessChecker {
	return &LivenessChecker{provider: idp, log: logger}
}

// CheckLive makes one provider call asking whether the token's session is
// still valid. Any failure (network, revoked session, provider-side
// expiry) collapses to a session-expired error; no retry is attempted.
func (l *LivenessChecker) CheckLive(ctx context.Context, token string) error {
	if _, err := l.provider.GetCurrentUser(ctx, token); err != nil {
		l.log.Warn("session liveness check failed", zap.Error(err))
		return apperrors.NewSessionExpired()
	}
	return nil
}
