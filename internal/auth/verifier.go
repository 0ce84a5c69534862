package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/config"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

// TokenClaims is the verified claim set of an inbound bearer token.
type TokenClaims struct {
	Subject   string
	Audience  string
	ExpiresAt time.Time
	IssuedAt  time.Time
	Raw       jwt.MapClaims
}

// Verifier performs stateless cryptographic verification of bearer
// tokens issued by the identity provider. It does no I/O and is safe to
// call on every request.
type Verifier struct {
	secret   []byte
	audience string
	log      *zap.Logger
}

// NewVerifier builds a verifier from configuration.
func NewVerifier(cfg config.VerifierConfig, logger *zap.Logger) *Verifier {
	return &Verifier{
		secret:   []byte(cfg.JWTSecret),
		audience: cfg.Audience,
		log:      logger,
	}
}

// Verify enforces signature, expiry, audience, and subject presence in
// one pass. The distinguishing failure reason is logged but collapsed to
// a single opaque invalid-token error externally, so callers cannot be
// used as a verification oracle.
func (v *Verifier) Verify(tokenStr string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		v.log.Warn("token verification failed", zap.String("reason", failureReason(err)))
		return nil, apperrors.NewInvalidToken()
	}
	if !parsed.Valid {
		v.log.Warn("token verification failed", zap.String("reason", "token not valid"))
		return nil, apperrors.NewInvalidToken()
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		v.log.Warn("token verification failed", zap.String("reason", "missing subject claim"))
		return nil, apperrors.NewInvalidToken()
	}

	out := &TokenClaims{Subject: subject, Audience: v.audience, Raw: claims}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}

// failureReason labels verification failures for the logs only.
func failureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed token"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad signature"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return "bad audience"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "missing required claim"
	default:
		return err.Error()
	}
}
