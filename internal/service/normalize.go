package service

import (
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/provider"
)

// Normalizer maps heterogeneous provider payloads into the canonical
// AuthResult. It is total: every combination of metadata shape and
// session presence yields a structurally complete result, never an error.
type Normalizer struct {
	log *zap.Logger
}

// NewNormalizer builds a normalizer.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{log: logger}
}

// Normalize converts a raw user and optional session into an AuthResult.
// Missing fields are filled with documented defaults; a nil session or a
// session without an access token yields the empty bearer token block.
func (n *Normalizer) Normalize(user *provider.RawUser, session *provider.RawSession) domain.AuthResult {
	result := domain.AuthResult{Token: domain.EmptySessionTokens()}

	if user != nil {
		result.User = domain.Identity{
			ID:        user.ID,
			Email:     user.Email,
			FullName:  n.fullName(user),
			CreatedAt: user.CreatedAt,
		}
	}

	if session != nil && session.AccessToken != "" {
		result.Token = domain.SessionTokens{
			AccessToken:  session.AccessToken,
			RefreshToken: session.RefreshToken,
			TokenType:    domain.TokenTypeBearer,
		}
	}

	return result
}

// fullName prefers the pre-extracted top-level field and falls back to
// the metadata mapping. A plain-string metadata block is a malformed
// provider response: it is logged and treated as empty rather than
// failing the request.
func (n *Normalizer) fullName(user *provider.RawUser) string {
	if user.FullName != "" {
		return user.FullName
	}

	switch user.Metadata.Kind {
	case provider.MetadataMapping:
		return user.Metadata.StringValue(provider.FullNameField)
	case provider.MetadataString:
		n.log.Warn("user metadata is a string instead of a mapping",
			zap.String("user_id", user.ID),
		)
		return ""
	default:
		return ""
	}
}
