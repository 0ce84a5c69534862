package domain

import "time"

// TokenTypeBearer is the only token type issued through this gateway.
const TokenTypeBearer = "bearer"

// Identity is the normalized view of a provider account.
// FullName is best-effort: it comes from provider-controlled metadata and
// degrades to an empty string when the metadata is absent or malformed.
type Identity struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt *time.Time
}

// SessionTokens carries the bearer credentials issued by the provider.
// When no session was issued the token fields are empty strings.
type SessionTokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// EmptySessionTokens returns the documented default token block.
func EmptySessionTokens() SessionTokens {
	return SessionTokens{TokenType: TokenTypeBearer}
}

// AuthResult is the single canonical shape returned by every
// account-lifecycle operation. It is always structurally complete.
type AuthResult struct {
	User  Identity
	Token SessionTokens
}
