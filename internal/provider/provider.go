package provider

import (
	"context"
	"errors"
)

// FullNameField is the metadata key carrying the display name for
// password-based signups.
const FullNameField = "full_name"

// ErrInvalidCredentials marks a sign-in rejected by the provider for a
// wrong email/password pair, as opposed to a backend fault.
var ErrInvalidCredentials = errors.New("invalid credentials")

// IdentityProvider is the boundary to the external system of record for
// accounts, credentials, and sessions. Implementations return identity
// facts only; normalization and auth decisions happen in the caller.
type IdentityProvider interface {
	// CreateAccount registers a new account, attaching metadata to it.
	CreateAccount(ctx context.Context, email, password string, metadata map[string]any) (*RawUser, error)

	// SignIn authenticates with email/password and returns the account
	// plus its issued session. A rejection for bad credentials is
	// reported as ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (*RawUser, *RawSession, error)

	// SignOut revokes the session behind the access token.
	SignOut(ctx context.Context, accessToken string) error

	// SendPasswordReset triggers a reset email for the account.
	SendPasswordReset(ctx context.Context, email string) error

	// GetCurrentUser resolves the account behind a live access token.
	// Any failure means the session is no longer valid.
	GetCurrentUser(ctx context.Context, accessToken string) (*RawUser, error)

	// BeginOAuth builds the authorization URL for the named social
	// provider. PKCE verifier handling is owned by the provider; this
	// layer only forwards the redirect target.
	BeginOAuth(providerName, redirectURL string) (string, error)

	// ExchangeOAuthCode trades an authorization code for an account and
	// session.
	ExchangeOAuthCode(ctx context.Context, code, redirectURL string) (*RawUser, *RawSession, error)
}
