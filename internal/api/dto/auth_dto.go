package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
	)
}

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// PasswordResetRequest payload for reset emails.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

func (r PasswordResetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// UserResponse is the client-facing identity shape.
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	CreatedAt *time.Time `json:"created_at"`
}

// TokenResponse is the client-facing token shape. Fields default to
// empty strings when no session was issued.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthResponse is the canonical response for every account-lifecycle
// operation.
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

// NewAuthResponse converts a domain result into the wire shape.
func NewAuthResponse(result domain.AuthResult) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:        result.User.ID,
			Email:     result.User.Email,
			FullName:  result.User.FullName,
			CreatedAt: result.User.CreatedAt,
		},
		Token: TokenResponse{
			AccessToken:  result.Token.AccessToken,
			RefreshToken: result.Token.RefreshToken,
			TokenType:    result.Token.TokenType,
		},
	}
}

// OAuthLoginResponse carries the provider authorization URL.
type OAuthLoginResponse struct {
	AuthURL string `json:"auth_url"`
}

// SessionCheckResponse reports a validated session.
type SessionCheckResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id"`
}

// MessageResponse wraps informational success messages.
type MessageResponse struct {
	Message string `json:"message"`
}
