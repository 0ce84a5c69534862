package handlers

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/dto"
	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/service"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

// AuthHandler exposes the account-lifecycle endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("invalid input", validationDetails(err))
	}

	result, err := h.auth.Signup(c.UserContext(), req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewAuthResponse(*result))
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("invalid input", validationDetails(err))
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewAuthResponse(*result))
}

// Logout handles POST /logout. The route is gated, so a missing or dead
// token was already rejected with 401 before any sign-out work.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := auth.TokenFromContext(c)
	if !ok {
		return apperrors.NewInvalidToken()
	}

	if !h.auth.Logout(c.UserContext(), token) {
		return apperrors.NewLogoutFailed()
	}

	return c.JSON(dto.MessageResponse{Message: "logged out successfully"})
}

// ResetPassword handles POST /reset-password. The response is the same
// whether or not the account exists, to prevent enumeration; provider
// failures are logged server-side only.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("invalid input", validationDetails(err))
	}

	_ = h.auth.RequestPasswordReset(c.UserContext(), req.Email)

	return c.JSON(dto.MessageResponse{Message: "password reset email sent"})
}

// SessionCheck handles GET /session-check. Reaching the handler means
// the gate already verified claims and session liveness.
func (h *AuthHandler) SessionCheck(c *fiber.Ctx) error {
	subject, ok := auth.SubjectFromContext(c)
	if !ok {
		return apperrors.NewInvalidToken()
	}

	return c.JSON(dto.SessionCheckResponse{Valid: true, UserID: subject})
}

// Me handles GET /me, resolving the full identity behind the token.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token, ok := auth.TokenFromContext(c)
	if !ok {
		return apperrors.NewInvalidToken()
	}

	identity := h.auth.GetUser(c.UserContext(), token)
	if identity == nil {
		return apperrors.NewSessionExpired()
	}

	return c.JSON(dto.UserResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		FullName:  identity.FullName,
		CreatedAt: identity.CreatedAt,
	})
}

func validationDetails(err error) map[string]any {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return map[string]any{"error": err.Error()}
	}
	details := make(map[string]any, len(verrs))
	for field, ferr := range verrs {
		details[field] = ferr.Error()
	}
	return details
}
