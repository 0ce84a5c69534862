package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/dto"
	"github.com/spec-kit/auth-gateway/internal/service"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

// OAuthHandler exposes the social-login endpoints. PKCE handling is
// owned by the identity provider; these routes only forward the redirect
// target and the authorization code.
type OAuthHandler struct {
	auth *service.AuthService
}

// NewOAuthHandler constructs handler.
func NewOAuthHandler(authService *service.AuthService) *OAuthHandler {
	return &OAuthHandler{auth: authService}
}

// Login handles GET /oauth/:provider.
func (h *OAuthHandler) Login(c *fiber.Ctx) error {
	providerName := c.Params("provider")
	redirectURL := c.Query("redirect_url")
	if redirectURL == "" {
		return apperrors.NewValidationError("redirect_url is required", nil)
	}

	authURL, err := h.auth.OAuthLogin(c.UserContext(), providerName, redirectURL)
	if err != nil {
		return err
	}

	return c.JSON(dto.OAuthLoginResponse{AuthURL: authURL})
}

// Callback handles GET /oauth/:provider/callback.
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	providerName := c.Params("provider")
	code := c.Query("code")
	if code == "" {
		return apperrors.NewValidationError("code is required", nil)
	}
	redirectURL := c.Query("redirect_url")

	result, err := h.auth.OAuthCallback(c.UserContext(), providerName, code, redirectURL)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewAuthResponse(*result))
}
