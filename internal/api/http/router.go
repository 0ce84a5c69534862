package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/http/handlers"
	"github.com/spec-kit/auth-gateway/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	OAuth          *handlers.OAuthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Logout and session-check are gated:
// claims verification and the provider liveness check run before the
// handler sees the request.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/signup", cfg.Auth.Signup)
	app.Post("/login", cfg.Auth.Login)
	app.Post("/reset-password", cfg.Auth.ResetPassword)

	app.Get("/oauth/:provider", cfg.OAuth.Login)
	app.Get("/oauth/:provider/callback", cfg.OAuth.Callback)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/logout", cfg.Auth.Logout)
	protected.Get("/session-check", cfg.Auth.SessionCheck)
	protected.Get("/me", cfg.Auth.Me)
}
