package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/domain"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

const (
	subjectKey = "auth_subject"
	tokenKey   = "auth_token"
)

// Middleware gates protected routes: it extracts the bearer token,
// verifies claims locally, then confirms session liveness with the
// provider before exposing the resolved subject to handlers.
type Middleware struct {
	verifier *Verifier
	liveness *LivenessChecker
}

// NewMiddleware constructs the gate.
func NewMiddleware(verifier *Verifier, liveness *LivenessChecker) *Middleware {
	return &Middleware{verifier: verifier, liveness: liveness}
}

// Handle enforces authentication for protected routes. Verification
// order is fixed: claims first (no network), then the provider liveness
// call. An empty or missing token fails before any downstream work.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := extractBearer(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return apperrors.NewInvalidToken()
	}

	claims, err := m.verifier.Verify(token)
	if err != nil {
		return err
	}

	if err := m.liveness.CheckLive(c.UserContext(), token); err != nil {
		return err
	}

	c.SetUserContext(domain.WithSubject(c.UserContext(), claims.Subject))
	c.Locals(subjectKey, claims.Subject)
	c.Locals(tokenKey, token)
	return c.Next()
}

// SubjectFromContext retrieves the authenticated subject id.
func SubjectFromContext(c *fiber.Ctx) (string, bool) {
	subject, ok := c.Locals(subjectKey).(string)
	return subject, ok && subject != ""
}

// TokenFromContext retrieves the validated bearer token.
func TokenFromContext(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(tokenKey).(string)
	return token, ok && token != ""
}

func extractBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
