package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/provider"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

func newGatedApp(idp *fakeProvider) *fiber.App {
	verifier := newTestVerifier()
	liveness := NewLivenessChecker(idp, zap.NewNop())
	mw := NewMiddleware(verifier, liveness)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		}
		return nil
	})
	app.Post("/logout", mw.Handle, func(c *fiber.Ctx) error {
		subject, _ := SubjectFromContext(c)
		return c.JSON(fiber.Map{"user_id": subject})
	})
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestGateRejectsMissingToken(t *testing.T) {
	idp := &fakeProvider{}
	app := newGatedApp(idp)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeInvalidToken, decodeBody(t, resp)["code"])
	assert.Zero(t, idp.getUserCalls, "no provider call for a missing token")
}

func TestGateRejectsEmptyBearer(t *testing.T) {
	idp := &fakeProvider{}
	app := newGatedApp(idp)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeInvalidToken, decodeBody(t, resp)["code"])
	assert.Zero(t, idp.getUserCalls)
}

func TestGateRejectsInvalidTokenBeforeLiveness(t *testing.T) {
	idp := &fakeProvider{}
	app := newGatedApp(idp)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeInvalidToken, decodeBody(t, resp)["code"])
	assert.Zero(t, idp.getUserCalls, "liveness must not run for invalid claims")
}

func TestGateRejectsDeadSession(t *testing.T) {
	idp := &fakeProvider{currentUserErr: errors.New("revoked")}
	app := newGatedApp(idp)

	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims())
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeSessionExpired, decodeBody(t, resp)["code"])
	assert.Equal(t, 1, idp.getUserCalls)
}

func TestGateExposesSubjectToHandler(t *testing.T) {
	idp := &fakeProvider{currentUser: &provider.RawUser{ID: "user-123"}}
	app := newGatedApp(idp)

	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims())
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-123", decodeBody(t, resp)["user_id"])
}

func TestExtractBearer(t *testing.T) {
	assert.Equal(t, "abc", extractBearer("Bearer abc"))
	assert.Equal(t, "abc", extractBearer("bearer abc"))
	assert.Empty(t, extractBearer(""))
	assert.Empty(t, extractBearer("Basic abc"))
	assert.Empty(t, extractBearer("Bearer"))
}
