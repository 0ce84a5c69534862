package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/provider"
)

const authPath = "/auth/v1"

// Client talks to a Supabase/GoTrue auth endpoint over REST. It returns
// raw provider payloads; normalization happens in the service layer.
// Safe for concurrent use: all fields are read-only after construction.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

// NewClient builds the provider client from configuration.
func NewClient(cfg config.ProviderConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout()},
		log:     logger,
	}
}

// apiError is a non-2xx provider response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.Status, e.Message)
}

// errorBody covers the message field variants GoTrue uses across
// endpoints and versions.
type errorBody struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (b errorBody) text() string {
	switch {
	case b.ErrorDescription != "":
		return b.ErrorDescription
	case b.Msg != "":
		return b.Msg
	case b.Message != "":
		return b.Message
	case b.Error != "":
		return b.Error
	}
	return "unknown error"
}

// CreateAccount registers a new account with attached metadata.
func (c *Client) CreateAccount(ctx context.Context, email, password string, metadata map[string]any) (*provider.RawUser, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}
	if len(metadata) > 0 {
		body["data"] = metadata
	}

	raw, err := c.do(ctx, http.MethodPost, "/signup", "", body)
	if err != nil {
		return nil, err
	}

	user, _, err := decodeAuthEnvelope(raw)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn performs the password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (*provider.RawUser, *provider.RawSession, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}

	raw, err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", body)
	if err != nil {
		if isCredentialRejection(err) {
			return nil, nil, fmt.Errorf("%w: %v", provider.ErrInvalidCredentials, err)
		}
		return nil, nil, err
	}

	return decodeAuthEnvelope(raw)
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", accessToken, nil)
	return err
}

// SendPasswordReset triggers a recovery email.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/recover", "", map[string]any{"email": email})
	return err
}

// GetCurrentUser resolves the account behind a live access token.
func (c *Client) GetCurrentUser(ctx context.Context, accessToken string) (*provider.RawUser, error) {
	raw, err := c.do(ctx, http.MethodGet, "/user", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var user provider.RawUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode user payload: %w", err)
	}
	if user.ID == "" {
		return nil, &apiError{Status: http.StatusUnauthorized, Message: "no user for token"}
	}
	return &user, nil
}

// BeginOAuth builds the provider authorization URL. The provider owns
// PKCE verifier generation and storage, so no network call is made here.
func (c *Client) BeginOAuth(providerName, redirectURL string) (string, error) {
	q := url.Values{}
	q.Set("provider", providerName)
	if redirectURL != "" {
		q.Set("redirect_to", redirectURL)
	}
	return c.baseURL + authPath + "/authorize?" + q.Encode(), nil
}

// ExchangeOAuthCode trades an authorization code for a session. The
// provider resolves the stored PKCE verifier from the redirect target.
func (c *Client) ExchangeOAuthCode(ctx context.Context, code, redirectURL string) (*provider.RawUser, *provider.RawSession, error) {
	body := map[string]any{
		"auth_code":   code,
		"redirect_to": redirectURL,
	}

	raw, err := c.do(ctx, http.MethodPost, "/token?grant_type=pkce", "", body)
	if err != nil {
		return nil, nil, err
	}

	return decodeAuthEnvelope(raw)
}

// do performs one provider request. The caller's ctx carries the request
// deadline; no retries are attempted.
func (c *Client) do(ctx context.Context, method, path, accessToken string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+authPath+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(payload, &eb)
		c.log.Warn("provider request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &apiError{Status: resp.StatusCode, Message: eb.text()}
	}

	return payload, nil
}

// decodeAuthEnvelope handles the two shapes GoTrue uses for auth
// responses: a session envelope wrapping the user, or a bare user object
// (e.g. signup with email confirmation pending, no session issued).
func decodeAuthEnvelope(data []byte) (*provider.RawUser, *provider.RawSession, error) {
	if len(data) == 0 {
		return nil, nil, nil
	}

	var env struct {
		AccessToken  string            `json:"access_token"`
		RefreshToken string            `json:"refresh_token"`
		TokenType    string            `json:"token_type"`
		ExpiresIn    int64             `json:"expires_in"`
		User         *provider.RawUser `json:"user"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("decode auth payload: %w", err)
	}

	if env.User == nil && env.AccessToken == "" {
		var user provider.RawUser
		if err := json.Unmarshal(data, &user); err != nil {
			return nil, nil, fmt.Errorf("decode auth payload: %w", err)
		}
		if user.ID == "" {
			return nil, nil, nil
		}
		return &user, nil, nil
	}

	var session *provider.RawSession
	if env.AccessToken != "" {
		session = &provider.RawSession{
			AccessToken:  env.AccessToken,
			RefreshToken: env.RefreshToken,
			TokenType:    env.TokenType,
			ExpiresIn:    env.ExpiresIn,
		}
	}
	return env.User, session, nil
}

// isCredentialRejection classifies password-grant rejections that mean
// "wrong email or password" rather than a backend fault.
func isCredentialRejection(err error) bool {
	var ae *apiError
	if !errors.As(err, &ae) {
		return false
	}
	switch ae.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity:
		return true
	}
	return false
}
