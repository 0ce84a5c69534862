package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes of the authentication taxonomy.
const (
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeSessionExpired       = "SESSION_EXPIRED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeRegistrationFailed   = "REGISTRATION_FAILED"
	CodeUnsupportedProvider  = "UNSUPPORTED_PROVIDER"
	CodeOAuthFailed          = "OAUTH_FAILED"
	CodeLogoutFailed         = "LOGOUT_FAILED"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeTooManyRequests      = "TOO_MANY_REQUESTS"
	CodeInternalError        = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewInvalidToken reports a rejected bearer token. The message is fixed:
// the distinguishing reason (signature, expiry, audience, missing subject)
// must never reach the client.
func NewInvalidToken() error {
	return NewDomainError(CodeInvalidToken, "invalid or expired token", http.StatusUnauthorized, nil)
}

// NewSessionExpired reports a failed provider-side liveness check.
func NewSessionExpired() error {
	return NewDomainError(CodeSessionExpired, "session expired", http.StatusUnauthorized, nil)
}

// NewInvalidCredentials reports a login rejected by the provider.
func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "invalid email or password", http.StatusUnauthorized, nil)
}

// NewAuthenticationFailed wraps a login-path provider fault.
func NewAuthenticationFailed(err error) error {
	return &DomainError{
		Code:       CodeAuthenticationFailed,
		Message:    "authentication failed",
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

// NewRegistrationFailed wraps a signup rejection, carrying the underlying
// provider message for diagnosis.
func NewRegistrationFailed(err error) error {
	return &DomainError{
		Code:       CodeRegistrationFailed,
		Message:    "registration failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnsupportedProvider rejects OAuth providers outside the allow-list.
func NewUnsupportedProvider(name string) error {
	return NewDomainError(
		CodeUnsupportedProvider,
		fmt.Sprintf("unsupported oauth provider: %s", name),
		http.StatusBadRequest,
		nil,
	)
}

// NewOAuthFailed wraps an OAuth callback fault.
func NewOAuthFailed(err error) error {
	return &DomainError{
		Code:       CodeOAuthFailed,
		Message:    "oauth authentication failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewLogoutFailed reports a best-effort logout that did not complete.
func NewLogoutFailed() error {
	return NewDomainError(CodeLogoutFailed, "logout failed", http.StatusInternalServerError, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewTooManyRequests(message string) error {
	return NewDomainError(CodeTooManyRequests, message, http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Anything not
// already typed is an uncategorized internal fault, so a raw provider
// error never crosses the HTTP boundary.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

func MapError(err error) error {
	return ToDomainError(err)
}
