package domain

import "time"

// AuthEventType labels entries in the audit trail.
type AuthEventType string

const (
	EventSignup        AuthEventType = "SIGNUP"
	EventLogin         AuthEventType = "LOGIN"
	EventLoginFailed   AuthEventType = "LOGIN_FAILED"
	EventLogout        AuthEventType = "LOGOUT"
	EventPasswordReset AuthEventType = "PASSWORD_RESET"
	EventOAuthLogin    AuthEventType = "OAUTH_LOGIN"
)

// AuthEvent records one authentication-path outcome for auditing.
// Subject may be empty when the operation failed before an identity
// was established.
type AuthEvent struct {
	ID        string
	Event     AuthEventType
	Subject   string
	Email     string
	IP        string
	CreatedAt time.Time
}
