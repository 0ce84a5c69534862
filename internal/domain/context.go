package domain

import "context"

// Unexported, collision-proof context keys.
type clientIPKeyType struct{}
type subjectKeyType struct{}

var (
	clientIPKey = clientIPKeyType{}
	subjectKey  = subjectKeyType{}
)

// WithClientIP attaches the caller address to the request context so the
// audit trail can record it without widening service signatures.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFromContext extracts the caller address, if attached.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// WithSubject attaches the authenticated subject id to the context.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromContext extracts the authenticated subject id, if attached.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}
