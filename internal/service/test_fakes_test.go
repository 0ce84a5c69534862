package service

import (
	"context"
	"errors"

	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/provider"
)

var errNotImplemented = errors.New("not implemented")

// fakeIdentityProvider stubs provider behavior per operation.
type fakeIdentityProvider struct {
	createdUser  *provider.RawUser
	createErr    error
	signInUser   *provider.RawUser
	signInSess   *provider.RawSession
	signInErr    error
	signOutErr   error
	resetErr     error
	currentUser  *provider.RawUser
	currentErr   error
	oauthURL     string
	oauthURLErr  error
	exchangeUser *provider.RawUser
	exchangeSess *provider.RawSession
	exchangeErr  error

	createMetadata map[string]any
	signOutCalls   int
}

func (f *fakeIdentityProvider) CreateAccount(_ context.Context, _, _ string, metadata map[string]any) (*provider.RawUser, error) {
	f.createMetadata = metadata
	return f.createdUser, f.createErr
}

func (f *fakeIdentityProvider) SignIn(context.Context, string, string) (*provider.RawUser, *provider.RawSession, error) {
	return f.signInUser, f.signInSess, f.signInErr
}

func (f *fakeIdentityProvider) SignOut(context.Context, string) error {
	f.signOutCalls++
	return f.signOutErr
}

func (f *fakeIdentityProvider) SendPasswordReset(context.Context, string) error {
	return f.resetErr
}

func (f *fakeIdentityProvider) GetCurrentUser(context.Context, string) (*provider.RawUser, error) {
	return f.currentUser, f.currentErr
}

func (f *fakeIdentityProvider) BeginOAuth(string, string) (string, error) {
	return f.oauthURL, f.oauthURLErr
}

func (f *fakeIdentityProvider) ExchangeOAuthCode(context.Context, string, string) (*provider.RawUser, *provider.RawSession, error) {
	return f.exchangeUser, f.exchangeSess, f.exchangeErr
}

// fakeAudit collects recorded events in memory.
type fakeAudit struct {
	events    []domain.AuthEvent
	recordErr error
}

func (f *fakeAudit) Record(_ context.Context, event *domain.AuthEvent) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeAudit) ListBySubject(context.Context, string, int) ([]domain.AuthEvent, error) {
	return nil, errNotImplemented
}

func (f *fakeAudit) eventTypes() []domain.AuthEventType {
	types := make([]domain.AuthEventType, 0, len(f.events))
	for _, ev := range f.events {
		types = append(types, ev.Event)
	}
	return types
}

// fakeLimiter denies once the attempt budget is spent.
type fakeLimiter struct {
	budget int
	calls  int
}

func (f *fakeLimiter) Allow(context.Context, string) bool {
	f.calls++
	return f.calls <= f.budget
}
