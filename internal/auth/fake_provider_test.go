package auth

import (
	"context"
	"errors"

	"github.com/spec-kit/auth-gateway/internal/provider"
)

// fakeProvider stubs the identity provider for gate and liveness tests.
type fakeProvider struct {
	currentUser    *provider.RawUser
	currentUserErr error
	getUserCalls   int
}

func (f *fakeProvider) CreateAccount(context.Context, string, string, map[string]any) (*provider.RawUser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) SignIn(context.Context, string, string) (*provider.RawUser, *provider.RawSession, error) {
	return nil, nil, errors.New("not implemented")
}

func (f *fakeProvider) SignOut(context.Context, string) error {
	return errors.New("not implemented")
}

func (f *fakeProvider) SendPasswordReset(context.Context, string) error {
	return errors.New("not implemented")
}

func (f *fakeProvider) GetCurrentUser(context.Context, string) (*provider.RawUser, error) {
	f.getUserCalls++
	return f.currentUser, f.currentUserErr
}

func (f *fakeProvider) BeginOAuth(string, string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeProvider) ExchangeOAuthCode(context.Context, string, string) (*provider.RawUser, *provider.RawSession, error) {
	return nil, nil, errors.New("not implemented")
}
