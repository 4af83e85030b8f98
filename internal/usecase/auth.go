package usecase

import (
	"context"

	"webstore-service/internal/pkg/errs"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUsernameTaken      = errs.New("username already taken")
)

// AuthCommands proxies registration and login to the identity service.
// No credentials are stored or verified locally.
type AuthCommands interface {
	Register(ctx context.Context, username, password string) (*AuthPayload, error)
	Login(ctx context.Context, username, password string) (*AuthPayload, error)
}

type authUseCaseImpl struct {
	identity IdentityClient
}

func NewAuthUseCase(identity IdentityClient) AuthCommands {
	return &authUseCaseImpl{identity: identity}
}

func (u *authUseCaseImpl) Register(ctx context.Context, username, password string) (*AuthPayload, error) {
	return u.identity.Register(ctx, username, password)
}

func (u *authUseCaseImpl) Login(ctx context.Context, username, password string) (*AuthPayload, error) {
	return u.identity.Login(ctx, username, password)
}
