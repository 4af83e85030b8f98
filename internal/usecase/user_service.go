package usecase

import (
	"context"
	"errors"

	"webstore-service/internal/domain/user"
	"webstore-service/internal/pkg/authctx"
	"webstore-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotAuthenticated     = errs.New("not authenticated")
	ErrIdentityUserNotFound = errs.New("identity user not found")
	ErrIdentityUnavailable  = errs.New("identity service unavailable")
)

// IdentityUser is the account record owned by the identity service.
type IdentityUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// AuthPayload relays the identity service's token response unchanged.
type AuthPayload struct {
	Token string `json:"token"`
}

// IdentityClient talks to the external identity service. Implementations
// forward the caller's bearer token from the request context.
type IdentityClient interface {
	UserByUsername(ctx context.Context, username string) (*IdentityUser, error)
	UserByID(ctx context.Context, id uuid.UUID) (*IdentityUser, error)
	Register(ctx context.Context, username, password string) (*AuthPayload, error)
	Login(ctx context.Context, username, password string) (*AuthPayload, error)
}

// UserService resolves the caller behind the current request. Claims
// come from the validated token; the account itself is re-read from the
// identity service so revoked users are rejected immediately.
type UserService interface {
	AuthenticatedUser(ctx context.Context) (*user.Identity, error)
}

type userServiceImpl struct {
	identity IdentityClient
}

func NewUserService(identity IdentityClient) UserService {
	return &userServiceImpl{identity: identity}
}

func (s *userServiceImpl) AuthenticatedUser(ctx context.Context) (*user.Identity, error) {
	claims, ok := authctx.IdentityFrom(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	remote, err := s.identity.UserByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, ErrIdentityUserNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	role, err := user.NewRole(remote.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrNotAuthenticated)
	}

	identity, err := user.NewIdentity(remote.ID, remote.Username, role)
	if err != nil {
		return nil, errs.Mark(err, ErrNotAuthenticated)
	}
	return identity, nil
}
