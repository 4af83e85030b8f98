//go:build unit

package usecase_test

import (
	"context"
	"testing"

	"webstore-service/internal/domain/user"
	"webstore-service/internal/pkg/authctx"
	"webstore-service/internal/usecase"
	usecasemock "webstore-service/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthenticatedUser(t *testing.T) {
	userID := uuid.New()
	claimsCtx := func() context.Context {
		return authctx.WithIdentity(context.Background(), authctx.Identity{
			UserID:   userID,
			Username: "reader",
			Role:     user.RoleUser.String(),
		})
	}

	t.Run("resolves the caller from the identity service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := usecasemock.NewMockIdentityClient(ctrl)
		client.EXPECT().UserByUsername(gomock.Any(), "reader").Return(&usecase.IdentityUser{
			ID:       userID,
			Username: "reader",
			Role:     user.RoleUser.String(),
		}, nil)

		svc := usecase.NewUserService(client)
		identity, err := svc.AuthenticatedUser(claimsCtx())
		require.NoError(t, err)
		assert.Equal(t, userID, identity.ID())
		assert.Equal(t, "reader", identity.Username())
		assert.Equal(t, user.RoleUser, identity.Role())
	})

	t.Run("no claims in context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := usecase.NewUserService(usecasemock.NewMockIdentityClient(ctrl))

		_, err := svc.AuthenticatedUser(context.Background())
		require.ErrorIs(t, err, usecase.ErrNotAuthenticated)
	})

	t.Run("account removed since the token was issued", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := usecasemock.NewMockIdentityClient(ctrl)
		client.EXPECT().UserByUsername(gomock.Any(), "reader").Return(nil, usecase.ErrIdentityUserNotFound)

		svc := usecase.NewUserService(client)
		_, err := svc.AuthenticatedUser(claimsCtx())
		require.ErrorIs(t, err, usecase.ErrNotAuthenticated)
	})

	t.Run("identity service down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := usecasemock.NewMockIdentityClient(ctrl)
		client.EXPECT().UserByUsername(gomock.Any(), "reader").Return(nil, usecase.ErrIdentityUnavailable)

		svc := usecase.NewUserService(client)
		_, err := svc.AuthenticatedUser(claimsCtx())
		require.ErrorIs(t, err, usecase.ErrIdentityUnavailable)
	})

	t.Run("unknown remote role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := usecasemock.NewMockIdentityClient(ctrl)
		client.EXPECT().UserByUsername(gomock.Any(), "reader").Return(&usecase.IdentityUser{
			ID:       userID,
			Username: "reader",
			Role:     "superuser",
		}, nil)

		svc := usecase.NewUserService(client)
		_, err := svc.AuthenticatedUser(claimsCtx())
		require.ErrorIs(t, err, usecase.ErrNotAuthenticated)
	})
}
