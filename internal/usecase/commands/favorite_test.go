//go:build unit

package commands_test

import (
	"context"
	"testing"

	"webstore-service/internal/usecase/commands"
	"webstore-service/internal/usecase/shared"
	sharedmock "webstore-service/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type favoriteFixture struct {
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	reads     *sharedmock.MockCommandReads
	favorites *sharedmock.MockFavoriteRepository
	uc        commands.FavoriteCommands
}

func newFavoriteFixture(t *testing.T) *favoriteFixture {
	ctrl := gomock.NewController(t)

	f := &favoriteFixture{
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		reads:     sharedmock.NewMockCommandReads(ctrl),
		favorites: sharedmock.NewMockFavoriteRepository(ctrl),
	}

	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().Favorites().Return(f.favorites).AnyTimes()
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		},
	).AnyTimes()

	f.uc = commands.NewFavoriteUseCase(f.uow)
	return f
}

func TestAddFavorite(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("adds an existing book", func(t *testing.T) {
		f := newFavoriteFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(bookSnapshot(1), nil)
		f.favorites.EXPECT().Add(ctx, userID, int64(1)).Return(nil)

		require.NoError(t, f.uc.AddFavorite(ctx, userID, 1))
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newFavoriteFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(nil, notFoundErr())

		require.ErrorIs(t, f.uc.AddFavorite(ctx, userID, 1), commands.ErrBookNotFound)
	})

	t.Run("soft deleted book behaves as missing", func(t *testing.T) {
		f := newFavoriteFixture(t)
		snap := bookSnapshot(1)
		snap.Deleted = true
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(snap, nil)

		require.ErrorIs(t, f.uc.AddFavorite(ctx, userID, 1), commands.ErrBookNotFound)
	})

	t.Run("already a favorite", func(t *testing.T) {
		f := newFavoriteFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(bookSnapshot(1), nil)
		f.favorites.EXPECT().Add(ctx, userID, int64(1)).Return(duplicateErr())

		require.ErrorIs(t, f.uc.AddFavorite(ctx, userID, 1), commands.ErrAlreadyFavorite)
	})
}

func TestRemoveFavorite(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("removes a favorite", func(t *testing.T) {
		f := newFavoriteFixture(t)
		f.favorites.EXPECT().Remove(ctx, userID, int64(1)).Return(nil)

		require.NoError(t, f.uc.RemoveFavorite(ctx, userID, 1))
	})

	t.Run("favorite does not exist", func(t *testing.T) {
		f := newFavoriteFixture(t)
		f.favorites.EXPECT().Remove(ctx, userID, int64(1)).Return(notFoundErr())

		require.ErrorIs(t, f.uc.RemoveFavorite(ctx, userID, 1), commands.ErrFavoriteNotFound)
	})
}
