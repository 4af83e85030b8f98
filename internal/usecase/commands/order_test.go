//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"webstore-service/internal/domain/order"
	"webstore-service/internal/infra"
	"webstore-service/internal/pkg/clock"
	"webstore-service/internal/usecase/commands"
	"webstore-service/internal/usecase/queries"
	"webstore-service/internal/usecase/shared"
	commandsmock "webstore-service/tests/mock/commands"
	queriesmock "webstore-service/tests/mock/queries"
	sharedmock "webstore-service/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var confirmedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type orderFixture struct {
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	reads     *sharedmock.MockCommandReads
	orders    *sharedmock.MockOrderRepository
	publisher *commandsmock.MockOrderEventPublisher
	queries   *queriesmock.MockOrderQueries
	clock     *clock.MockClock
	uc        commands.OrderCommands
}

func newOrderFixture(t *testing.T) *orderFixture {
	ctrl := gomock.NewController(t)

	f := &orderFixture{
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		reads:     sharedmock.NewMockCommandReads(ctrl),
		orders:    sharedmock.NewMockOrderRepository(ctrl),
		publisher: commandsmock.NewMockOrderEventPublisher(ctrl),
		queries:   queriesmock.NewMockOrderQueries(ctrl),
		clock:     clock.NewMockClock(confirmedAt),
	}

	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().Orders().Return(f.orders).AnyTimes()
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		},
	).AnyTimes()

	f.uc = commands.NewOrderUseCase(f.uow, f.publisher, f.queries, f.clock)
	return f
}

func notFoundErr() error {
	return infra.WrapRepoErr("no rows", errors.New("no rows in result set"), infra.KindNotFound)
}

func duplicateErr() error {
	return infra.WrapRepoErr("duplicate key", errors.New("unique violation"), infra.KindDuplicateKey)
}

func bookSnapshot(id int64) *shared.BookSnapshot {
	return &shared.BookSnapshot{ID: id, Title: "book", AuthorID: 1, GenreID: 1, Price: 9.99, ISBN: "isbn", PageCount: 100}
}

func cartSnapshot(userID uuid.UUID, bookIDs ...int64) *shared.OrderSnapshot {
	return &shared.OrderSnapshot{ID: 42, UserID: userID, Status: order.StatusInCart.String(), BookIDs: bookIDs}
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("adds book to existing cart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(2)).Return(bookSnapshot(2), nil)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID, 1), nil)
		f.orders.EXPECT().AddBook(ctx, int64(42), int64(2)).Return(nil)

		require.NoError(t, f.uc.AddToCart(ctx, userID, 2))
	})

	t.Run("creates cart on first add", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(bookSnapshot(1), nil)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(nil, notFoundErr())
		f.orders.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, o *order.Order) (int64, error) {
				assert.Equal(t, userID, o.UserID())
				assert.Equal(t, []int64{1}, o.BookIDs())
				return 42, nil
			},
		)

		require.NoError(t, f.uc.AddToCart(ctx, userID, 1))
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(99)).Return(nil, notFoundErr())

		require.ErrorIs(t, f.uc.AddToCart(ctx, userID, 99), commands.ErrBookNotFound)
	})

	t.Run("soft deleted book behaves as missing", func(t *testing.T) {
		f := newOrderFixture(t)
		snap := bookSnapshot(1)
		snap.Deleted = true
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(snap, nil)

		require.ErrorIs(t, f.uc.AddToCart(ctx, userID, 1), commands.ErrBookNotFound)
	})

	t.Run("duplicate book in cart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(bookSnapshot(1), nil)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID, 1), nil)

		require.ErrorIs(t, f.uc.AddToCart(ctx, userID, 1), commands.ErrBookAlreadyInCart)
	})

	t.Run("concurrent cart creation retries and lands in existing cart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(bookSnapshot(1), nil).Times(2)

		// First attempt loses the race on the cart insert; the retry
		// finds the winner's cart.
		first := f.reads.EXPECT().CartByUser(ctx, userID).Return(nil, notFoundErr())
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID, 7), nil).After(first)
		f.orders.EXPECT().Create(ctx, gomock.Any()).Return(int64(0), duplicateErr())
		f.orders.EXPECT().AddBook(ctx, int64(42), int64(1)).Return(nil)

		require.NoError(t, f.uc.AddToCart(ctx, userID, 1))
	})
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("removes one of several books", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(bookSnapshot(1), nil)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID, 1, 2), nil)
		f.orders.EXPECT().RemoveBook(ctx, int64(42), int64(1)).Return(nil)

		require.NoError(t, f.uc.RemoveFromCart(ctx, userID, 1))
	})

	t.Run("removing the last book deletes the cart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(bookSnapshot(1), nil)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID, 1), nil)
		f.orders.EXPECT().Delete(ctx, int64(42)).Return(nil)

		require.NoError(t, f.uc.RemoveFromCart(ctx, userID, 1))
	})

	t.Run("book not in cart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(3)).Return(bookSnapshot(3), nil)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID, 1), nil)

		require.ErrorIs(t, f.uc.RemoveFromCart(ctx, userID, 3), commands.ErrBookNotInCart)
	})

	t.Run("no cart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(1)).Return(bookSnapshot(1), nil)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(nil, notFoundErr())

		require.ErrorIs(t, f.uc.RemoveFromCart(ctx, userID, 1), commands.ErrCartNotFound)
	})
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deletes the cart with everything in it", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID, 1, 2, 3), nil)
		f.orders.EXPECT().Delete(ctx, int64(42)).Return(nil)

		require.NoError(t, f.uc.ClearCart(ctx, userID))
	})

	t.Run("no cart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(nil, notFoundErr())

		require.ErrorIs(t, f.uc.ClearCart(ctx, userID), commands.ErrCartNotFound)
	})
}

func TestConfirmOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	confirmedView := func() *queries.OrderView {
		d := confirmedAt
		return &queries.OrderView{
			ID:        42,
			UserID:    userID,
			OrderDate: &d,
			Status:    order.StatusCompleted.String(),
			Books: []queries.CartBookView{
				{ID: 1, Title: "book", Price: 9.99},
				{ID: 2, Title: "book", Price: 9.99},
			},
		}
	}

	t.Run("completes the cart and publishes the event", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID, 1, 2), nil)
		f.orders.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, o *order.Order) error {
				assert.Equal(t, order.StatusCompleted, o.Status())
				require.NotNil(t, o.OrderDate())
				assert.Equal(t, confirmedAt, *o.OrderDate())
				return nil
			},
		)
		f.queries.EXPECT().GetByID(ctx, int64(42)).Return(confirmedView(), nil)
		f.publisher.EXPECT().PublishOrderConfirmed(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, event commands.OrderConfirmedEvent) error {
				assert.Equal(t, int64(42), event.OrderID)
				assert.Equal(t, userID, event.UserID)
				assert.Equal(t, confirmedAt, event.OrderDate)
				assert.Equal(t, []int64{1, 2}, event.BookIDs)
				return nil
			},
		).Times(1)

		view, err := f.uc.ConfirmOrder(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted.String(), view.Status)
	})

	t.Run("publish failure does not undo the confirmation", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID, 1, 2), nil)
		f.orders.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		f.queries.EXPECT().GetByID(ctx, int64(42)).Return(confirmedView(), nil)
		f.publisher.EXPECT().PublishOrderConfirmed(ctx, gomock.Any()).Return(errors.New("broker down"))

		view, err := f.uc.ConfirmOrder(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, view)
	})

	t.Run("no cart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(nil, notFoundErr())

		_, err := f.uc.ConfirmOrder(ctx, userID)
		require.ErrorIs(t, err, commands.ErrCartNotFound)
	})

	t.Run("empty cart snapshot cannot confirm", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().CartByUser(ctx, userID).Return(cartSnapshot(userID), nil)

		_, err := f.uc.ConfirmOrder(ctx, userID)
		require.ErrorIs(t, err, commands.ErrEmptyCart)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	completedSnapshot := func(at time.Time) *shared.OrderSnapshot {
		d := at
		return &shared.OrderSnapshot{
			ID:        42,
			UserID:    userID,
			OrderDate: &d,
			Status:    order.StatusCompleted.String(),
			BookIDs:   []int64{1, 2},
		}
	}

	t.Run("cancels within the window", func(t *testing.T) {
		f := newOrderFixture(t)
		f.clock.Set(confirmedAt.Add(30 * time.Hour))
		f.reads.EXPECT().CompletedOrderByIDAndUser(ctx, int64(42), userID).Return(completedSnapshot(confirmedAt), nil)
		f.orders.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, o *order.Order) error {
				assert.Equal(t, order.StatusCancelled, o.Status())
				return nil
			},
		)

		require.NoError(t, f.uc.CancelOrder(ctx, userID, 42))
	})

	t.Run("window passed", func(t *testing.T) {
		f := newOrderFixture(t)
		f.clock.Set(confirmedAt.Add(49 * time.Hour))
		f.reads.EXPECT().CompletedOrderByIDAndUser(ctx, int64(42), userID).Return(completedSnapshot(confirmedAt), nil)

		require.ErrorIs(t, f.uc.CancelOrder(ctx, userID, 42), commands.ErrCancellationExpired)
	})

	t.Run("order of another user is invisible", func(t *testing.T) {
		f := newOrderFixture(t)
		f.reads.EXPECT().CompletedOrderByIDAndUser(ctx, int64(42), userID).Return(nil, notFoundErr())

		require.ErrorIs(t, f.uc.CancelOrder(ctx, userID, 42), commands.ErrOrderNotFound)
	})
}
