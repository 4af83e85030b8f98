package commands

import (
	"context"
	"errors"
	"log/slog"

	"webstore-service/internal/domain/order"
	"webstore-service/internal/infra"
	"webstore-service/internal/pkg/clock"
	"webstore-service/internal/pkg/errs"
	"webstore-service/internal/usecase/queries"
	"webstore-service/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound            = errs.New("book not found")
	ErrCartNotFound            = errs.New("cart not found")
	ErrBookAlreadyInCart       = errs.New("book already in cart")
	ErrBookNotInCart           = errs.New("book not in cart")
	ErrOrderNotFound           = errs.New("order not found")
	ErrCancellationExpired     = errs.New("cancellation window has passed")
	ErrEmptyCart               = errs.New("cart is empty")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// errCartRace signals that another request created the user's cart
// between our existence check and insert. The operation is retried in a
// fresh transaction, where the existing cart is picked up.
var errCartRace = errs.New("concurrent cart creation")

type OrderCommands interface {
	AddToCart(ctx context.Context, userID uuid.UUID, bookID int64) error
	RemoveFromCart(ctx context.Context, userID uuid.UUID, bookID int64) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
	ConfirmOrder(ctx context.Context, userID uuid.UUID) (*queries.OrderView, error)
	CancelOrder(ctx context.Context, userID uuid.UUID, orderID int64) error
}

type orderUseCaseImpl struct {
	uow          shared.UnitOfWork
	publisher    OrderEventPublisher
	orderQueries queries.OrderQueries
	clock        clock.Clock
}

func NewOrderUseCase(
	uow shared.UnitOfWork,
	publisher OrderEventPublisher,
	orderQueries queries.OrderQueries,
	clock clock.Clock,
) OrderCommands {
	return &orderUseCaseImpl{
		uow:          uow,
		publisher:    publisher,
		orderQueries: orderQueries,
		clock:        clock,
	}
}

func (u *orderUseCaseImpl) AddToCart(ctx context.Context, userID uuid.UUID, bookID int64) error {
	const maxAttempts = 2

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return u.addToCartTx(ctx, tx, userID, bookID)
		})
		if !errors.Is(err, errCartRace) {
			return err
		}
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func (u *orderUseCaseImpl) addToCartTx(ctx context.Context, tx shared.Tx, userID uuid.UUID, bookID int64) error {
	if err := u.requireBook(ctx, tx, bookID); err != nil {
		return err
	}

	snap, err := tx.Reads().CartByUser(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return u.createCartWithBook(ctx, tx, userID, bookID)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	cart := reconstructFromSnapshot(snap)
	if err := cart.AddBook(bookID); err != nil {
		return errs.Mark(err, ErrBookAlreadyInCart)
	}

	if err := tx.Orders().AddBook(ctx, cart.ID(), bookID); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return ErrBookAlreadyInCart
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *orderUseCaseImpl) createCartWithBook(ctx context.Context, tx shared.Tx, userID uuid.UUID, bookID int64) error {
	cart := order.NewCart(userID)
	if err := cart.AddBook(bookID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if _, err := tx.Orders().Create(ctx, cart); err != nil {
		// The one-cart-per-user index catches the race with a
		// concurrent first add.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errCartRace
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *orderUseCaseImpl) RemoveFromCart(ctx context.Context, userID uuid.UUID, bookID int64) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := u.requireBook(ctx, tx, bookID); err != nil {
			return err
		}

		cart, err := u.requireCart(ctx, tx, userID)
		if err != nil {
			return err
		}

		if err := cart.RemoveBook(bookID); err != nil {
			return errs.Mark(err, ErrBookNotInCart)
		}

		// A cart is never persisted empty.
		if cart.IsEmpty() {
			return u.deleteOrder(ctx, tx, cart.ID())
		}
		if err := tx.Orders().RemoveBook(ctx, cart.ID(), bookID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *orderUseCaseImpl) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cart, err := u.requireCart(ctx, tx, userID)
		if err != nil {
			return err
		}
		return u.deleteOrder(ctx, tx, cart.ID())
	})
}

func (u *orderUseCaseImpl) ConfirmOrder(ctx context.Context, userID uuid.UUID) (*queries.OrderView, error) {
	var orderID int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cart, err := u.requireCart(ctx, tx, userID)
		if err != nil {
			return err
		}

		if err := cart.Confirm(u.clock.Now()); err != nil {
			if errors.Is(err, order.ErrEmptyCart) {
				return ErrEmptyCart
			}
			return errs.Mark(err, ErrCartNotFound)
		}

		if err := tx.Orders().Update(ctx, cart); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		orderID = cart.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: full order view for the response and the event
	view, err := u.orderQueries.GetByID(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	u.publishConfirmed(ctx, view)
	return view, nil
}

// publishConfirmed is best-effort: the confirmation already committed,
// so a broker failure is logged and swallowed.
func (u *orderUseCaseImpl) publishConfirmed(ctx context.Context, view *queries.OrderView) {
	event := OrderConfirmedEvent{
		OrderID: view.ID,
		UserID:  view.UserID,
		BookIDs: make([]int64, 0, len(view.Books)),
	}
	if view.OrderDate != nil {
		event.OrderDate = *view.OrderDate
	}
	for _, b := range view.Books {
		event.BookIDs = append(event.BookIDs, b.ID)
	}

	if err := u.publisher.PublishOrderConfirmed(ctx, event); err != nil {
		slog.Warn("failed to publish order confirmed event",
			"order_id", view.ID,
			"error", err.Error())
	}
}

func (u *orderUseCaseImpl) CancelOrder(ctx context.Context, userID uuid.UUID, orderID int64) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().CompletedOrderByIDAndUser(ctx, orderID, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		o := reconstructFromSnapshot(snap)
		if err := o.Cancel(u.clock.Now()); err != nil {
			if errors.Is(err, order.ErrCancellationExpired) {
				return ErrCancellationExpired
			}
			return errs.Mark(err, ErrOrderNotFound)
		}

		if err := tx.Orders().Update(ctx, o); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *orderUseCaseImpl) requireBook(ctx context.Context, tx shared.Tx, bookID int64) error {
	book, err := tx.Reads().BookByID(ctx, bookID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if book.Deleted {
		return ErrBookNotFound
	}
	return nil
}

func (u *orderUseCaseImpl) requireCart(ctx context.Context, tx shared.Tx, userID uuid.UUID) (*order.Order, error) {
	snap, err := tx.Reads().CartByUser(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return reconstructFromSnapshot(snap), nil
}

func (u *orderUseCaseImpl) deleteOrder(ctx context.Context, tx shared.Tx, orderID int64) error {
	if err := tx.Orders().Delete(ctx, orderID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func reconstructFromSnapshot(snap *shared.OrderSnapshot) *order.Order {
	return order.ReconstructOrder(snap.ID, snap.UserID, snap.OrderDate, order.Status(snap.Status), snap.BookIDs)
}
