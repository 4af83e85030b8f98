package order

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookAlreadyInCart   = errors.New("book already in cart")
	ErrBookNotInCart       = errors.New("book not in cart")
	ErrNotInCart           = errors.New("order is not in cart state")
	ErrNotCompleted        = errors.New("order is not completed")
	ErrCancellationExpired = errors.New("cancellation window has passed")
	ErrEmptyCart           = errors.New("cart has no books")
)

// cancellationWindowDays is measured in whole elapsed days, fractions
// truncated. An order confirmed exactly 47 hours ago is 1 day old and
// still cancellable; 49 hours is 2 days and is not.
const cancellationWindowDays = 1

// Order is both the user's cart (status IN_CART, no order date) and,
// once confirmed, the purchase record. A user has at most one cart at a
// time; the book set is unordered and duplicate-free.
type Order struct {
	id        int64
	userID    uuid.UUID
	orderDate *time.Time
	status    Status
	bookIDs   map[int64]struct{}
}

// NewCart starts an empty cart for the user. It only becomes visible to
// others once a book is added and it is persisted.
func NewCart(userID uuid.UUID) *Order {
	return &Order{
		userID:  userID,
		status:  StatusInCart,
		bookIDs: make(map[int64]struct{}),
	}
}

func ReconstructOrder(id int64, userID uuid.UUID, orderDate *time.Time, status Status, bookIDs []int64) *Order {
	set := make(map[int64]struct{}, len(bookIDs))
	for _, bid := range bookIDs {
		set[bid] = struct{}{}
	}
	return &Order{
		id:        id,
		userID:    userID,
		orderDate: orderDate,
		status:    status,
		bookIDs:   set,
	}
}

func (o *Order) AddBook(bookID int64) error {
	if o.status != StatusInCart {
		return ErrNotInCart
	}
	if _, ok := o.bookIDs[bookID]; ok {
		return ErrBookAlreadyInCart
	}
	o.bookIDs[bookID] = struct{}{}
	return nil
}

func (o *Order) RemoveBook(bookID int64) error {
	if o.status != StatusInCart {
		return ErrNotInCart
	}
	if _, ok := o.bookIDs[bookID]; !ok {
		return ErrBookNotInCart
	}
	delete(o.bookIDs, bookID)
	return nil
}

func (o *Order) Contains(bookID int64) bool {
	_, ok := o.bookIDs[bookID]
	return ok
}

func (o *Order) IsEmpty() bool {
	return len(o.bookIDs) == 0
}

// Confirm turns the cart into a completed order stamped with the
// confirmation time.
func (o *Order) Confirm(now time.Time) error {
	if !o.status.CanTransitionTo(StatusCompleted) {
		return ErrNotInCart
	}
	if o.IsEmpty() {
		return ErrEmptyCart
	}
	o.status = StatusCompleted
	o.orderDate = &now
	return nil
}

// Cancel is only allowed within the cancellation window after
// confirmation. The book set is kept for history.
func (o *Order) Cancel(now time.Time) error {
	if !o.status.CanTransitionTo(StatusCancelled) {
		return ErrNotCompleted
	}
	if o.orderDate == nil || daysBetween(*o.orderDate, now) > cancellationWindowDays {
		return ErrCancellationExpired
	}
	o.status = StatusCancelled
	return nil
}

func daysBetween(from, to time.Time) int64 {
	return int64(to.Sub(from).Hours() / 24)
}

func (o *Order) ID() int64             { return o.id }
func (o *Order) UserID() uuid.UUID     { return o.userID }
func (o *Order) OrderDate() *time.Time { return o.orderDate }
func (o *Order) Status() Status        { return o.status }

// BookIDs returns the member book ids in ascending order.
func (o *Order) BookIDs() []int64 {
	ids := make([]int64, 0, len(o.bookIDs))
	for id := range o.bookIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
