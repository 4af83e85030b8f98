package queries

import (
	"context"

	"webstore-service/internal/infra"

	"github.com/google/uuid"
)

type OrderQueries interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
	GetByID(ctx context.Context, orderID int64) (*OrderView, error)
}

type OrderViewRepo interface {
	FindCartByUser(ctx context.Context, userID uuid.UUID) (*CartView, error)
	FindByID(ctx context.Context, orderID int64) (*OrderView, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

// GetCart never fails on a missing cart: a user who has not added
// anything simply sees an empty, unsaved cart.
func (q *orderQueriesImpl) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	view, err := q.repo.FindCartByUser(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return emptyCart(userID), nil
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, orderID int64) (*OrderView, error) {
	return q.repo.FindByID(ctx, orderID)
}

func emptyCart(userID uuid.UUID) *CartView {
	return &CartView{
		UserID: userID,
		Status: "IN_CART",
		Books:  []CartBookView{},
	}
}
