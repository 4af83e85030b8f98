package repository

import (
	"context"

	"webstore-service/internal/domain/order"
	"webstore-service/internal/infra"
	"webstore-service/internal/infra/db"
	"webstore-service/internal/pkg/pgconv"
)

const (
	createOrderSQL = `
		INSERT INTO orders (user_uuid, order_date, status)
		VALUES ($1, $2, $3)
		RETURNING order_id`

	insertOrderBookSQL = `
		INSERT INTO orders_books (order_id, book_id)
		VALUES ($1, $2)`

	deleteOrderBookSQL = `
		DELETE FROM orders_books
		WHERE order_id = $1 AND book_id = $2`

	deleteOrderSQL = `
		DELETE FROM orders
		WHERE order_id = $1`

	updateOrderSQL = `
		UPDATE orders
		SET status = $2, order_date = $3
		WHERE order_id = $1`
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, createOrderSQL,
		pgconv.UUIDToPgtype(o.UserID()),
		pgconv.TimePtrToPgtype(o.OrderDate()),
		o.Status().String(),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create order", err)
	}

	for _, bookID := range o.BookIDs() {
		if _, err := r.db.Exec(ctx, insertOrderBookSQL, id, bookID); err != nil {
			return 0, infra.WrapRepoErr("failed to attach book to order", err)
		}
	}
	return id, nil
}

func (r *OrderRepository) AddBook(ctx context.Context, orderID, bookID int64) error {
	if _, err := r.db.Exec(ctx, insertOrderBookSQL, orderID, bookID); err != nil {
		return infra.WrapRepoErr("failed to add book to order", err)
	}
	return nil
}

func (r *OrderRepository) RemoveBook(ctx context.Context, orderID, bookID int64) error {
	tag, err := r.db.Exec(ctx, deleteOrderBookSQL, orderID, bookID)
	if err != nil {
		return infra.WrapRepoErr("failed to remove book from order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not in order", nil, infra.KindNotFound)
	}
	return nil
}

// Delete removes the order row; membership rows go with it via cascade.
func (r *OrderRepository) Delete(ctx context.Context, orderID int64) error {
	tag, err := r.db.Exec(ctx, deleteOrderSQL, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.db.Exec(ctx, updateOrderSQL,
		o.ID(),
		o.Status().String(),
		pgconv.TimePtrToPgtype(o.OrderDate()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
