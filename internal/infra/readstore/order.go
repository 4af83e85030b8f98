package readstore

import (
	"context"

	"webstore-service/internal/infra"
	"webstore-service/internal/infra/db"
	"webstore-service/internal/pkg/pgconv"
	"webstore-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	findCartByUserSQL = `
		SELECT order_id, user_uuid, status
		FROM orders
		WHERE user_uuid = $1 AND status = 'IN_CART'`

	findOrderByIDSQL = `
		SELECT order_id, user_uuid, order_date, status
		FROM orders
		WHERE order_id = $1`

	findCompletedOrderSQL = `
		SELECT order_id, user_uuid, order_date, status
		FROM orders
		WHERE order_id = $1 AND user_uuid = $2 AND status = 'COMPLETED'`

	findOrderBooksSQL = `
		SELECT b.book_id, b.title, b.price
		FROM orders_books ob
		JOIN books b ON b.book_id = ob.book_id
		WHERE ob.order_id = $1
		ORDER BY b.book_id`
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (s *OrderReadStore) FindCartByUser(ctx context.Context, userID uuid.UUID) (*queries.CartView, error) {
	var (
		orderID int64
		pgUser  pgtype.UUID
		status  string
	)
	err := s.db.QueryRow(ctx, findCartByUserSQL, pgconv.UUIDToPgtype(userID)).Scan(&orderID, &pgUser, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cart by user", err)
	}

	books, err := s.findOrderBooks(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, b := range books {
		total += b.Price
	}

	return &queries.CartView{
		OrderID:    &orderID,
		UserID:     pgconv.UUIDFromPgtype(pgUser),
		Status:     status,
		Books:      books,
		TotalPrice: total,
	}, nil
}

func (s *OrderReadStore) FindByID(ctx context.Context, orderID int64) (*queries.OrderView, error) {
	return s.findOrderView(ctx, findOrderByIDSQL, orderID)
}

func (s *OrderReadStore) FindCompletedByIDAndUser(ctx context.Context, orderID int64, userID uuid.UUID) (*queries.OrderView, error) {
	return s.findOrderView(ctx, findCompletedOrderSQL, orderID, pgconv.UUIDToPgtype(userID))
}

func (s *OrderReadStore) findOrderView(ctx context.Context, sql string, args ...any) (*queries.OrderView, error) {
	var (
		id        int64
		pgUser    pgtype.UUID
		orderDate pgtype.Timestamptz
		status    string
	)
	err := s.db.QueryRow(ctx, sql, args...).Scan(&id, &pgUser, &orderDate, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	books, err := s.findOrderBooks(ctx, id)
	if err != nil {
		return nil, err
	}

	return &queries.OrderView{
		ID:        id,
		UserID:    pgconv.UUIDFromPgtype(pgUser),
		OrderDate: pgconv.TimePtrFromPgtype(orderDate),
		Status:    status,
		Books:     books,
	}, nil
}

func (s *OrderReadStore) findOrderBooks(ctx context.Context, orderID int64) ([]queries.CartBookView, error) {
	rows, err := s.db.Query(ctx, findOrderBooksSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order books", err)
	}
	defer rows.Close()

	books := make([]queries.CartBookView, 0)
	for rows.Next() {
		var (
			b     queries.CartBookView
			price pgtype.Numeric
		)
		if err := rows.Scan(&b.ID, &b.Title, &price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order book row", err)
		}
		b.Price, err = pgconv.Float64FromNumeric(price)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert book price", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order book rows", err)
	}
	return books, nil
}
