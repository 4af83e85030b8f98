package shared

import (
	"context"

	"webstore-service/internal/domain/book"
	"webstore-service/internal/domain/order"
	"webstore-service/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Books() BookRepository
	Favorites() FavoriteRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	CartByUser(ctx context.Context, userID uuid.UUID) (*OrderSnapshot, error)
	CompletedOrderByIDAndUser(ctx context.Context, orderID int64, userID uuid.UUID) (*OrderSnapshot, error)
	BookByID(ctx context.Context, id int64) (*BookSnapshot, error)
	BookByISBN(ctx context.Context, isbn string) (*BookSnapshot, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) (int64, error)
	AddBook(ctx context.Context, orderID, bookID int64) error
	RemoveBook(ctx context.Context, orderID, bookID int64) error
	Delete(ctx context.Context, orderID int64) error
	Update(ctx context.Context, o *order.Order) error
}

type BookRepository interface {
	Create(ctx context.Context, b *book.Book) (int64, error)
	Update(ctx context.Context, b *book.Book) error
	SoftDelete(ctx context.Context, id int64) error
}

type FavoriteRepository interface {
	Add(ctx context.Context, userID uuid.UUID, bookID int64) error
	Remove(ctx context.Context, userID uuid.UUID, bookID int64) error
}
