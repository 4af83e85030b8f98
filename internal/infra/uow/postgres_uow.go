package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"webstore-service/internal/infra/db"
	"webstore-service/internal/infra/readstore"
	"webstore-service/internal/infra/repository"
	"webstore-service/internal/pkg/errs"
	"webstore-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	orderRepo    shared.OrderRepository
	bookRepo     shared.BookRepository
	favoriteRepo shared.FavoriteRepository
	commandReads shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewOrderRepository(t.dbtx)
	}
	return t.orderRepo
}

func (t *pgTx) Books() shared.BookRepository {
	if t.bookRepo == nil {
		t.bookRepo = repository.NewBookRepository(t.dbtx)
	}
	return t.bookRepo
}

func (t *pgTx) Favorites() shared.FavoriteRepository {
	if t.favoriteRepo == nil {
		t.favoriteRepo = repository.NewFavoriteRepository(t.dbtx)
	}
	return t.favoriteRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	orderStore *readstore.OrderReadStore
	bookStore  *readstore.BookReadStore
}

func (r *commandReads) orders() *readstore.OrderReadStore {
	if r.orderStore == nil {
		r.orderStore = readstore.NewOrderReadStore(r.dbtx)
	}
	return r.orderStore
}

func (r *commandReads) books() *readstore.BookReadStore {
	if r.bookStore == nil {
		r.bookStore = readstore.NewBookReadStore(r.dbtx)
	}
	return r.bookStore
}

func (r *commandReads) CartByUser(ctx context.Context, userID uuid.UUID) (*shared.OrderSnapshot, error) {
	cart, err := r.orders().FindCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.OrderSnapshot{
		UserID:  cart.UserID,
		Status:  cart.Status,
		BookIDs: make([]int64, 0, len(cart.Books)),
	}
	if cart.OrderID != nil {
		snapshot.ID = *cart.OrderID
	}
	for _, b := range cart.Books {
		snapshot.BookIDs = append(snapshot.BookIDs, b.ID)
	}
	return snapshot, nil
}

func (r *commandReads) CompletedOrderByIDAndUser(ctx context.Context, orderID int64, userID uuid.UUID) (*shared.OrderSnapshot, error) {
	view, err := r.orders().FindCompletedByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.OrderSnapshot{
		ID:        view.ID,
		UserID:    view.UserID,
		OrderDate: view.OrderDate,
		Status:    view.Status,
		BookIDs:   make([]int64, 0, len(view.Books)),
	}
	for _, b := range view.Books {
		snapshot.BookIDs = append(snapshot.BookIDs, b.ID)
	}
	return snapshot, nil
}

func (r *commandReads) BookByID(ctx context.Context, id int64) (*shared.BookSnapshot, error) {
	row, err := r.books().FindRowByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return bookSnapshot(row), nil
}

func (r *commandReads) BookByISBN(ctx context.Context, isbn string) (*shared.BookSnapshot, error) {
	row, err := r.books().FindRowByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return bookSnapshot(row), nil
}

func bookSnapshot(row *readstore.BookRow) *shared.BookSnapshot {
	return &shared.BookSnapshot{
		ID:              row.ID,
		Title:           row.Title,
		AuthorID:        row.AuthorID,
		GenreID:         row.GenreID,
		PublicationYear: row.PublicationYear,
		Price:           row.Price,
		ISBN:            row.ISBN,
		PageCount:       row.PageCount,
		AgeRating:       row.AgeRating,
		Deleted:         row.Deleted,
	}
}
