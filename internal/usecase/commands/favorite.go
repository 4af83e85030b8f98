package commands

import (
	"context"

	"webstore-service/internal/infra"
	"webstore-service/internal/pkg/errs"
	"webstore-service/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAlreadyFavorite  = errs.New("book already in favorites")
	ErrFavoriteNotFound = errs.New("favorite not found")
)

type FavoriteCommands interface {
	AddFavorite(ctx context.Context, userID uuid.UUID, bookID int64) error
	RemoveFavorite(ctx context.Context, userID uuid.UUID, bookID int64) error
}

type favoriteUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewFavoriteUseCase(uow shared.UnitOfWork) FavoriteCommands {
	return &favoriteUseCaseImpl{uow: uow}
}

func (u *favoriteUseCaseImpl) AddFavorite(ctx context.Context, userID uuid.UUID, bookID int64) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
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

		if err := tx.Favorites().Add(ctx, userID, bookID); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrAlreadyFavorite
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *favoriteUseCaseImpl) RemoveFavorite(ctx context.Context, userID uuid.UUID, bookID int64) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Favorites().Remove(ctx, userID, bookID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrFavoriteNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
