package repository

import (
	"context"

	"webstore-service/internal/infra"
	"webstore-service/internal/infra/db"
	"webstore-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertFavoriteSQL = `
		INSERT INTO favorites (user_uuid, book_id)
		VALUES ($1, $2)`

	deleteFavoriteSQL = `
		DELETE FROM favorites
		WHERE user_uuid = $1 AND book_id = $2`
)

type FavoriteRepository struct {
	db db.DBTX
}

func NewFavoriteRepository(dbtx db.DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: dbtx}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID uuid.UUID, bookID int64) error {
	if _, err := r.db.Exec(ctx, insertFavoriteSQL, pgconv.UUIDToPgtype(userID), bookID); err != nil {
		return infra.WrapRepoErr("failed to add favorite", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID uuid.UUID, bookID int64) error {
	tag, err := r.db.Exec(ctx, deleteFavoriteSQL, pgconv.UUIDToPgtype(userID), bookID)
	if err != nil {
		return infra.WrapRepoErr("failed to remove favorite", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("favorite not found", nil, infra.KindNotFound)
	}
	return nil
}
