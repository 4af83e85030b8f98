package queries

import (
	"context"

	"webstore-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNoFavorites = errs.New("user has no favorite books")

type FavoriteQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookView, error)
}

type FavoriteViewRepo interface {
	FindBooksByUser(ctx context.Context, userID uuid.UUID) ([]*BookView, error)
}

type favoriteQueriesImpl struct {
	repo FavoriteViewRepo
}

func NewFavoriteQueries(repo FavoriteViewRepo) FavoriteQueries {
	return &favoriteQueriesImpl{repo: repo}
}

func (q *favoriteQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookView, error) {
	books, err := q.repo.FindBooksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoFavorites
	}
	return books, nil
}
