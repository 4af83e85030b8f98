package readstore

import (
	"context"

	"webstore-service/internal/infra"
	"webstore-service/internal/infra/db"
	"webstore-service/internal/pkg/pgconv"
	"webstore-service/internal/usecase/queries"

	"github.com/google/uuid"
)

const findFavoriteBooksSQL = `
	SELECT b.book_id, b.title, b.author_id, a.author_name, b.genre_id, g.genre_name,
	       b.publication_year, b.price, b.isbn, b.page_count, b.age_rating
	FROM favorites f
	JOIN books b ON b.book_id = f.book_id
	JOIN authors a ON a.author_id = b.author_id
	JOIN genres g ON g.genre_id = b.genre_id
	WHERE f.user_uuid = $1 AND b.deleted = false
	ORDER BY b.title ASC`

type FavoriteReadStore struct {
	db db.DBTX
}

func NewFavoriteReadStore(dbtx db.DBTX) *FavoriteReadStore {
	return &FavoriteReadStore{db: dbtx}
}

func (s *FavoriteReadStore) FindBooksByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookView, error) {
	rows, err := s.db.Query(ctx, findFavoriteBooksSQL, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find favorite books", err)
	}
	defer rows.Close()

	books := make([]*queries.BookView, 0)
	for rows.Next() {
		view, err := scanBookView(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate favorite rows", err)
	}
	return books, nil
}
