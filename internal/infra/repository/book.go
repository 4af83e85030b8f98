package repository

import (
	"context"

	"webstore-service/internal/domain/book"
	"webstore-service/internal/infra"
	"webstore-service/internal/infra/db"
	"webstore-service/internal/pkg/pgconv"
)

const (
	createBookSQL = `
		INSERT INTO books (title, author_id, genre_id, publication_year, price, isbn, page_count, age_rating, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)
		RETURNING book_id`

	updateBookSQL = `
		UPDATE books
		SET title = $2, author_id = $3, genre_id = $4, publication_year = $5,
		    price = $6, isbn = $7, page_count = $8, age_rating = $9
		WHERE book_id = $1`

	softDeleteBookSQL = `
		UPDATE books
		SET deleted = true
		WHERE book_id = $1 AND deleted = false`
)

type BookRepository struct {
	db db.DBTX
}

func NewBookRepository(dbtx db.DBTX) *BookRepository {
	return &BookRepository{db: dbtx}
}

func (r *BookRepository) Create(ctx context.Context, b *book.Book) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, createBookSQL,
		b.Title(),
		b.AuthorID(),
		b.GenreID(),
		b.PublicationYear(),
		pgconv.NumericFromFloat64(b.Price()),
		b.ISBN(),
		b.PageCount(),
		b.AgeRating(),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create book", err)
	}
	return id, nil
}

func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	tag, err := r.db.Exec(ctx, updateBookSQL,
		b.ID(),
		b.Title(),
		b.AuthorID(),
		b.GenreID(),
		b.PublicationYear(),
		pgconv.NumericFromFloat64(b.Price()),
		b.ISBN(),
		b.PageCount(),
		b.AgeRating(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, softDeleteBookSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}
