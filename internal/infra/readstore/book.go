package readstore

import (
	"context"
	"fmt"
	"strings"

	"webstore-service/internal/infra"
	"webstore-service/internal/infra/db"
	"webstore-service/internal/pkg/pgconv"
	"webstore-service/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

const bookViewBaseSQL = `
	SELECT b.book_id, b.title, b.author_id, a.author_name, b.genre_id, g.genre_name,
	       b.publication_year, b.price, b.isbn, b.page_count, b.age_rating
	FROM books b
	JOIN authors a ON a.author_id = b.author_id
	JOIN genres g ON g.genre_id = b.genre_id
	WHERE b.deleted = false`

const findBookRowSQL = `
	SELECT book_id, title, author_id, genre_id, publication_year, price, isbn, page_count, age_rating, deleted
	FROM books
	WHERE `

// BookRow is the raw table row, including the deleted flag that catalog
// views filter away.
type BookRow struct {
	ID              int64
	Title           string
	AuthorID        int64
	GenreID         int64
	PublicationYear int
	Price           float64
	ISBN            string
	PageCount       int
	AgeRating       int
	Deleted         bool
}

var bookSortColumns = map[string]string{
	"title":            "b.title",
	"price":            "b.price",
	"publication_year": "b.publication_year",
}

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(dbtx db.DBTX) *BookReadStore {
	return &BookReadStore{db: dbtx}
}

// Find builds the catalog query from the filter. Sort column and
// direction are mapped through whitelists, never interpolated from
// user input.
func (s *BookReadStore) Find(ctx context.Context, filter queries.BooksFilter) ([]*queries.BookView, error) {
	var sb strings.Builder
	sb.WriteString(bookViewBaseSQL)

	args := make([]any, 0, 6)
	appendArg := func(clause string, value any) {
		args = append(args, value)
		fmt.Fprintf(&sb, clause, len(args))
	}

	if filter.Title != nil {
		appendArg(" AND b.title ILIKE '%%' || $%d || '%%'", *filter.Title)
	}
	if filter.AuthorID != nil {
		appendArg(" AND b.author_id = $%d", *filter.AuthorID)
	}
	if filter.GenreID != nil {
		appendArg(" AND b.genre_id = $%d", *filter.GenreID)
	}
	if filter.PriceMin != nil {
		appendArg(" AND b.price >= $%d", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		appendArg(" AND b.price <= $%d", *filter.PriceMax)
	}

	sortCol, ok := bookSortColumns[filter.SortBy]
	if !ok {
		sortCol = "b.title"
	}
	dir := "ASC"
	if filter.SortDir == "desc" {
		dir = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s, b.book_id ASC", sortCol, dir)

	appendArg(" LIMIT $%d", filter.Limit)
	appendArg(" OFFSET $%d", filter.Offset)

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find books", err)
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
		return nil, infra.WrapRepoErr("failed to iterate book rows", err)
	}
	return books, nil
}

func (s *BookReadStore) FindByID(ctx context.Context, id int64) (*queries.BookView, error) {
	rows, err := s.db.Query(ctx, bookViewBaseSQL+" AND b.book_id = $1", id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find book by ID", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, infra.WrapRepoErr("failed to find book by ID", err)
		}
		return nil, infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return scanBookView(rows)
}

func (s *BookReadStore) FindRowByID(ctx context.Context, id int64) (*BookRow, error) {
	return s.findRow(ctx, findBookRowSQL+"book_id = $1", id)
}

func (s *BookReadStore) FindRowByISBN(ctx context.Context, isbn string) (*BookRow, error) {
	return s.findRow(ctx, findBookRowSQL+"isbn = $1", isbn)
}

func (s *BookReadStore) findRow(ctx context.Context, sql string, arg any) (*BookRow, error) {
	var (
		row   BookRow
		price pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, sql, arg).Scan(
		&row.ID,
		&row.Title,
		&row.AuthorID,
		&row.GenreID,
		&row.PublicationYear,
		&price,
		&row.ISBN,
		&row.PageCount,
		&row.AgeRating,
		&row.Deleted,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book row", err)
	}

	row.Price, err = pgconv.Float64FromNumeric(price)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert book price", err)
	}
	return &row, nil
}

type bookViewScanner interface {
	Scan(dest ...any) error
}

func scanBookView(row bookViewScanner) (*queries.BookView, error) {
	var (
		v     queries.BookView
		price pgtype.Numeric
	)
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.AuthorID,
		&v.AuthorName,
		&v.GenreID,
		&v.GenreName,
		&v.PublicationYear,
		&price,
		&v.ISBN,
		&v.PageCount,
		&v.AgeRating,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan book row", err)
	}

	v.Price, err = pgconv.Float64FromNumeric(price)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert book price", err)
	}
	return &v, nil
}
