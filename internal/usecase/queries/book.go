package queries

import (
	"context"

	"webstore-service/internal/pkg/errs"
)

var (
	ErrNoBooksMatch = errs.New("no books match the given criteria")
	ErrInvalidSort  = errs.New("invalid sort parameter")
)

var bookSortColumns = map[string]struct{}{
	"title":            {},
	"price":            {},
	"publication_year": {},
}

const defaultPageSize = 20

type BookQueries interface {
	List(ctx context.Context, filter BooksFilter) ([]*BookView, error)
	GetByID(ctx context.Context, id int64) (*BookView, error)
}

type BookViewRepo interface {
	Find(ctx context.Context, filter BooksFilter) ([]*BookView, error)
	FindByID(ctx context.Context, id int64) (*BookView, error)
}

type bookQueriesImpl struct {
	repo BookViewRepo
}

func NewBookQueries(repo BookViewRepo) BookQueries {
	return &bookQueriesImpl{repo: repo}
}

func (q *bookQueriesImpl) List(ctx context.Context, filter BooksFilter) ([]*BookView, error) {
	if err := normalizeBooksFilter(&filter); err != nil {
		return nil, err
	}

	books, err := q.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoBooksMatch
	}
	return books, nil
}

func (q *bookQueriesImpl) GetByID(ctx context.Context, id int64) (*BookView, error) {
	return q.repo.FindByID(ctx, id)
}

func normalizeBooksFilter(filter *BooksFilter) error {
	if filter.SortBy == "" {
		filter.SortBy = "title"
	}
	if _, ok := bookSortColumns[filter.SortBy]; !ok {
		return ErrInvalidSort
	}

	switch filter.SortDir {
	case "":
		filter.SortDir = "asc"
	case "asc", "desc":
	default:
		return ErrInvalidSort
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return nil
}
