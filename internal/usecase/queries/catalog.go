package queries

import "context"

type CatalogQueries interface {
	ListAuthors(ctx context.Context, filter NameFilter) ([]*AuthorView, error)
	ListGenres(ctx context.Context, filter NameFilter) ([]*GenreView, error)
}

type CatalogViewRepo interface {
	FindAuthors(ctx context.Context, filter NameFilter) ([]*AuthorView, error)
	FindGenres(ctx context.Context, filter NameFilter) ([]*GenreView, error)
}

type catalogQueriesImpl struct {
	repo CatalogViewRepo
}

func NewCatalogQueries(repo CatalogViewRepo) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

func (q *catalogQueriesImpl) ListAuthors(ctx context.Context, filter NameFilter) ([]*AuthorView, error) {
	if err := normalizeSortDir(&filter); err != nil {
		return nil, err
	}
	return q.repo.FindAuthors(ctx, filter)
}

func (q *catalogQueriesImpl) ListGenres(ctx context.Context, filter NameFilter) ([]*GenreView, error) {
	if err := normalizeSortDir(&filter); err != nil {
		return nil, err
	}
	return q.repo.FindGenres(ctx, filter)
}

func normalizeSortDir(filter *NameFilter) error {
	switch filter.SortDir {
	case "":
		filter.SortDir = "asc"
	case "asc", "desc":
	default:
		return ErrInvalidSort
	}
	return nil
}
