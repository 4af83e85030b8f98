package request

import "webstore-service/internal/usecase/queries"

type ListBooksQuery struct {
	Title    *string  `form:"title"`
	AuthorID *int64   `form:"author_id"`
	GenreID  *int64   `form:"genre_id"`
	PriceMin *float64 `form:"price_min"`
	PriceMax *float64 `form:"price_max"`
	SortBy   string   `form:"sort_by"`
	SortDir  string   `form:"sort_dir"`
	Limit    int32    `form:"limit"`
	Offset   int32    `form:"offset"`
}

func (q ListBooksQuery) ToFilter() queries.BooksFilter {
	return queries.BooksFilter{
		Title:    q.Title,
		AuthorID: q.AuthorID,
		GenreID:  q.GenreID,
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		SortBy:   q.SortBy,
		SortDir:  q.SortDir,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
}

type ListNamesQuery struct {
	Name    *string `form:"name"`
	SortDir string  `form:"sort_dir"`
}

func (q ListNamesQuery) ToFilter() queries.NameFilter {
	return queries.NameFilter{
		Name:    q.Name,
		SortDir: q.SortDir,
	}
}
