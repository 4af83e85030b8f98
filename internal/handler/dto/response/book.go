package response

import "webstore-service/internal/usecase/queries"

type BookResponse struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	AuthorID        int64   `json:"author_id"`
	AuthorName      string  `json:"author_name"`
	GenreID         int64   `json:"genre_id"`
	GenreName       string  `json:"genre_name"`
	PublicationYear int     `json:"publication_year"`
	Price           float64 `json:"price"`
	ISBN            string  `json:"isbn"`
	PageCount       int     `json:"page_count"`
	AgeRating       int     `json:"age_rating"`
}

func FromBookView(v *queries.BookView) *BookResponse {
	return &BookResponse{
		ID:              v.ID,
		Title:           v.Title,
		AuthorID:        v.AuthorID,
		AuthorName:      v.AuthorName,
		GenreID:         v.GenreID,
		GenreName:       v.GenreName,
		PublicationYear: v.PublicationYear,
		Price:           v.Price,
		ISBN:            v.ISBN,
		PageCount:       v.PageCount,
		AgeRating:       v.AgeRating,
	}
}

func FromBookViews(views []*queries.BookView) []*BookResponse {
	out := make([]*BookResponse, len(views))
	for i, v := range views {
		out[i] = FromBookView(v)
	}
	return out
}

type AuthorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromAuthorViews(views []*queries.AuthorView) []*AuthorResponse {
	out := make([]*AuthorResponse, len(views))
	for i, v := range views {
		out[i] = &AuthorResponse{ID: v.ID, Name: v.Name}
	}
	return out
}

type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromGenreViews(views []*queries.GenreView) []*GenreResponse {
	out := make([]*GenreResponse, len(views))
	for i, v := range views {
		out[i] = &GenreResponse{ID: v.ID, Name: v.Name}
	}
	return out
}
