package request

import "webstore-service/internal/domain/book"

type CreateBookRequest struct {
	Title           string  `json:"title" binding:"required"`
	AuthorID        int64   `json:"author_id" binding:"required"`
	GenreID         int64   `json:"genre_id" binding:"required"`
	PublicationYear int     `json:"publication_year" binding:"required"`
	Price           float64 `json:"price" binding:"required,gte=0"`
	ISBN            string  `json:"isbn" binding:"required"`
	PageCount       int     `json:"page_count" binding:"required,gt=0"`
	AgeRating       int     `json:"age_rating" binding:"gte=0"`
}

func (r CreateBookRequest) ToParams() book.NewBookParams {
	return book.NewBookParams{
		Title:           r.Title,
		AuthorID:        r.AuthorID,
		GenreID:         r.GenreID,
		PublicationYear: r.PublicationYear,
		Price:           r.Price,
		ISBN:            r.ISBN,
		PageCount:       r.PageCount,
		AgeRating:       r.AgeRating,
	}
}

type UpdateBookRequest struct {
	Title           string  `json:"title" binding:"required"`
	AuthorID        int64   `json:"author_id" binding:"required"`
	GenreID         int64   `json:"genre_id" binding:"required"`
	PublicationYear int     `json:"publication_year" binding:"required"`
	Price           float64 `json:"price" binding:"required,gte=0"`
	ISBN            string  `json:"isbn" binding:"required"`
	PageCount       int     `json:"page_count" binding:"required,gt=0"`
	AgeRating       int     `json:"age_rating" binding:"gte=0"`
}

func (r UpdateBookRequest) ToParams() book.NewBookParams {
	return book.NewBookParams{
		Title:           r.Title,
		AuthorID:        r.AuthorID,
		GenreID:         r.GenreID,
		PublicationYear: r.PublicationYear,
		Price:           r.Price,
		ISBN:            r.ISBN,
		PageCount:       r.PageCount,
		AgeRating:       r.AgeRating,
	}
}
