package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookView struct {
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

type AuthorView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GenreView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CartBookView struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// CartView is returned even when the user has no persisted cart; the
// zero-value form has no order id and an empty book list.
type CartView struct {
	OrderID    *int64         `json:"order_id,omitempty"`
	UserID     uuid.UUID      `json:"user_id"`
	Status     string         `json:"status"`
	Books      []CartBookView `json:"books"`
	TotalPrice float64        `json:"total_price"`
}

type OrderView struct {
	ID        int64          `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	OrderDate *time.Time     `json:"order_date,omitempty"`
	Status    string         `json:"status"`
	Books     []CartBookView `json:"books"`
}

// BooksFilter narrows and orders the catalog listing. SortBy/SortDir
// are validated against a whitelist before reaching SQL.
type BooksFilter struct {
	Title    *string
	AuthorID *int64
	GenreID  *int64
	PriceMin *float64
	PriceMax *float64
	SortBy   string
	SortDir  string
	Limit    int32
	Offset   int32
}

type NameFilter struct {
	Name    *string
	SortDir string
}
