package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations

type OrderSnapshot struct {
	ID        int64
	UserID    uuid.UUID
	OrderDate *time.Time
	Status    string
	BookIDs   []int64
}

type BookSnapshot struct {
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
