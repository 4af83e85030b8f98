package book

import "errors"

var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrEmptyISBN         = errors.New("isbn cannot be empty")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidYear       = errors.New("invalid publication year")
	ErrInvalidAuthor     = errors.New("invalid author reference")
	ErrInvalidGenre      = errors.New("invalid genre reference")
	ErrNonPositivePages  = errors.New("page count must be positive")
	ErrNegativeAgeRating = errors.New("age rating cannot be negative")
)

type Book struct {
	id              int64
	title           string
	authorID        int64
	genreID         int64
	publicationYear int
	price           float64
	isbn            string
	pageCount       int
	ageRating       int
	deleted         bool
}

type NewBookParams struct {
	Title           string
	AuthorID        int64
	GenreID         int64
	PublicationYear int
	Price           float64
	ISBN            string
	PageCount       int
	AgeRating       int
}

func NewBook(p NewBookParams) (*Book, error) {
	if p.Title == "" {
		return nil, ErrEmptyTitle
	}
	if p.ISBN == "" {
		return nil, ErrEmptyISBN
	}
	if p.AuthorID <= 0 {
		return nil, ErrInvalidAuthor
	}
	if p.GenreID <= 0 {
		return nil, ErrInvalidGenre
	}
	if p.Price < 0 {
		return nil, ErrNegativePrice
	}
	if p.PublicationYear < 0 {
		return nil, ErrInvalidYear
	}
	if p.PageCount <= 0 {
		return nil, ErrNonPositivePages
	}
	if p.AgeRating < 0 {
		return nil, ErrNegativeAgeRating
	}

	return &Book{
		title:           p.Title,
		authorID:        p.AuthorID,
		genreID:         p.GenreID,
		publicationYear: p.PublicationYear,
		price:           p.Price,
		isbn:            p.ISBN,
		pageCount:       p.PageCount,
		ageRating:       p.AgeRating,
	}, nil
}

func ReconstructBook(
	id int64,
	title string,
	authorID, genreID int64,
	publicationYear int,
	price float64,
	isbn string,
	pageCount, ageRating int,
	deleted bool,
) *Book {
	return &Book{
		id:              id,
		title:           title,
		authorID:        authorID,
		genreID:         genreID,
		publicationYear: publicationYear,
		price:           price,
		isbn:            isbn,
		pageCount:       pageCount,
		ageRating:       ageRating,
		deleted:         deleted,
	}
}

// MarkDeleted hides the book from the catalog without destroying order
// history that references it.
func (b *Book) MarkDeleted() {
	b.deleted = true
}

func (b *Book) ID() int64            { return b.id }
func (b *Book) Title() string        { return b.title }
func (b *Book) AuthorID() int64      { return b.authorID }
func (b *Book) GenreID() int64       { return b.genreID }
func (b *Book) PublicationYear() int { return b.publicationYear }
func (b *Book) Price() float64       { return b.price }
func (b *Book) ISBN() string         { return b.isbn }
func (b *Book) PageCount() int       { return b.pageCount }
func (b *Book) AgeRating() int       { return b.ageRating }
func (b *Book) IsDeleted() bool      { return b.deleted }
