//go:build unit

package book_test

import (
	"testing"

	"webstore-service/internal/domain/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() book.NewBookParams {
	return book.NewBookParams{
		Title:           "The Master and Margarita",
		AuthorID:        1,
		GenreID:         2,
		PublicationYear: 1967,
		Price:           19.99,
		ISBN:            "978-0-14-118014-0",
		PageCount:       384,
		AgeRating:       16,
	}
}

func TestNewBook(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b, err := book.NewBook(validParams())
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.Equal(t, "The Master and Margarita", b.Title())
		assert.False(t, b.IsDeleted())
	})

	cases := []struct {
		name   string
		mutate func(*book.NewBookParams)
		errIs  error
	}{
		{
			name:   "empty title",
			mutate: func(p *book.NewBookParams) { p.Title = "" },
			errIs:  book.ErrEmptyTitle,
		},
		{
			name:   "empty isbn",
			mutate: func(p *book.NewBookParams) { p.ISBN = "" },
			errIs:  book.ErrEmptyISBN,
		},
		{
			name:   "zero author reference",
			mutate: func(p *book.NewBookParams) { p.AuthorID = 0 },
			errIs:  book.ErrInvalidAuthor,
		},
		{
			name:   "zero genre reference",
			mutate: func(p *book.NewBookParams) { p.GenreID = 0 },
			errIs:  book.ErrInvalidGenre,
		},
		{
			name:   "negative price",
			mutate: func(p *book.NewBookParams) { p.Price = -0.01 },
			errIs:  book.ErrNegativePrice,
		},
		{
			name:   "free book is allowed",
			mutate: func(p *book.NewBookParams) { p.Price = 0 },
		},
		{
			name:   "negative publication year",
			mutate: func(p *book.NewBookParams) { p.PublicationYear = -1 },
			errIs:  book.ErrInvalidYear,
		},
		{
			name:   "zero page count",
			mutate: func(p *book.NewBookParams) { p.PageCount = 0 },
			errIs:  book.ErrNonPositivePages,
		},
		{
			name:   "negative age rating",
			mutate: func(p *book.NewBookParams) { p.AgeRating = -1 },
			errIs:  book.ErrNegativeAgeRating,
		},
		{
			name:   "zero age rating is allowed",
			mutate: func(p *book.NewBookParams) { p.AgeRating = 0 },
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := validParams()
			c.mutate(&p)

			b, err := book.NewBook(p)
			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, b)
			} else {
				require.Nil(t, b)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestMarkDeleted(t *testing.T) {
	b := book.ReconstructBook(1, "t", 1, 1, 2000, 9.99, "isbn-1", 100, 0, false)
	require.False(t, b.IsDeleted())

	b.MarkDeleted()
	assert.True(t, b.IsDeleted())
}
