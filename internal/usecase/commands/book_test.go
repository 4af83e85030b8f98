//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"webstore-service/internal/domain/book"
	reqdto "webstore-service/internal/handler/dto/request"
	"webstore-service/internal/infra"
	"webstore-service/internal/usecase/commands"
	"webstore-service/internal/usecase/queries"
	"webstore-service/internal/usecase/shared"
	queriesmock "webstore-service/tests/mock/queries"
	sharedmock "webstore-service/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type bookFixture struct {
	uow     *sharedmock.MockUnitOfWork
	tx      *sharedmock.MockTx
	reads   *sharedmock.MockCommandReads
	books   *sharedmock.MockBookRepository
	queries *queriesmock.MockBookQueries
	uc      commands.BookCommands
}

func newBookFixture(t *testing.T) *bookFixture {
	ctrl := gomock.NewController(t)

	f := &bookFixture{
		uow:     sharedmock.NewMockUnitOfWork(ctrl),
		tx:      sharedmock.NewMockTx(ctrl),
		reads:   sharedmock.NewMockCommandReads(ctrl),
		books:   sharedmock.NewMockBookRepository(ctrl),
		queries: queriesmock.NewMockBookQueries(ctrl),
	}

	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().Books().Return(f.books).AnyTimes()
	f.uow.EXPECT().CommandReads().Return(f.reads).AnyTimes()
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		},
	).AnyTimes()

	f.uc = commands.NewBookUseCase(f.uow, f.queries)
	return f
}

func fkErr() error {
	return infra.WrapRepoErr("foreign key", errors.New("violates foreign key constraint"), infra.KindForeignKeyViolated)
}

func createBookReq() reqdto.CreateBookRequest {
	return reqdto.CreateBookRequest{
		Title:           "Dead Souls",
		AuthorID:        1,
		GenreID:         2,
		PublicationYear: 1842,
		Price:           14.5,
		ISBN:            "isbn-1842",
		PageCount:       432,
		AgeRating:       12,
	}
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and returns the catalog view", func(t *testing.T) {
		f := newBookFixture(t)
		f.reads.EXPECT().BookByISBN(ctx, "isbn-1842").Return(nil, notFoundErr())
		f.books.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, b *book.Book) (int64, error) {
				assert.Equal(t, "Dead Souls", b.Title())
				assert.Equal(t, "isbn-1842", b.ISBN())
				return 5, nil
			},
		)
		f.queries.EXPECT().GetByID(ctx, int64(5)).Return(&queries.BookView{ID: 5, Title: "Dead Souls"}, nil)

		view, err := f.uc.CreateBook(ctx, createBookReq())
		require.NoError(t, err)
		assert.Equal(t, int64(5), view.ID)
	})

	t.Run("known isbn returns the existing book unchanged", func(t *testing.T) {
		f := newBookFixture(t)
		f.reads.EXPECT().BookByISBN(ctx, "isbn-1842").Return(&shared.BookSnapshot{ID: 9, ISBN: "isbn-1842"}, nil)
		f.queries.EXPECT().GetByID(ctx, int64(9)).Return(&queries.BookView{ID: 9}, nil)

		view, err := f.uc.CreateBook(ctx, createBookReq())
		require.NoError(t, err)
		assert.Equal(t, int64(9), view.ID)
	})

	t.Run("invalid data is rejected before any write", func(t *testing.T) {
		f := newBookFixture(t)
		f.reads.EXPECT().BookByISBN(ctx, "isbn-1842").Return(nil, notFoundErr())

		req := createBookReq()
		req.PageCount = 0
		_, err := f.uc.CreateBook(ctx, req)
		require.ErrorIs(t, err, commands.ErrInvalidBookData)
	})

	t.Run("unknown author or genre", func(t *testing.T) {
		f := newBookFixture(t)
		f.reads.EXPECT().BookByISBN(ctx, "isbn-1842").Return(nil, notFoundErr())
		f.books.EXPECT().Create(ctx, gomock.Any()).Return(int64(0), fkErr())

		_, err := f.uc.CreateBook(ctx, createBookReq())
		require.ErrorIs(t, err, commands.ErrBookRefNotFound)
	})

	t.Run("isbn registered concurrently", func(t *testing.T) {
		f := newBookFixture(t)
		f.reads.EXPECT().BookByISBN(ctx, "isbn-1842").Return(nil, notFoundErr())
		f.books.EXPECT().Create(ctx, gomock.Any()).Return(int64(0), duplicateErr())

		_, err := f.uc.CreateBook(ctx, createBookReq())
		require.ErrorIs(t, err, commands.ErrDuplicateISBN)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	updateReq := func() reqdto.UpdateBookRequest {
		return reqdto.UpdateBookRequest{
			Title:           "Dead Souls (annotated)",
			AuthorID:        1,
			GenreID:         2,
			PublicationYear: 1842,
			Price:           16,
			ISBN:            "isbn-1842",
			PageCount:       450,
			AgeRating:       12,
		}
	}

	t.Run("updates and keeps the deletion flag", func(t *testing.T) {
		f := newBookFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(5)).Return(&shared.BookSnapshot{ID: 5, Deleted: true}, nil)
		f.books.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, b *book.Book) error {
				assert.Equal(t, int64(5), b.ID())
				assert.Equal(t, "Dead Souls (annotated)", b.Title())
				assert.True(t, b.IsDeleted())
				return nil
			},
		)
		f.queries.EXPECT().GetByID(ctx, int64(5)).Return(&queries.BookView{ID: 5}, nil)

		_, err := f.uc.UpdateBook(ctx, 5, updateReq())
		require.NoError(t, err)
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newBookFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(5)).Return(nil, notFoundErr())

		_, err := f.uc.UpdateBook(ctx, 5, updateReq())
		require.ErrorIs(t, err, commands.ErrBookNotFound)
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	t.Run("soft deletes an existing book", func(t *testing.T) {
		f := newBookFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(5)).Return(&shared.BookSnapshot{ID: 5}, nil)
		f.books.EXPECT().SoftDelete(ctx, int64(5)).Return(nil)

		require.NoError(t, f.uc.DeleteBook(ctx, 5))
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newBookFixture(t)
		f.reads.EXPECT().BookByID(ctx, int64(5)).Return(nil, notFoundErr())

		require.ErrorIs(t, f.uc.DeleteBook(ctx, 5), commands.ErrBookNotFound)
	})
}
