package commands

import (
	"context"

	"webstore-service/internal/domain/book"
	reqdto "webstore-service/internal/handler/dto/request"
	"webstore-service/internal/infra"
	"webstore-service/internal/pkg/errs"
	"webstore-service/internal/usecase/queries"
	"webstore-service/internal/usecase/shared"
)

var (
	ErrInvalidBookData = errs.New("invalid book data")
	ErrBookRefNotFound = errs.New("referenced author or genre not found")
	ErrDuplicateISBN   = errs.New("isbn already registered")
)

type BookCommands interface {
	CreateBook(ctx context.Context, req reqdto.CreateBookRequest) (*queries.BookView, error)
	UpdateBook(ctx context.Context, bookID int64, req reqdto.UpdateBookRequest) (*queries.BookView, error)
	DeleteBook(ctx context.Context, bookID int64) error
}

type bookUseCaseImpl struct {
	uow         shared.UnitOfWork
	bookQueries queries.BookQueries
}

func NewBookUseCase(uow shared.UnitOfWork, bookQueries queries.BookQueries) BookCommands {
	return &bookUseCaseImpl{
		uow:         uow,
		bookQueries: bookQueries,
	}
}

// CreateBook is idempotent on ISBN: registering an already-known ISBN
// returns the existing book unchanged.
func (u *bookUseCaseImpl) CreateBook(ctx context.Context, req reqdto.CreateBookRequest) (*queries.BookView, error) {
	existing, err := u.uow.CommandReads().BookByISBN(ctx, req.ISBN)
	if err == nil {
		return u.bookQueries.GetByID(ctx, existing.ID)
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity, err := book.NewBook(req.ToParams())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookData)
	}

	var bookID int64
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.Books().Create(ctx, entity)
		if err != nil {
			switch {
			case infra.IsKind(err, infra.KindDuplicateKey):
				return ErrDuplicateISBN
			case infra.IsKind(err, infra.KindForeignKeyViolated):
				return ErrBookRefNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		bookID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.bookQueries.GetByID(ctx, bookID)
}

func (u *bookUseCaseImpl) UpdateBook(ctx context.Context, bookID int64, req reqdto.UpdateBookRequest) (*queries.BookView, error) {
	validated, err := book.NewBook(req.ToParams())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookData)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reads().BookByID(ctx, bookID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := book.ReconstructBook(
			current.ID,
			validated.Title(),
			validated.AuthorID(),
			validated.GenreID(),
			validated.PublicationYear(),
			validated.Price(),
			validated.ISBN(),
			validated.PageCount(),
			validated.AgeRating(),
			current.Deleted,
		)

		if err := tx.Books().Update(ctx, entity); err != nil {
			switch {
			case infra.IsKind(err, infra.KindDuplicateKey):
				return ErrDuplicateISBN
			case infra.IsKind(err, infra.KindForeignKeyViolated):
				return ErrBookRefNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.bookQueries.GetByID(ctx, bookID)
}

func (u *bookUseCaseImpl) DeleteBook(ctx context.Context, bookID int64) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().BookByID(ctx, bookID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Books().SoftDelete(ctx, bookID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
