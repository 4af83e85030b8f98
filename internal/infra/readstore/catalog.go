package readstore

import (
	"context"

	"webstore-service/internal/infra"
	"webstore-service/internal/infra/db"
	"webstore-service/internal/usecase/queries"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (s *CatalogReadStore) FindAuthors(ctx context.Context, filter queries.NameFilter) ([]*queries.AuthorView, error) {
	sql := `SELECT author_id, author_name FROM authors`
	args := make([]any, 0, 1)
	if filter.Name != nil {
		sql += ` WHERE author_name ILIKE '%' || $1 || '%'`
		args = append(args, *filter.Name)
	}
	sql += ` ORDER BY author_name ` + sortDir(filter.SortDir)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find authors", err)
	}
	defer rows.Close()

	authors := make([]*queries.AuthorView, 0)
	for rows.Next() {
		var v queries.AuthorView
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan author row", err)
		}
		authors = append(authors, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate author rows", err)
	}
	return authors, nil
}

func (s *CatalogReadStore) FindGenres(ctx context.Context, filter queries.NameFilter) ([]*queries.GenreView, error) {
	sql := `SELECT genre_id, genre_name FROM genres`
	args := make([]any, 0, 1)
	if filter.Name != nil {
		sql += ` WHERE genre_name ILIKE '%' || $1 || '%'`
		args = append(args, *filter.Name)
	}
	sql += ` ORDER BY genre_name ` + sortDir(filter.SortDir)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find genres", err)
	}
	defer rows.Close()

	genres := make([]*queries.GenreView, 0)
	for rows.Next() {
		var v queries.GenreView
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan genre row", err)
		}
		genres = append(genres, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate genre rows", err)
	}
	return genres, nil
}

// sortDir only ever receives values validated by the query layer.
func sortDir(dir string) string {
	if dir == "desc" {
		return "DESC"
	}
	return "ASC"
}
