// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repository

// bookRepository implements [Repository] using pgx.
type bookRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed book store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &bookRepository{pool: pool}
}

// selectClause lists the book columns plus a live chapter count.
func selectClause() string {
	return fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
			(SELECT COUNT(*) FROM %s c WHERE c.%s = b.%s) AS chaptercount
		FROM %s b
	`,
		schema.CatalogBook.ID, schema.CatalogBook.OwnerID, schema.CatalogBook.Slug,
		schema.CatalogBook.Title, schema.CatalogBook.Description, schema.CatalogBook.AuthorName,
		schema.CatalogBook.CoverImageURL, schema.CatalogBook.IsPublished, schema.CatalogBook.PublicChapterCount,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogChapter.Table, schema.CatalogChapter.BookID, schema.CatalogBook.ID,
		schema.CatalogBook.Table,
	)
}

// scanBook hydrates a [Book] from a row produced by [selectClause].
// Extra destinations (e.g. a window total) are appended after the book columns.
func scanBook(row pgx.Row, extra ...any) (*Book, error) {
	var book Book
	destinations := append([]any{
		&book.ID, &book.OwnerID, &book.Slug,
		&book.Title, &book.Description, &book.AuthorName,
		&book.CoverImageURL, &book.IsPublished, &book.PublicChapterCount,
		&book.CreatedAt, &book.UpdatedAt,
		&book.ChapterCount,
	}, extra...)

	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}
	return &book, nil
}

/*
Create inserts a new book row.

Description: The slug pre-check in the service is only an early exit; a
concurrent insert with the same slug fails here on book_slug_key and is
reported as apperr.Conflict.
*/
func (repository *bookRepository) Create(context context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.ID, schema.CatalogBook.OwnerID, schema.CatalogBook.Slug,
		schema.CatalogBook.Title, schema.CatalogBook.Description, schema.CatalogBook.AuthorName,
		schema.CatalogBook.CoverImageURL, schema.CatalogBook.IsPublished, schema.CatalogBook.PublicChapterCount,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		book.ID, book.OwnerID, book.Slug,
		book.Title, book.Description, book.AuthorName,
		book.CoverImageURL, book.IsPublished, book.PublicChapterCount,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return dberr.Wrap(err, "Book slug")
		}
		return fmt.Errorf("postgres: failed to create book: %w", err)
	}

	return nil
}

/*
FindByID returns a book by primary key.
*/
func (repository *bookRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := selectClause() + fmt.Sprintf(" WHERE b.%s = $1", schema.CatalogBook.ID)

	book, err := scanBook(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres: failed to find book by id: %w", err)
	}

	return book, nil
}

/*
FindBySlug returns a book by its globally unique slug.
*/
func (repository *bookRepository) FindBySlug(context context.Context, slug string) (*Book, error) {
	query := selectClause() + fmt.Sprintf(" WHERE b.%s = $1", schema.CatalogBook.Slug)

	book, err := scanBook(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres: failed to find book by slug: %w", err)
	}

	return book, nil
}

/*
ExistsBySlug reports whether the slug is already taken.
*/
func (repository *bookRepository) ExistsBySlug(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogBook.Table, schema.CatalogBook.Slug)

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check book slug: %w", err)
	}

	return exists, nil
}

/*
ListByOwner returns the author's books, newest first.
*/
func (repository *bookRepository) ListByOwner(context context.Context, ownerID string) ([]*Book, error) {
	query := selectClause() + fmt.Sprintf(" WHERE b.%s = $1 ORDER BY b.%s DESC",
		schema.CatalogBook.OwnerID, schema.CatalogBook.CreatedAt)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list books by owner: %w", err)
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate books: %w", err)
	}

	return books, nil
}

/*
ListPublished returns a page of the public catalogue.

Description: The total is computed with a window function so a single
round-trip returns both the page and the count.
*/
func (repository *bookRepository) ListPublished(context context.Context, limit, offset int) ([]*Book, int, error) {
	query := fmt.Sprintf(`
		SELECT paged.*, COUNT(*) OVER() AS total
		FROM (%s WHERE b.%s) paged
		ORDER BY paged.%s DESC
		LIMIT $1 OFFSET $2
	`, selectClause(), schema.CatalogBook.IsPublished, schema.CatalogBook.CreatedAt)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list published books: %w", err)
	}
	defer rows.Close()

	books := []*Book{}
	total := 0
	for rows.Next() {
		book, err := scanBook(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate books: %w", err)
	}

	// An out-of-range page still needs the total
	if len(books) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.CatalogBook.Table, schema.CatalogBook.IsPublished)
		if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to count published books: %w", err)
		}
	}

	return books, total, nil
}

/*
Update writes mutable book fields and bumps updatedat.
*/
func (repository *bookRepository) Update(context context.Context, book *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6
		RETURNING %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.Description, schema.CatalogBook.CoverImageURL,
		schema.CatalogBook.IsPublished, schema.CatalogBook.PublicChapterCount, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID,
		schema.CatalogBook.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		book.Title, book.Description, book.CoverImageURL,
		book.IsPublished, book.PublicChapterCount,
		book.ID,
	).Scan(&book.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Book")
		}
		return fmt.Errorf("postgres: failed to update book: %w", err)
	}

	return nil
}
