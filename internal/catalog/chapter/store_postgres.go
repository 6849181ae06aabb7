// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/catalog/blob"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repository

// chapterRepository implements [Repository] using pgx.
type chapterRepository struct {
	pool  *pgxpool.Pool
	blobs blob.Repository
}

// NewRepository constructs a PostgreSQL backed chapter store.
//
// blobs must be able to join a transaction through [blob.Repository.UploadWith].
func NewRepository(pool *pgxpool.Pool, blobs blob.Repository) Repository {
	return &chapterRepository{pool: pool, blobs: blobs}
}

// selectColumns lists the chapter columns in [scanChapter] order.
func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.CatalogChapter.ID, schema.CatalogChapter.BookID, schema.CatalogChapter.Slug,
		schema.CatalogChapter.Title, schema.CatalogChapter.OrderIndex, schema.CatalogChapter.ContentPath,
		schema.CatalogChapter.WordCount, schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
	)
}

func scanChapter(row pgx.Row) (*Chapter, error) {
	var chapter Chapter
	err := row.Scan(
		&chapter.ID, &chapter.BookID, &chapter.Slug,
		&chapter.Title, &chapter.OrderIndex, &chapter.ContentPath,
		&chapter.WordCount, &chapter.CreatedAt, &chapter.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// conflictFor translates a unique violation into the message the author sees.
func conflictFor(err error, chapter *Chapter) error {
	switch {
	case dberr.IsUniqueViolation(err, schema.CatalogChapter.UniqueOrder):
		return apperr.Conflict(fmt.Sprintf("A chapter already uses order index %d", chapter.OrderIndex))
	case dberr.IsUniqueViolation(err, schema.CatalogChapter.UniqueSlug):
		return apperr.Conflict(fmt.Sprintf("A chapter with slug %q already exists in this book", chapter.Slug))
	case dberr.IsUniqueViolation(err, ""):
		return dberr.Wrap(err, "Chapter")
	}
	return nil
}

/*
ListByBook returns the chapters of a book in reading order.
*/
func (repository *chapterRepository) ListByBook(context context.Context, bookID string) ([]*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		selectColumns(), schema.CatalogChapter.Table, schema.CatalogChapter.BookID, schema.CatalogChapter.OrderIndex)

	rows, err := repository.pool.Query(context, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []*Chapter{}
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate chapters: %w", err)
	}

	return chapters, nil
}

/*
FindBySlug returns a chapter by its per-book slug.
*/
func (repository *chapterRepository) FindBySlug(context context.Context, bookID, slug string) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns(), schema.CatalogChapter.Table, schema.CatalogChapter.BookID, schema.CatalogChapter.Slug)

	chapter, err := scanChapter(repository.pool.QueryRow(context, query, bookID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter: %w", err)
	}

	return chapter, nil
}

/*
NextOrderIndex returns the next free position at the end of the book.
*/
func (repository *chapterRepository) NextOrderIndex(context context.Context, bookID string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s) + 1, 0) FROM %s WHERE %s = $1`,
		schema.CatalogChapter.OrderIndex, schema.CatalogChapter.Table, schema.CatalogChapter.BookID)

	var next int
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&next); err != nil {
		return 0, fmt.Errorf("postgres: failed to compute next order index: %w", err)
	}

	return next, nil
}

/*
ExistsOrderIndex reports whether the position is taken within the book.
*/
func (repository *chapterRepository) ExistsOrderIndex(context context.Context, bookID string, orderIndex int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CatalogChapter.Table, schema.CatalogChapter.BookID, schema.CatalogChapter.OrderIndex)

	var exists bool
	if err := repository.pool.QueryRow(context, query, bookID, orderIndex).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check order index: %w", err)
	}

	return exists, nil
}

/*
ExistsSlug reports whether the slug is taken within the book.
*/
func (repository *chapterRepository) ExistsSlug(context context.Context, bookID, slug string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CatalogChapter.Table, schema.CatalogChapter.BookID, schema.CatalogChapter.Slug)

	var exists bool
	if err := repository.pool.QueryRow(context, query, bookID, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check chapter slug: %w", err)
	}

	return exists, nil
}

/*
CreateWithContent writes the chapter row and its body atomically.

Description: The unique indexes on (bookid, orderindex) and (bookid, slug)
are authoritative. Two concurrent creators that both pass the service
pre-check end with one commit and one Conflict.
*/
func (repository *chapterRepository) CreateWithContent(context context.Context, chapter *Chapter, content string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}

	// Released without effect once Commit succeeds
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s
	`,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.ID, schema.CatalogChapter.BookID, schema.CatalogChapter.Slug,
		schema.CatalogChapter.Title, schema.CatalogChapter.OrderIndex, schema.CatalogChapter.ContentPath,
		schema.CatalogChapter.WordCount,
		schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		chapter.ID, chapter.BookID, chapter.Slug,
		chapter.Title, chapter.OrderIndex, chapter.ContentPath,
		chapter.WordCount,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)

	if err != nil {
		if conflict := conflictFor(err, chapter); conflict != nil {
			return conflict
		}
		return fmt.Errorf("postgres: failed to create chapter: %w", err)
	}

	if err := repository.blobs.UploadWith(context, transaction, chapter.ContentPath, content); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit chapter: %w", err)
	}

	return nil
}

/*
ReplaceContent overwrites the body and refreshes the row metadata.
*/
func (repository *chapterRepository) ReplaceContent(context context.Context, chapter *Chapter, content string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if err := repository.blobs.UploadWith(context, transaction, chapter.ContentPath, content); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = NOW()
		WHERE %s = $2
		RETURNING %s
	`,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.WordCount, schema.CatalogChapter.UpdatedAt,
		schema.CatalogChapter.ID,
		schema.CatalogChapter.UpdatedAt,
	)

	if err := transaction.QueryRow(context, query, chapter.WordCount, chapter.ID).Scan(&chapter.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Chapter")
		}
		return fmt.Errorf("postgres: failed to update chapter: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit chapter content: %w", err)
	}

	return nil
}

/*
ListContentRefs returns the content path of every chapter, for reconciliation.
*/
func (repository *chapterRepository) ListContentRefs(context context.Context) ([]ContentRef, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY %s, %s`,
		schema.CatalogChapter.ID, schema.CatalogChapter.BookID, schema.CatalogChapter.Slug,
		schema.CatalogChapter.ContentPath, schema.CatalogChapter.Table,
		schema.CatalogChapter.BookID, schema.CatalogChapter.OrderIndex,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapter content paths: %w", err)
	}
	defer rows.Close()

	refs := []ContentRef{}
	for rows.Next() {
		var ref ContentRef
		if err := rows.Scan(&ref.ChapterID, &ref.BookID, &ref.Slug, &ref.ContentPath); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter content path: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate chapter content paths: %w", err)
	}

	return refs, nil
}
