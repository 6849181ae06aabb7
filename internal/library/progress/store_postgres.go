// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repository

type progressRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed progress store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &progressRepository{pool: pool}
}

/*
Upsert inserts or overwrites the position slot.
*/
func (repository *progressRepository) Upsert(context context.Context, position *Position) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s
	`,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.UserID, schema.LibraryReadingProgress.BookID,
		schema.LibraryReadingProgress.ChapterSlug, schema.LibraryReadingProgress.ScrollOffset,
		schema.LibraryReadingProgress.UpdatedAt,
		schema.LibraryReadingProgress.UserID, schema.LibraryReadingProgress.BookID,
		schema.LibraryReadingProgress.ChapterSlug, schema.LibraryReadingProgress.ChapterSlug,
		schema.LibraryReadingProgress.ScrollOffset, schema.LibraryReadingProgress.ScrollOffset,
		schema.LibraryReadingProgress.UpdatedAt,
		schema.LibraryReadingProgress.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		position.UserID, position.BookID, position.ChapterSlug, position.ScrollOffset,
	).Scan(&position.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "Book")
	}

	return nil
}

/*
Find returns the stored slot, or nil when there is none.
*/
func (repository *progressRepository) Find(context context.Context, userID, bookID string) (*Position, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryReadingProgress.UserID, schema.LibraryReadingProgress.BookID,
		schema.LibraryReadingProgress.ChapterSlug, schema.LibraryReadingProgress.ScrollOffset,
		schema.LibraryReadingProgress.UpdatedAt,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.UserID, schema.LibraryReadingProgress.BookID,
	)

	var position Position
	err := repository.pool.QueryRow(context, query, userID, bookID).Scan(
		&position.UserID, &position.BookID, &position.ChapterSlug, &position.ScrollOffset, &position.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: failed to find reading progress: %w", err)
	}

	return &position, nil
}

/*
ListByUser returns the user's positions, most recently updated first.
*/
func (repository *progressRepository) ListByUser(context context.Context, userID string) ([]*Position, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		schema.LibraryReadingProgress.UserID, schema.LibraryReadingProgress.BookID,
		schema.LibraryReadingProgress.ChapterSlug, schema.LibraryReadingProgress.ScrollOffset,
		schema.LibraryReadingProgress.UpdatedAt,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.UserID,
		schema.LibraryReadingProgress.UpdatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list reading progress: %w", err)
	}
	defer rows.Close()

	positions := []*Position{}
	for rows.Next() {
		var position Position
		if err := rows.Scan(&position.UserID, &position.BookID, &position.ChapterSlug, &position.ScrollOffset, &position.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan reading progress: %w", err)
		}
		positions = append(positions, &position)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate reading progress: %w", err)
	}

	return positions, nil
}
