// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/database/schema"
)

// # PostgreSQL Repository

type preferenceRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed preference store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &preferenceRepository{pool: pool}
}

func returningColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.UserReaderSetting.Theme, schema.UserReaderSetting.FontSize, schema.UserReaderSetting.LineHeight,
		schema.UserReaderSetting.FontFamily, schema.UserReaderSetting.ContentWidth, schema.UserReaderSetting.ReaderTheme,
		schema.UserReaderSetting.UpdatedAt,
	)
}

func scanPreferences(row pgx.Row) (*Preferences, error) {
	var preferences Preferences
	err := row.Scan(
		&preferences.Theme, &preferences.FontSize, &preferences.LineHeight,
		&preferences.FontFamily, &preferences.ContentWidth, &preferences.ReaderTheme,
		&preferences.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &preferences, nil
}

/*
Find returns the stored row, or nil when there is none.
*/
func (repository *preferenceRepository) Find(context context.Context, userID string) (*Preferences, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		returningColumns(), schema.UserReaderSetting.Table, schema.UserReaderSetting.UserID)

	preferences, err := scanPreferences(repository.pool.QueryRow(context, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: failed to find reader settings: %w", err)
	}

	return preferences, nil
}

/*
Upsert merges the patch with COALESCE so concurrent partial updates of
different fields do not clobber each other.
*/
func (repository *preferenceRepository) Upsert(context context.Context, userID string, patch Preferences) (*Preferences, error) {
	table := schema.UserReaderSetting
	merge := func(column string) string {
		return fmt.Sprintf("%s = COALESCE(EXCLUDED.%s, stored.%s)", column, column, column)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s AS stored (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (%s) DO UPDATE
		SET %s, %s, %s, %s, %s, %s, %s = NOW()
		RETURNING %s
	`,
		table.Table,
		table.UserID, table.Theme, table.FontSize, table.LineHeight,
		table.FontFamily, table.ContentWidth, table.ReaderTheme, table.UpdatedAt,
		table.UserID,
		merge(table.Theme), merge(table.FontSize), merge(table.LineHeight),
		merge(table.FontFamily), merge(table.ContentWidth), merge(table.ReaderTheme),
		table.UpdatedAt,
		returningColumns(),
	)

	preferences, err := scanPreferences(repository.pool.QueryRow(context, query,
		userID, patch.Theme, patch.FontSize, patch.LineHeight,
		patch.FontFamily, patch.ContentWidth, patch.ReaderTheme,
	))
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to upsert reader settings: %w", err)
	}

	return preferences, nil
}
