// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/postgres"
)

// # PostgreSQL Repository

// blobRepository implements [Repository] on the catalog.chapterblob table.
type blobRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed blob store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &blobRepository{pool: pool}
}

/*
Upload overwrites the body stored at path.
*/
func (repository *blobRepository) Upload(context context.Context, path, body string) error {
	return repository.UploadWith(context, repository.pool, path, body)
}

/*
UploadWith upserts the body on the supplied connection.

Description: Uses ON CONFLICT so that re-uploading the same chapter is an
idempotent overwrite rather than an error.
*/
func (repository *blobRepository) UploadWith(context context.Context, db postgres.DBTX, path, body string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		schema.CatalogChapterBlob.Table,
		schema.CatalogChapterBlob.Path, schema.CatalogChapterBlob.Body,
		schema.CatalogChapterBlob.SizeBytes, schema.CatalogChapterBlob.UpdatedAt,
		schema.CatalogChapterBlob.Path,
		schema.CatalogChapterBlob.Body, schema.CatalogChapterBlob.Body,
		schema.CatalogChapterBlob.SizeBytes, schema.CatalogChapterBlob.SizeBytes,
		schema.CatalogChapterBlob.UpdatedAt,
	)

	if _, err := db.Exec(context, query, Normalize(path), body, len(body)); err != nil {
		return fmt.Errorf("postgres: failed to upload chapter body: %w", err)
	}

	return nil
}

/*
Download fetches the body stored at path.

Returns:
  - error: apperr.NotFound("Chapter content") when the key is unknown
*/
func (repository *blobRepository) Download(context context.Context, path string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CatalogChapterBlob.Body, schema.CatalogChapterBlob.Table, schema.CatalogChapterBlob.Path)

	var body string
	err := repository.pool.QueryRow(context, query, Normalize(path)).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("Chapter content")
		}
		return "", fmt.Errorf("postgres: failed to download chapter body: %w", err)
	}

	return body, nil
}

/*
Exists reports whether a body is stored at path.
*/
func (repository *blobRepository) Exists(context context.Context, path string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogChapterBlob.Table, schema.CatalogChapterBlob.Path)

	var exists bool
	if err := repository.pool.QueryRow(context, query, Normalize(path)).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check chapter body: %w", err)
	}

	return exists, nil
}

/*
ListPaths returns every stored key.
*/
func (repository *blobRepository) ListPaths(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		schema.CatalogChapterBlob.Path, schema.CatalogChapterBlob.Table, schema.CatalogChapterBlob.Path)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapter bodies: %w", err)
	}

	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan chapter body paths: %w", err)
	}

	return paths, nil
}
