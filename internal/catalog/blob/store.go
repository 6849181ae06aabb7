// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob

import (
	"context"

	"github.com/taibuivan/inkwell/internal/platform/postgres"
)

// # Chapter Body Data Access

// Repository defines the data access contract for chapter bodies.
//
// Every method normalises the path it receives, so legacy "books/" keys work.
type Repository interface {

	/*
		Upload stores body at path, overwriting any previous body.

		Parameters:
		  - context: context.Context
		  - path: string (Storage key)
		  - body: string (UTF-8 markdown)

		Returns:
		  - error: Storage failures
	*/
	Upload(context context.Context, path, body string) error

	/*
		UploadWith behaves like Upload but runs on the given connection or
		transaction, so the write commits or rolls back with the caller's work.

		Parameters:
		  - context: context.Context
		  - db: postgres.DBTX (Pool or open transaction)
		  - path: string
		  - body: string

		Returns:
		  - error: Storage failures
	*/
	UploadWith(context context.Context, db postgres.DBTX, path, body string) error

	/*
		Download returns the body stored at path.

		Returns:
		  - string: Markdown body
		  - error: apperr.NotFound if no body exists
	*/
	Download(context context.Context, path string) (string, error)

	/*
		Exists reports whether a body is stored at path.
	*/
	Exists(context context.Context, path string) (bool, error)

	/*
		ListPaths returns every stored key in ascending order.

		Description: Used by the reconciliation audit to spot bodies that no
		chapter references.
	*/
	ListPaths(context context.Context) ([]string, error)
}
