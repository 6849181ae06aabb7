// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// # Book Data Access

// Repository defines the data access contract for books.
//
// Every read populates [Book.ChapterCount].
type Repository interface {

	/*
		Create persists a new book.

		Parameters:
		  - context: context.Context
		  - book: *Book

		Returns:
		  - error: apperr.Conflict when the slug is taken (enforced by the unique index)
	*/
	Create(context context.Context, book *Book) error

	/*
		FindByID returns the book with the given id.

		Returns:
		  - *Book
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		FindBySlug returns the book with the given slug.

		Returns:
		  - *Book
		  - error: apperr.NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Book, error)

	/*
		ExistsBySlug reports whether a book already uses slug.
	*/
	ExistsBySlug(context context.Context, slug string) (bool, error)

	/*
		ListByOwner returns every book owned by ownerID, newest first.
	*/
	ListByOwner(context context.Context, ownerID string) ([]*Book, error)

	/*
		ListPublished returns one page of published books, newest first.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Book
		  - int: Total published books
		  - error: Storage failures
	*/
	ListPublished(context context.Context, limit, offset int) ([]*Book, int, error)

	/*
		Update persists title, description, cover and publication settings.

		Returns:
		  - error: apperr.NotFound if the book vanished
	*/
	Update(context context.Context, book *Book) error
}
