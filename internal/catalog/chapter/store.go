// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// # Chapter Data Access

// Repository defines the data access contract for chapters.
type Repository interface {

	/*
		ListByBook returns the chapters of a book sorted by OrderIndex ascending.

		Parameters:
		  - context: context.Context
		  - bookID: string

		Returns:
		  - []*Chapter: Possibly empty, never nil
		  - error: Storage failures
	*/
	ListByBook(context context.Context, bookID string) ([]*Chapter, error)

	/*
		FindBySlug returns one chapter of a book.

		Returns:
		  - error: apperr.NotFound when the slug is not part of the book
	*/
	FindBySlug(context context.Context, bookID, slug string) (*Chapter, error)

	/*
		NextOrderIndex returns max(orderIndex)+1 for the book, or 0 when it has
		no chapters yet.
	*/
	NextOrderIndex(context context.Context, bookID string) (int, error)

	/*
		ExistsOrderIndex reports whether the position is taken.
	*/
	ExistsOrderIndex(context context.Context, bookID string, orderIndex int) (bool, error)

	/*
		ExistsSlug reports whether the book already has a chapter with this slug.
	*/
	ExistsSlug(context context.Context, bookID, slug string) (bool, error)

	/*
		CreateWithContent inserts the chapter row and uploads its body in a
		single transaction.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter (ID, BookID, Slug, Title, OrderIndex, ContentPath set)
		  - content: string (Markdown body)

		Returns:
		  - error: apperr.Conflict on a duplicate order index or slug
	*/
	CreateWithContent(context context.Context, chapter *Chapter, content string) error

	/*
		ReplaceContent overwrites the chapter body and refreshes the word count
		and updatedAt in the same transaction.
	*/
	ReplaceContent(context context.Context, chapter *Chapter, content string) error

	/*
		ListContentRefs returns the content path of every chapter.
	*/
	ListContentRefs(context context.Context) ([]ContentRef, error)
}
