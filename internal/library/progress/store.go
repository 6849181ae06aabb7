// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import "context"

// # Reading Progress Data Access

// Repository defines persistence for reading positions.
type Repository interface {

	/*
		Upsert writes the single slot for (position.UserID, position.BookID).

		Returns:
		  - error: apperr.NotFound when the book does not exist
	*/
	Upsert(context context.Context, position *Position) error

	/*
		Find returns the stored position.

		Returns:
		  - *Position: nil when the user has never read the book
		  - error: Storage failures only
	*/
	Find(context context.Context, userID, bookID string) (*Position, error)

	/*
		ListByUser returns every position of a user, most recent first.
	*/
	ListByUser(context context.Context, userID string) ([]*Position, error)
}
