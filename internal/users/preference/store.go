// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference

import "context"

// # Reader Settings Data Access

// Repository defines persistence for reader preferences.
type Repository interface {

	/*
		Find returns the stored row.

		Returns:
		  - *Preferences: nil when the user never saved settings
		  - error: Storage failures only
	*/
	Find(context context.Context, userID string) (*Preferences, error)

	/*
		Upsert merges patch into the user's row in one statement, creating the
		row when absent. Fields not set in patch keep their stored value.

		Returns:
		  - *Preferences: The row after the merge
	*/
	Upsert(context context.Context, userID string, patch Preferences) (*Preferences, error)
}
