// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package progress remembers where each reader is in each book.

# Single Slot

Exactly one position is kept per (user, book): the last chapter visited and
the scroll offset within it. Moving to another chapter overwrites the slot.
Writes are last-write-wins upserts, so repeating a save is harmless.

Anonymous readers get no persistence; their saves are accepted and dropped.
*/
package progress

import "time"

// Position is the stored reading position of a user in a book.
type Position struct {
	UserID       string    `json:"-"`
	BookID       string    `json:"bookId"`
	ChapterSlug  string    `json:"chapterSlug"`
	ScrollOffset float64   `json:"scrollOffset"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RestoreOffset returns the scroll offset to apply when currentSlug is shown.
//
// The second result is false when the position belongs to another chapter of
// the same book, in which case nothing should be restored.
func (position *Position) RestoreOffset(currentSlug string) (float64, bool) {
	if position == nil || position.ChapterSlug != currentSlug {
		return 0, false
	}
	return position.ScrollOffset, true
}

// RecordInput is the body of a position save.
type RecordInput struct {
	ChapterSlug  string  `json:"chapterSlug" validate:"required,slug"`
	ScrollOffset float64 `json:"scrollOffset"`
}
