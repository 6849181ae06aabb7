// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reader serves books and chapters to readers.

# Read Path

 1. Load the book and its chapters (already in reading order).
 2. Resolve which chapters are free from the book's public chapter count.
 3. Locate the requested chapter and its neighbours.
 4. Check the premium policy. A premium chapter fails before its body is
    fetched.
 5. Download the markdown body and render it.
 6. Attach the viewer's stored scroll offset when it belongs to this chapter.

# Degradation

Upstream failures on the read path are logged and reported as not found, so a
reader never sees a storage error. Client errors (not found, premium required)
pass through unchanged.
*/
package reader

import (
	"github.com/taibuivan/inkwell/internal/catalog/access"
	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/library/progress"
)

// # Views

// BookSummary is a catalogue entry.
type BookSummary struct {
	*book.Book
	Chapters []access.ChapterView `json:"chapters"`
}

// BookDetail is a book page: metadata, the chapter list and, for signed-in
// viewers, where they left off.
type BookDetail struct {
	Book     *book.Book           `json:"book"`
	Chapters []access.ChapterView `json:"chapters"`
	Position *progress.Position   `json:"position"`
}

// ChapterPage is everything needed to display one chapter.
type ChapterPage struct {
	Book         *book.Book          `json:"book"`
	Chapter      access.ChapterView  `json:"chapter"`
	HTML         string              `json:"html"`
	Index        int                 `json:"index"`
	Total        int                 `json:"total"`
	Prev         *access.ChapterView `json:"prev"`
	Next         *access.ChapterView `json:"next"`
	ResumeOffset *float64            `json:"resumeOffset"`
}

// LibraryEntry is one book the viewer has started.
type LibraryEntry struct {
	Book     *book.Book         `json:"book"`
	Position *progress.Position `json:"position"`
}
