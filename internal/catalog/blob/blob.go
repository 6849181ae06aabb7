// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blob stores chapter bodies (UTF-8 markdown) keyed by a path derived
from the book and chapter slugs.

# Path Convention

The canonical key is "<book-slug>/chapters/<chapter-slug>.md". Older uploads
were written with a "books/" prefix; [Normalize] strips it so both spellings
address the same body.

# Storage

Bodies live in the catalog.chapterblob table. Keeping them in PostgreSQL lets
chapter creation write the row and its body in one transaction through
[Repository.UploadWith].
*/
package blob

import (
	"fmt"
	"strings"
)

const (
	chaptersSegment = "/chapters/"
	extension       = ".md"
	legacyPrefix    = "books/"
)

// Path returns the canonical storage key for a chapter body.
func Path(bookSlug, chapterSlug string) string {
	return bookSlug + chaptersSegment + chapterSlug + extension
}

// Normalize maps legacy keys onto the canonical form.
//
// Example:
//
//	blob.Normalize("books/algo-notes/chapters/intro.md") // "algo-notes/chapters/intro.md"
func Normalize(path string) string {
	path = strings.TrimPrefix(strings.TrimSpace(path), "/")
	return strings.TrimPrefix(path, legacyPrefix)
}

// Parse splits a key into its book and chapter slugs.
func Parse(path string) (bookSlug, chapterSlug string, err error) {
	normalized := Normalize(path)

	bookSlug, rest, found := strings.Cut(normalized, chaptersSegment)
	if !found || bookSlug == "" || !strings.HasSuffix(rest, extension) {
		return "", "", fmt.Errorf("blob: malformed chapter path %q", path)
	}

	chapterSlug = strings.TrimSuffix(rest, extension)
	if chapterSlug == "" || strings.Contains(chapterSlug, "/") {
		return "", "", fmt.Errorf("blob: malformed chapter path %q", path)
	}

	return bookSlug, chapterSlug, nil
}
