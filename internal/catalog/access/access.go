// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access decides which chapters of a book are free, how chapters link
to one another, and whether a given viewer may read a chapter.

# Visibility

A chapter is public when its position in the ordered list is below the book's
public chapter count. The flag is recomputed on every read and never stored.

# Ordering

Callers pass chapters already sorted by order index; nothing here re-sorts.

Everything in this package is a pure function of its inputs.
*/
package access

import (
	"github.com/taibuivan/inkwell/internal/catalog/chapter"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

// # Chapter Views

// ChapterView is a chapter together with its computed visibility.
type ChapterView struct {
	chapter.Chapter
	IsPublic bool `json:"isPublic"`
}

// Navigation is the position of a chapter within its book.
type Navigation struct {
	Current *ChapterView `json:"current"`
	Index   int          `json:"index"`
	Prev    *ChapterView `json:"prev"`
	Next    *ChapterView `json:"next"`
}

// ResolveVisibility marks the first publicCount chapters public and the rest
// premium.
//
// A publicCount above len(chapters) makes every chapter public and a
// publicCount of zero or less makes every chapter premium.
func ResolveVisibility(chapters []*chapter.Chapter, publicCount int) []ChapterView {
	views := make([]ChapterView, len(chapters))
	for index, c := range chapters {
		views[index] = ChapterView{Chapter: *c, IsPublic: index < publicCount}
	}
	return views
}

// Find returns the view with the given slug, or nil.
func Find(views []ChapterView, slug string) *ChapterView {
	for index := range views {
		if views[index].Slug == slug {
			return &views[index]
		}
	}
	return nil
}

// Navigate locates currentSlug and returns its neighbours.
//
// Prev is nil on the first chapter and Next is nil on the last; there is no
// wraparound.
//
// Returns apperr.NotFound("Chapter") when the slug is not part of the book.
func Navigate(views []ChapterView, currentSlug string) (Navigation, error) {
	for index := range views {
		if views[index].Slug != currentSlug {
			continue
		}

		navigation := Navigation{Current: &views[index], Index: index}
		if index > 0 {
			navigation.Prev = &views[index-1]
		}
		if index+1 < len(views) {
			navigation.Next = &views[index+1]
		}
		return navigation, nil
	}

	return Navigation{}, apperr.NotFound("Chapter")
}
