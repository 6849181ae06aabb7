// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages serialized books: creation by an author, owner-scoped
listing, the public catalogue and publication settings.

# Publication

A book is hidden from readers until IsPublished is set. PublicChapterCount
decides how many leading chapters are free; the rest are premium. Changing the
count reclassifies chapters on the next read without touching chapter rows.
*/
package book

import "time"

// # Domain Entities

// Book is a serialized publication owned by one author account.
type Book struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"ownerId"`
	Slug               string    `json:"slug"`
	Title              string    `json:"title"`
	Description        *string   `json:"description,omitempty"`
	AuthorName         string    `json:"authorName"`
	CoverImageURL      *string   `json:"coverImageUrl,omitempty"`
	IsPublished        bool      `json:"isPublished"`
	PublicChapterCount int       `json:"publicChapterCount"`
	ChapterCount       int       `json:"chapterCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// IsOwnedBy reports whether userID owns the book.
func (book *Book) IsOwnedBy(userID string) bool {
	return userID != "" && book.OwnerID == userID
}

// # Inputs

// CreateInput carries the fields an author supplies for a new book.
type CreateInput struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Slug          string  `json:"slug" validate:"required,max=100,slug"`
	Description   *string `json:"description" validate:"omitempty,max=5000"`
	AuthorName    string  `json:"authorName" validate:"required,max=120"`
	CoverImageURL *string `json:"coverImageUrl" validate:"omitempty,url"`
}

// UpdateInput is a partial update of publication settings and metadata.
// Nil fields are left unchanged.
type UpdateInput struct {
	Title              *string `json:"title" validate:"omitempty,max=200"`
	Description        *string `json:"description" validate:"omitempty,max=5000"`
	CoverImageURL      *string `json:"coverImageUrl" validate:"omitempty,url"`
	IsPublished        *bool   `json:"isPublished"`
	PublicChapterCount *int    `json:"publicChapterCount"`
}

// Apply copies the non-nil fields of input onto book.
//
// PublicChapterCount is clamped to [0, book.ChapterCount].
func (input UpdateInput) Apply(book *Book) {
	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Description != nil {
		book.Description = input.Description
	}
	if input.CoverImageURL != nil {
		book.CoverImageURL = input.CoverImageURL
	}
	if input.IsPublished != nil {
		book.IsPublished = *input.IsPublished
	}
	if input.PublicChapterCount != nil {
		book.PublicChapterCount = ClampPublicCount(*input.PublicChapterCount, book.ChapterCount)
	}
}

// ClampPublicCount bounds a requested public chapter count to [0, chapterCount].
func ClampPublicCount(requested, chapterCount int) int {
	return max(0, min(requested, chapterCount))
}
