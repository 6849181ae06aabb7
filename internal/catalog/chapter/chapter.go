// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages the chapters of a book and their markdown bodies.

# Ordering

Chapters are totally ordered by OrderIndex within their book. Listings are
always returned ascending, which is the guarantee visibility and navigation
resolution rely on.

# Atomic Creation

A chapter row and its body are written in one transaction: either both exist
afterwards or neither does.
*/
package chapter

import (
	"strings"
	"time"

	"github.com/taibuivan/inkwell/internal/catalog/blob"
)

// # Domain Entities

// Chapter is one installment of a book.
type Chapter struct {
	ID          string    `json:"id"`
	BookID      string    `json:"bookId"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	OrderIndex  int       `json:"orderIndex"`
	ContentPath string    `json:"contentPath"`
	WordCount   *int      `json:"wordCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// # Inputs

// CreateInput carries an author's new chapter.
//
// Slug is derived from Title when empty. OrderIndex defaults to the next free
// position when nil.
type CreateInput struct {
	Title      string `json:"title" validate:"required,max=200"`
	Slug       string `json:"slug" validate:"omitempty,max=100,slug"`
	OrderIndex *int   `json:"orderIndex"`
	Content    string `json:"content" validate:"required"`
}

// ContentInput replaces a chapter body.
type ContentInput struct {
	Content string `json:"content" validate:"required"`
}

// CountWords returns the number of whitespace separated words in a body.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// # Reconciliation

// ContentRef is the minimal view of a chapter needed to check its body exists.
type ContentRef struct {
	ChapterID   string `json:"chapterId"`
	BookID      string `json:"bookId"`
	Slug        string `json:"slug"`
	ContentPath string `json:"contentPath"`
}

// AuditReport lists chapters without a body and bodies without a chapter.
type AuditReport struct {
	MissingContent []ContentRef `json:"missingContent"`
	OrphanBlobs    []string     `json:"orphanBlobs"`
}

// Clean reports whether the audit found nothing to repair.
func (report *AuditReport) Clean() bool {
	return len(report.MissingContent) == 0 && len(report.OrphanBlobs) == 0
}

// Reconcile compares chapter content paths with stored blob keys.
//
// Both sides are normalised first, so a chapter that still points at a
// "books/" key matches a body stored under the canonical key.
func Reconcile(refs []ContentRef, paths []string) *AuditReport {
	stored := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		stored[blob.Normalize(path)] = struct{}{}
	}

	report := &AuditReport{MissingContent: []ContentRef{}, OrphanBlobs: []string{}}

	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		key := blob.Normalize(ref.ContentPath)
		referenced[key] = struct{}{}
		if _, ok := stored[key]; !ok {
			report.MissingContent = append(report.MissingContent, ref)
		}
	}

	for _, path := range paths {
		if _, ok := referenced[blob.Normalize(path)]; !ok {
			report.OrphanBlobs = append(report.OrphanBlobs, path)
		}
	}

	return report
}
