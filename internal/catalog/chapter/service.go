// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/inkwell/internal/catalog/blob"
	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/slug"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

const (
	FieldTitle      = "title"
	FieldSlug       = "slug"
	FieldOrderIndex = "orderIndex"
	FieldContent    = "content"
)

// BookLookup resolves the book a chapter operation targets and checks ownership.
type BookLookup interface {
	OwnedBook(context context.Context, ownerID, bookID string) (*book.Book, error)
}

// # Service Layer

// Service orchestrates chapter authoring and body retrieval.
type Service struct {
	repository Repository
	blobs      blob.Repository
	books      BookLookup
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, blobs blob.Repository, books BookLookup, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		blobs:      blobs,
		books:      books,
		logger:     logger,
	}
}

// # Authoring

/*
Create adds a chapter and its body to a book the caller owns.

Description: The order index defaults to the end of the book and the slug to
a slugified title. Existence checks are an early exit only; the storage layer
rejects a concurrent duplicate with the same Conflict.

Parameters:
  - context: context.Context
  - ownerID: string (Authenticated author)
  - bookID: string
  - input: CreateInput

Returns:
  - *Chapter: The stored chapter
  - error: VALIDATION_ERROR, FORBIDDEN, NOT_FOUND, CONFLICT
*/
func (service *Service) Create(context context.Context, ownerID, bookID string, input CreateInput) (*Chapter, error) {
	parent, err := service.books.OwnedBook(context, ownerID, bookID)
	if err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validator.Required(FieldContent, strings.TrimSpace(input.Content))
	if input.OrderIndex != nil {
		validator.NonNegative(FieldOrderIndex, *input.OrderIndex)
	}
	if input.Slug != "" {
		validator.Slug(FieldSlug, input.Slug)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	orderIndex, err := service.resolveOrderIndex(context, parent.ID, input.OrderIndex)
	if err != nil {
		return nil, err
	}

	chapterSlug := input.Slug
	if chapterSlug == "" {
		chapterSlug = slug.FromOr(input.Title, fmt.Sprintf("chapter-%d", orderIndex+1))
	}

	if err := service.checkAvailable(context, parent.ID, orderIndex, chapterSlug); err != nil {
		return nil, err
	}

	words := CountWords(input.Content)
	chapter := &Chapter{
		ID:          uuid.New(),
		BookID:      parent.ID,
		Slug:        chapterSlug,
		Title:       input.Title,
		OrderIndex:  orderIndex,
		ContentPath: blob.Path(parent.Slug, chapterSlug),
		WordCount:   &words,
	}

	if err := service.repository.CreateWithContent(context, chapter, input.Content); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_created",
		slog.String("book_id", parent.ID),
		slog.String("chapter_id", chapter.ID),
		slog.String("slug", chapter.Slug),
		slog.Int("order_index", chapter.OrderIndex),
	)

	return chapter, nil
}

// resolveOrderIndex returns the requested position or the next free one.
func (service *Service) resolveOrderIndex(context context.Context, bookID string, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}

	next, err := service.repository.NextOrderIndex(context, bookID)
	if err != nil {
		return 0, fmt.Errorf("chapter_service_create_failed: %w", err)
	}
	return next, nil
}

// checkAvailable rejects an order index or slug that is already in use.
func (service *Service) checkAvailable(context context.Context, bookID string, orderIndex int, chapterSlug string) error {
	taken, err := service.repository.ExistsOrderIndex(context, bookID, orderIndex)
	if err != nil {
		return fmt.Errorf("chapter_service_create_failed: %w", err)
	}
	if taken {
		return apperr.Conflict(fmt.Sprintf("A chapter already uses order index %d", orderIndex))
	}

	taken, err = service.repository.ExistsSlug(context, bookID, chapterSlug)
	if err != nil {
		return fmt.Errorf("chapter_service_create_failed: %w", err)
	}
	if taken {
		return apperr.Conflict(fmt.Sprintf("A chapter with slug %q already exists in this book", chapterSlug))
	}

	return nil
}

/*
ReplaceContent overwrites a chapter body.

Description: Idempotent. Only the body, word count and updatedAt change; the
chapter keeps its slug, position and storage key.

Returns:
  - *Chapter: The chapter with refreshed metadata
  - error: FORBIDDEN, NOT_FOUND, VALIDATION_ERROR
*/
func (service *Service) ReplaceContent(context context.Context, ownerID, bookID, chapterSlug, content string) (*Chapter, error) {
	if _, err := service.books.OwnedBook(context, ownerID, bookID); err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).Required(FieldContent, strings.TrimSpace(content)).Err(); err != nil {
		return nil, err
	}

	chapter, err := service.repository.FindBySlug(context, bookID, chapterSlug)
	if err != nil {
		return nil, err
	}

	words := CountWords(content)
	chapter.WordCount = &words

	if err := service.repository.ReplaceContent(context, chapter, content); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_content_replaced",
		slog.String("book_id", bookID),
		slog.String("chapter_id", chapter.ID),
		slog.Int("word_count", words),
	)

	return chapter, nil
}

// # Reading

// ListForOwner returns every chapter of a book the caller owns.
func (service *Service) ListForOwner(context context.Context, ownerID, bookID string) ([]*Chapter, error) {
	if _, err := service.books.OwnedBook(context, ownerID, bookID); err != nil {
		return nil, err
	}
	return service.repository.ListByBook(context, bookID)
}

// ListByBook returns the chapters of a book in reading order.
func (service *Service) ListByBook(context context.Context, bookID string) ([]*Chapter, error) {
	return service.repository.ListByBook(context, bookID)
}

// Content downloads the markdown body of a chapter.
func (service *Service) Content(context context.Context, chapter *Chapter) (string, error) {
	return service.blobs.Download(context, chapter.ContentPath)
}

// # Maintenance

/*
Audit compares chapter rows against stored bodies.

Returns:
  - *AuditReport: Chapters missing a body and bodies no chapter references
*/
func (service *Service) Audit(context context.Context) (*AuditReport, error) {
	refs, err := service.repository.ListContentRefs(context)
	if err != nil {
		return nil, fmt.Errorf("chapter_service_audit_failed: %w", err)
	}

	paths, err := service.blobs.ListPaths(context)
	if err != nil {
		return nil, fmt.Errorf("chapter_service_audit_failed: %w", err)
	}

	report := Reconcile(refs, paths)

	service.logger.Info("chapter_audit_completed",
		slog.Int("chapters", len(refs)),
		slog.Int("blobs", len(paths)),
		slog.Int("missing_content", len(report.MissingContent)),
		slog.Int("orphan_blobs", len(report.OrphanBlobs)),
	)

	return report, nil
}
