// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

const (
	FieldTitle      = "title"
	FieldSlug       = "slug"
	FieldAuthorName = "authorName"
)

// # Service Layer

// Service orchestrates the business rules for books.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// # Authoring

/*
Create registers a new, unpublished book owned by ownerID.

Description: Rejects a slug that is already taken. The existence check is an
early exit; the unique index remains authoritative for concurrent creators.

Parameters:
  - context: context.Context
  - ownerID: string (Authenticated author)
  - input: CreateInput

Returns:
  - *Book: The created book with zero chapters and publicChapterCount = 0
  - error: VALIDATION_ERROR, CONFLICT, or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Book, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.AuthorName = strings.TrimSpace(input.AuthorName)
	input.Slug = strings.TrimSpace(input.Slug)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validator.Required(FieldAuthorName, input.AuthorName)
	validator.Slug(FieldSlug, input.Slug)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Early exit on an obvious collision
	taken, err := service.repository.ExistsBySlug(context, input.Slug)
	if err != nil {
		return nil, fmt.Errorf("book_service_create_failed: %w", err)
	}
	if taken {
		return nil, apperr.Conflict(fmt.Sprintf("A book with slug %q already exists", input.Slug))
	}

	book := &Book{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Slug:          input.Slug,
		Title:         input.Title,
		Description:   input.Description,
		AuthorName:    input.AuthorName,
		CoverImageURL: input.CoverImageURL,
	}

	if err := service.repository.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("slug", book.Slug),
		slog.String("owner_id", ownerID),
	)

	return book, nil
}

/*
Update applies a partial update to a book the caller owns.

Description: PublicChapterCount is clamped to [0, chapterCount] so that the
stored count never promises more free chapters than exist.

Returns:
  - *Book: The updated book
  - error: NOT_FOUND, FORBIDDEN (not the owner), VALIDATION_ERROR
*/
func (service *Service) Update(context context.Context, ownerID, bookID string, input UpdateInput) (*Book, error) {
	book, err := service.OwnedBook(context, ownerID, bookID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		input.Title = &trimmed
		if err := (&validate.Validator{}).Required(FieldTitle, trimmed).Err(); err != nil {
			return nil, err
		}
	}

	input.Apply(book)

	if err := service.repository.Update(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_updated",
		slog.String("book_id", book.ID),
		slog.Bool("is_published", book.IsPublished),
		slog.Int("public_chapter_count", book.PublicChapterCount),
	)

	return book, nil
}

/*
OwnedBook loads a book and checks that ownerID owns it.

Returns:
  - error: NOT_FOUND if missing, FORBIDDEN if owned by someone else
*/
func (service *Service) OwnedBook(context context.Context, ownerID, bookID string) (*Book, error) {
	book, err := service.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}

	if !book.IsOwnedBy(ownerID) {
		return nil, apperr.Forbidden("You do not own this book")
	}

	return book, nil
}

// # Lookups

// FindByID returns a book by id. Malformed ids are reported as not found.
func (service *Service) FindByID(context context.Context, id string) (*Book, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Book")
	}
	return service.repository.FindByID(context, id)
}

// FindBySlug returns a book by slug.
func (service *Service) FindBySlug(context context.Context, slug string) (*Book, error) {
	return service.repository.FindBySlug(context, slug)
}

// ListByOwner returns the caller's books, newest first.
func (service *Service) ListByOwner(context context.Context, ownerID string) ([]*Book, error) {
	return service.repository.ListByOwner(context, ownerID)
}

// ListPublished returns one page of the public catalogue.
func (service *Service) ListPublished(context context.Context, params pagination.Params) ([]*Book, int, error) {
	return service.repository.ListPublished(context, params.Limit, params.Offset())
}
