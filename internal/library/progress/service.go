// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

const (
	FieldBookID       = "bookId"
	FieldChapterSlug  = "chapterSlug"
	FieldScrollOffset = "scrollOffset"
)

// # Service Layer

// Service records and retrieves reading positions.
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

/*
Record stores where userID is in bookID.

Description: An empty userID is an anonymous reader and the call returns nil
without writing anything.

Parameters:
  - context: context.Context
  - userID: string ("" for anonymous)
  - bookID: string
  - chapterSlug: string
  - scrollOffset: float64 (finite, >= 0)

Returns:
  - error: VALIDATION_ERROR, NOT_FOUND (unknown book), storage failures
*/
func (service *Service) Record(context context.Context, userID, bookID, chapterSlug string, scrollOffset float64) error {
	if userID == "" {
		return nil
	}

	validator := &validate.Validator{}
	validator.Custom(FieldBookID, !uuid.Valid(bookID), "Must be a valid id")
	validator.Slug(FieldChapterSlug, chapterSlug)
	validator.Custom(FieldScrollOffset, math.IsNaN(scrollOffset) || math.IsInf(scrollOffset, 0), "Must be a finite number")
	validator.Custom(FieldScrollOffset, scrollOffset < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return err
	}

	position := &Position{
		UserID:       userID,
		BookID:       bookID,
		ChapterSlug:  chapterSlug,
		ScrollOffset: scrollOffset,
	}

	if err := service.repository.Upsert(context, position); err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return fmt.Errorf("progress_service_record_failed: %w", err)
	}

	service.logger.Debug("reading_progress_recorded",
		slog.String("user_id", userID),
		slog.String("book_id", bookID),
		slog.String("chapter_slug", chapterSlug),
	)

	return nil
}

/*
Retrieve returns the stored position.

Returns:
  - *Position: nil when there is none (including anonymous viewers)
  - error: Storage failures only
*/
func (service *Service) Retrieve(context context.Context, userID, bookID string) (*Position, error) {
	if userID == "" || !uuid.Valid(bookID) {
		return nil, nil
	}
	return service.repository.Find(context, userID, bookID)
}

// ListByUser returns every position of the user, most recent first.
func (service *Service) ListByUser(context context.Context, userID string) ([]*Position, error) {
	if userID == "" {
		return []*Position{}, nil
	}
	return service.repository.ListByUser(context, userID)
}
