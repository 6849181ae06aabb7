// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"context"
	"log/slog"

	"github.com/taibuivan/inkwell/internal/catalog/access"
	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/catalog/chapter"
	"github.com/taibuivan/inkwell/internal/library/progress"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/render"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// # Collaborators

// Books is the catalogue lookup used by the reader.
type Books interface {
	FindByID(context context.Context, id string) (*book.Book, error)
	FindBySlug(context context.Context, slug string) (*book.Book, error)
	ListPublished(context context.Context, params pagination.Params) ([]*book.Book, int, error)
}

// Chapters lists chapters and fetches their bodies.
type Chapters interface {
	ListByBook(context context.Context, bookID string) ([]*chapter.Chapter, error)
	Content(context context.Context, c *chapter.Chapter) (string, error)
}

// Positions reads stored reading positions.
type Positions interface {
	Retrieve(context context.Context, userID, bookID string) (*progress.Position, error)
	ListByUser(context context.Context, userID string) ([]*progress.Position, error)
}

// # Service Layer

// Service implements the reader-facing read path.
type Service struct {
	books     Books
	chapters  Chapters
	positions Positions
	renderer  render.Renderer
	policy    access.Policy
	logger    *slog.Logger
}

// NewService constructs a new [Service].
func NewService(books Books, chapters Chapters, positions Positions, renderer render.Renderer, policy access.Policy, logger *slog.Logger) *Service {
	return &Service{
		books:     books,
		chapters:  chapters,
		positions: positions,
		renderer:  renderer,
		policy:    policy,
		logger:    logger,
	}
}

// degrade turns upstream failures into NotFound(resource) after logging them.
func (service *Service) degrade(context context.Context, err error, resource string) error {
	if appError := apperr.As(err); appError != nil && appError.HTTPStatus < 500 {
		return appError
	}

	service.logger.WarnContext(context, "reader_upstream_failed",
		slog.String("resource", resource),
		slog.Any("error", err),
	)
	return apperr.NotFound(resource)
}

// visibleBook loads a book by slug and hides drafts from everyone but the owner.
func (service *Service) visibleBook(context context.Context, viewer access.Viewer, bookSlug string) (*book.Book, error) {
	found, err := service.books.FindBySlug(context, bookSlug)
	if err != nil {
		return nil, service.degrade(context, err, "Book")
	}

	if !found.IsPublished && !found.IsOwnedBy(viewer.UserID) {
		return nil, apperr.NotFound("Book")
	}

	return found, nil
}

// chapterViews loads the chapters of a book with their visibility resolved.
func (service *Service) chapterViews(context context.Context, b *book.Book) ([]access.ChapterView, error) {
	chapters, err := service.chapters.ListByBook(context, b.ID)
	if err != nil {
		return nil, service.degrade(context, err, "Chapter")
	}
	return access.ResolveVisibility(chapters, b.PublicChapterCount), nil
}

// position returns the viewer's stored position, or nil. Failures are logged
// and treated as "no position".
func (service *Service) position(context context.Context, viewer access.Viewer, bookID string) *progress.Position {
	if !viewer.IsAuthenticated() {
		return nil
	}

	position, err := service.positions.Retrieve(context, viewer.UserID, bookID)
	if err != nil {
		service.logger.WarnContext(context, "reader_position_unavailable",
			slog.String("book_id", bookID),
			slog.Any("error", err),
		)
		return nil
	}
	return position
}

// # Catalogue

/*
ListPublished returns one page of published books with their chapter lists.

Returns:
  - []BookSummary: The page
  - int: Total number of published books
*/
func (service *Service) ListPublished(context context.Context, params pagination.Params) ([]BookSummary, int, error) {
	books, total, err := service.books.ListPublished(context, params)
	if err != nil {
		return nil, 0, service.degrade(context, err, "Book")
	}

	summaries := make([]BookSummary, 0, len(books))
	for _, b := range books {
		views, err := service.chapterViews(context, b)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, BookSummary{Book: b, Chapters: views})
	}

	return summaries, total, nil
}

/*
GetBook returns a book page.

Returns:
  - *BookDetail: Book, chapter views and the viewer's stored position
  - error: NOT_FOUND for unknown or unpublished books
*/
func (service *Service) GetBook(context context.Context, viewer access.Viewer, bookSlug string) (*BookDetail, error) {
	found, err := service.visibleBook(context, viewer, bookSlug)
	if err != nil {
		return nil, err
	}

	views, err := service.chapterViews(context, found)
	if err != nil {
		return nil, err
	}

	return &BookDetail{
		Book:     found,
		Chapters: views,
		Position: service.position(context, viewer, found.ID),
	}, nil
}

/*
ReadChapter returns a rendered chapter with navigation.

Description: The owner of a book can always read its chapters. Everyone else
is subject to the premium policy, which is checked before the body is
downloaded.

Returns:
  - *ChapterPage: Rendered HTML, visibility, neighbours and resume offset
  - error: NOT_FOUND, PREMIUM_REQUIRED
*/
func (service *Service) ReadChapter(context context.Context, viewer access.Viewer, bookSlug, chapterSlug string) (*ChapterPage, error) {
	found, err := service.visibleBook(context, viewer, bookSlug)
	if err != nil {
		return nil, err
	}

	views, err := service.chapterViews(context, found)
	if err != nil {
		return nil, err
	}

	navigation, err := access.Navigate(views, chapterSlug)
	if err != nil {
		return nil, err
	}

	if !found.IsOwnedBy(viewer.UserID) {
		if err := service.policy.Authorize(*navigation.Current, viewer); err != nil {
			return nil, err
		}
	}

	body, err := service.chapters.Content(context, &navigation.Current.Chapter)
	if err != nil {
		return nil, service.degrade(context, err, "Chapter content")
	}

	html, err := service.renderer.Render(context, body)
	if err != nil {
		return nil, service.degrade(context, err, "Chapter content")
	}

	page := &ChapterPage{
		Book:    found,
		Chapter: *navigation.Current,
		HTML:    html,
		Index:   navigation.Index,
		Total:   len(views),
		Prev:    navigation.Prev,
		Next:    navigation.Next,
	}

	if offset, ok := service.position(context, viewer, found.ID).RestoreOffset(chapterSlug); ok {
		page.ResumeOffset = &offset
	}

	return page, nil
}

// # Library

/*
Library lists the books the viewer has started, most recent first.

Description: Books that were unpublished since are skipped unless the viewer
owns them.
*/
func (service *Service) Library(context context.Context, viewer access.Viewer) ([]LibraryEntry, error) {
	if !viewer.IsAuthenticated() {
		return nil, apperr.Unauthorized("Authentication required")
	}

	positions, err := service.positions.ListByUser(context, viewer.UserID)
	if err != nil {
		return nil, service.degrade(context, err, "Library")
	}

	entries := make([]LibraryEntry, 0, len(positions))
	for _, position := range positions {
		found, err := service.books.FindByID(context, position.BookID)
		if err != nil {
			if apperr.IsNotFound(err) {
				continue
			}
			return nil, service.degrade(context, err, "Book")
		}
		if !found.IsPublished && !found.IsOwnedBy(viewer.UserID) {
			continue
		}
		entries = append(entries, LibraryEntry{Book: found, Position: position})
	}

	return entries, nil
}
