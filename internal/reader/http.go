// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/catalog/access"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// # Handler Implementation

// Handler implements the reader-facing HTTP layer.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reader [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public catalogue on public and the library on me.
func (handler *Handler) RegisterRoutes(public chi.Router, me chi.Router) {
	public.Get("/books", handler.list)
	public.Get("/books/{bookSlug}", handler.getBook)
	public.Get("/books/{bookSlug}/chapters/{chapterSlug}", handler.readChapter)

	me.With(middleware.RequireAuth).Get("/library", handler.library)
}

// viewer builds the explicit identity passed to the service.
func viewer(request *http.Request) access.Viewer {
	return access.Viewer{UserID: requestutil.UserID(request)}
}

/*
GET /api/v1/books.

Description: Lists published books, newest first.

Request:
  - page: int (default 1)
  - limit: int (default 20, max 100)

Response:
  - 200: { data: []BookSummary, meta: pagination.Meta }
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	books, total, err := handler.service.ListPublished(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(params, total))
}

/*
GET /api/v1/books/{bookSlug}.

Response:
  - 200: BookDetail
  - 404: NOT_FOUND (unknown or unpublished)
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.GetBook(request.Context(), viewer(request), requestutil.Param(request, "bookSlug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
GET /api/v1/books/{bookSlug}/chapters/{chapterSlug}.

Description: Returns the rendered chapter with prev/next links. resumeOffset
is set when the caller's saved position is in this chapter.

Response:
  - 200: ChapterPage
  - 403: PREMIUM_REQUIRED (hint: sign_in | upgrade)
  - 404: NOT_FOUND
*/
func (handler *Handler) readChapter(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ReadChapter(request.Context(), viewer(request),
		requestutil.Param(request, "bookSlug"), requestutil.Param(request, "chapterSlug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
GET /api/v1/me/library.

Description: Every book the caller has started, with the saved position.

Response:
  - 200: []LibraryEntry
  - 401: UNAUTHORIZED
*/
func (handler *Handler) library(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.Library(request.Context(), viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}
