// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the author-facing HTTP layer for books.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the author endpoints on the caller-scoped (/me) router.
//
// # Routing Strategy
//
//   - Listing and updating require a session; ownership is checked per book.
//   - Creating requires authorGate (author role or allowlisted email).
func (handler *Handler) RegisterRoutes(me chi.Router, authorGate func(http.Handler) http.Handler) {
	me.With(middleware.RequireAuth).Get("/books", handler.listMine)
	me.With(authorGate).Post("/books", handler.create)
	me.With(middleware.RequireAuth).Patch("/books/{bookID}", handler.update)
}

/*
GET /api/v1/me/books.

Description: Lists every book owned by the caller, published or not.

Response:
  - 200: []Book
  - 401: UNAUTHORIZED
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.ListByOwner(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}

/*
POST /api/v1/me/books.

Description: Creates an unpublished book owned by the caller.

Request:
  - title: string (required)
  - slug: string (required, lowercase letters/digits/hyphens)
  - description: string
  - authorName: string (required)
  - coverImageUrl: string (URL)

Response:
  - 201: Book
  - 400: VALIDATION_ERROR
  - 403: FORBIDDEN (not an author)
  - 409: CONFLICT (slug taken)
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), ownerID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, book)
}

/*
PATCH /api/v1/me/books/{bookID}.

Description: Updates metadata and publication settings. publicChapterCount is
clamped to the number of chapters the book has.

Request:
  - title, description, coverImageUrl: string
  - isPublished: bool
  - publicChapterCount: int

Response:
  - 200: Book
  - 403: FORBIDDEN (not the owner)
  - 404: NOT_FOUND
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Update(request.Context(), ownerID, requestutil.Param(request, "bookID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}
