// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the author-facing HTTP layer for chapters.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts chapter management under /me/books/{bookID}/chapters.
func (handler *Handler) RegisterRoutes(me chi.Router, authorGate func(http.Handler) http.Handler) {
	me.Route("/books/{bookID}/chapters", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", handler.list)
		r.With(authorGate).Post("/", handler.create)
		r.With(authorGate).Put("/{chapterSlug}/content", handler.replaceContent)
	})
}

/*
GET /api/v1/me/books/{bookID}/chapters.

Description: Lists the chapters of an owned book in reading order.

Response:
  - 200: []Chapter
  - 403: FORBIDDEN
  - 404: NOT_FOUND
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.service.ListForOwner(request.Context(), ownerID, requestutil.Param(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapters)
}

/*
POST /api/v1/me/books/{bookID}/chapters.

Description: Creates a chapter and stores its body in one step.

Request:
  - title: string (required)
  - slug: string (optional, derived from the title)
  - orderIndex: int (optional, defaults to the end of the book)
  - content: string (required, markdown)

Response:
  - 201: Chapter
  - 409: CONFLICT (order index or slug taken)
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

	chapter, err := handler.service.Create(request.Context(), ownerID, requestutil.Param(request, "bookID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

/*
PUT /api/v1/me/books/{bookID}/chapters/{chapterSlug}/content.

Description: Replaces the chapter body. Repeating the call with the same body
is harmless.

Request:
  - content: string (required, markdown)

Response:
  - 200: Chapter
*/
func (handler *Handler) replaceContent(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ContentInput
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.ReplaceContent(request.Context(), ownerID,
		requestutil.Param(request, "bookID"), requestutil.Param(request, "chapterSlug"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}
