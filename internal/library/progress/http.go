// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes reading positions over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new progress [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the progress endpoints on the caller-scoped router.
//
// Saving is open to anonymous callers so clients need not branch on session
// state; reading back requires a session.
func (handler *Handler) RegisterRoutes(me chi.Router) {
	me.Put("/progress/{bookID}", handler.record)
	me.With(middleware.RequireAuth).Get("/progress/{bookID}", handler.retrieve)
}

/*
PUT /api/v1/me/progress/{bookID}.

Description: Saves the caller's position in a book. Anonymous callers get 204
and nothing is stored.

Request:
  - chapterSlug: string (required)
  - scrollOffset: number (>= 0)

Response:
  - 204: Saved (or ignored for anonymous callers)
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND (unknown book)
*/
func (handler *Handler) record(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.UserID(request)
	if userID == "" {
		respond.NoContent(writer)
		return
	}

	var input RecordInput
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.service.Record(request.Context(), userID, requestutil.Param(request, "bookID"), input.ChapterSlug, input.ScrollOffset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/me/progress/{bookID}.

Description: Returns the caller's stored position, or null data when there is
none. meta.debounce_ms is the recommended delay between scroll saves.

Response:
  - 200: { data: Position | null, meta: { debounce_ms } }
  - 401: UNAUTHORIZED
*/
func (handler *Handler) retrieve(writer http.ResponseWriter, request *http.Request) {
	position, err := handler.service.Retrieve(request.Context(), requestutil.UserID(request), requestutil.Param(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.WithMeta(writer, position, map[string]any{"debounce_ms": constants.SaveDebounceMillis})
}
