// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes reader preferences over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new preference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the preference endpoints on the caller-scoped router.
// Both are open to anonymous callers, who get the defaults and a no-op save.
func (handler *Handler) RegisterRoutes(me chi.Router) {
	me.Get("/preferences", handler.get)
	me.Patch("/preferences", handler.update)
}

// meta describes the bounds the resolved values were clamped to.
func meta(persisted bool) map[string]any {
	return map[string]any{
		"persisted":  persisted,
		"fontSize":   map[string]any{"min": constants.FontSizeMin, "max": constants.FontSizeMax},
		"lineHeight": map[string]any{"min": constants.LineHeightMin, "max": constants.LineHeightMax},
	}
}

/*
GET /api/v1/me/preferences.

Description: Returns the caller's settings with defaults filled in.
meta.persisted is false when nothing is stored.

Response:
  - 200: { data: Resolved, meta: { persisted, fontSize, lineHeight } }
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	stored, err := handler.service.Get(request.Context(), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.WithMeta(writer, Resolve(stored), meta(stored != nil))
}

/*
PATCH /api/v1/me/preferences.

Description: Saves the supplied fields only. fontSize and lineHeight are
clamped into range before saving. Anonymous callers get 204.

Request:
  - theme: system | light | dark
  - fontSize: int
  - lineHeight: number
  - fontFamily: sans | serif | mono
  - contentWidth: narrow | normal | wide
  - readerTheme: light | sepia | dark

Response:
  - 200: { data: Resolved, meta }
  - 204: Anonymous caller, nothing stored
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.UserID(request)
	if userID == "" {
		respond.NoContent(writer)
		return
	}

	var patch Preferences
	if err := requestutil.DecodeValid(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	patch.UpdatedAt = nil

	stored, err := handler.service.Set(request.Context(), userID, patch.Clamp())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.WithMeta(writer, Resolve(stored), meta(stored != nil))
}
