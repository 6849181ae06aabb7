// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads route params, caller identity and JSON bodies
// from an incoming request.
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// maxBodyBytes caps JSON bodies; chapter markdown is the largest payload.
const maxBodyBytes = 4 << 20

// DecodeValid decodes the JSON body into target and runs its `validate` tags.
//
// A malformed or oversized body yields [validate.ErrInvalidJSON]; failed tags
// yield VALIDATION_ERROR with one detail per field.
func DecodeValid(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return validate.Struct(target)
}

// Param returns the chi URL parameter name.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// UserID returns the caller's id, or "" for anonymous requests.
func UserID(request *http.Request) string {
	return ctxutil.UserID(request.Context())
}

// RequiredUserID is [UserID] for routes that need a caller; anonymous requests get UNAUTHORIZED.
func RequiredUserID(request *http.Request) (string, error) {
	userID := UserID(request)
	if userID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}
