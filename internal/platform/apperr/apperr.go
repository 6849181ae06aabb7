// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error taxonomy shared by every Inkwell domain.

A domain or storage failure leaves the service layer as an [AppError] carrying a
machine-readable code, a client-safe message and the HTTP status the transport
layer should emit.

Taxonomy:

  - NOT_FOUND: book, chapter or row absent where presence was required.
  - UNAUTHORIZED / FORBIDDEN: missing session, or authenticated but not the owner.
  - PREMIUM_REQUIRED: chapter is gated; [AppError.Hint] tells the client whether to
    offer sign-in or upgrade.
  - CONFLICT: duplicate slug or order index.
  - INTERNAL_ERROR: upstream (database, blob store) failure.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Codes

const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodePremiumRequired = "PREMIUM_REQUIRED"
	CodeConflict        = "CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)

// Premium hints tell the presentation layer which path to offer.
const (
	HintSignIn  = "sign_in"
	HintUpgrade = "upgrade"
)

// AppError is the error type every service returns to its handler.
//
// Message is written to clients verbatim; Cause never is.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
	Hint       string       `json:"hint,omitempty"`
}

// FieldError names one invalid input field by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource, e.g. NotFound("Chapter") -> "Chapter not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, msg)
}

// PremiumRequired is a 403 for a gated chapter. Its code differs from
// [Forbidden] and hint is [HintSignIn] or [HintUpgrade].
func PremiumRequired(hint string) *AppError {
	appError := newError(http.StatusForbidden, CodePremiumRequired, "This chapter requires premium access")
	appError.Hint = hint
	return appError
}

// Conflict reports a duplicate slug or order index.
func Conflict(msg string) *AppError {
	return newError(http.StatusConflict, CodeConflict, msg)
}

func ValidationError(msg string, details ...FieldError) *AppError {
	appError := newError(http.StatusBadRequest, CodeValidation, msg)
	appError.Details = details
	return appError
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message; respond.Error logs it.
func Internal(cause error) *AppError {
	appError := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// # Helpers

// IsAppError reports whether err's chain contains an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// Is reports whether err carries an [*AppError] with the given code.
func Is(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}

func IsNotFound(err error) bool { return Is(err, CodeNotFound) }

func IsConflict(err error) bool { return Is(err, CodeConflict) }
