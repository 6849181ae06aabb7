// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

/*
TestConstructors verifies the status and code of each taxonomy member.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *apperr.AppError
		status int
		code   string
	}{
		{apperr.NotFound("Chapter"), http.StatusNotFound, apperr.CodeNotFound},
		{apperr.Unauthorized("Authentication required"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{apperr.Forbidden("Not your book"), http.StatusForbidden, apperr.CodeForbidden},
		{apperr.PremiumRequired(apperr.HintSignIn), http.StatusForbidden, apperr.CodePremiumRequired},
		{apperr.Conflict("Slug taken"), http.StatusConflict, apperr.CodeConflict},
		{apperr.ValidationError("Validation failed"), http.StatusBadRequest, apperr.CodeValidation},
		{apperr.RateLimited(1), http.StatusTooManyRequests, apperr.CodeRateLimited},
		{apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Chapter not found", apperr.NotFound("Chapter").Error())
	assert.Equal(t, apperr.HintSignIn, apperr.PremiumRequired(apperr.HintSignIn).Hint)
}

/*
TestAs_WrappedChain verifies lookup through fmt.Errorf wrapping.
*/
func TestAs_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("chapter_service_create_failed: %w", apperr.Conflict("Order index taken"))

	require.NotNil(t, apperr.As(wrapped))
	assert.True(t, apperr.IsConflict(wrapped))
	assert.False(t, apperr.IsNotFound(wrapped))
	assert.False(t, apperr.IsAppError(errors.New("plain")))
}

/*
TestInternal_HidesCause verifies the cause stays reachable but out of the message.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("postgres: connection reset")
	appError := apperr.Internal(cause)

	assert.NotContains(t, appError.Error(), "postgres")
	assert.ErrorIs(t, appError, cause)
}
