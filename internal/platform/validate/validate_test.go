// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Algorithm Notes", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Slug checks the slug format rule shared by books and chapters.
*/
func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		slug    string
		isValid bool
	}{
		{"intro", true},
		{"algo-notes", true},
		{"chapter-12", true},
		{"Intro", false},
		{"-intro", false},
		{"intro-", false},
		{"double--hyphen", false},
		{"with space", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			v := &validate.Validator{}
			v.Slug("slug", tt.slug)
			assert.Equal(t, !tt.isValid, v.HasErrors())
			assert.Equal(t, tt.isValid, validate.IsSlug(tt.slug))
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").         // Fails
		Slug("slug", "Not A Slug").    // Fails
		NonNegative("orderIndex", -1). // Fails
		MaxLen("description", "ok", 10).
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

type samplePayload struct {
	Slug       string   `json:"slug" validate:"required,slug"`
	Theme      *string  `json:"theme" validate:"omitempty,oneof=system light dark"`
	FontSize   *int     `json:"fontSize" validate:"omitempty,gte=1"`
	LineHeight *float64 `json:"lineHeight"`
}

/*
TestStruct verifies tag-driven validation and JSON field naming.
*/
func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		theme := "dark"
		assert.NoError(t, validate.Struct(samplePayload{Slug: "intro", Theme: &theme}))
	})

	t.Run("invalid", func(t *testing.T) {
		theme := "neon"
		size := 0
		err := validate.Struct(samplePayload{Slug: "Bad Slug", Theme: &theme, FontSize: &size})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeValidation, ae.Code)

		fields := make([]string, 0, len(ae.Details))
		for _, detail := range ae.Details {
			fields = append(fields, detail.Field)
		}
		assert.ElementsMatch(t, []string{"slug", "theme", "fontSize"}, fields)
	})
}
