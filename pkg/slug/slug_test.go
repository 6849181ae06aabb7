// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/pkg/slug"
)

/*
TestFrom verifies title-to-slug derivation.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Introduction", "introduction"},
		{"Chapter 1: La Forêt", "chapter-1-la-foret"},
		{"  Big-O -- Notation!  ", "big-o-notation"},
		{"Crème Brûlée", "creme-brulee"},
		{"第一章", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

/*
TestFrom_MaxLength verifies long titles are cut on a word boundary.
*/
func TestFrom_MaxLength(t *testing.T) {
	title := strings.Repeat("chapter ", 30)
	result := slug.From(title)

	assert.LessOrEqual(t, len(result), slug.MaxLength)
	assert.False(t, strings.HasSuffix(result, "-"))
	assert.True(t, strings.HasPrefix(result, "chapter-chapter"))
}

/*
TestFromOr verifies the fallback for titles without Latin characters.
*/
func TestFromOr(t *testing.T) {
	assert.Equal(t, "chapter-3", slug.FromOr("第一章", "chapter-3"))
	assert.Equal(t, "prologue", slug.FromOr("Prologue", "chapter-0"))
}
