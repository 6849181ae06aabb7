// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Chapter slugs are derived from titles when the author does not supply one
// ("Chapter 1: La Forêt" → "chapter-1-la-foret").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds generated slugs; longer input is cut on a word boundary.
const MaxLength = 80

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Lowercases and keeps only ASCII letters and digits.
// 4. Joins the remaining runs with single hyphens.
//
// The result is empty when the input has no ASCII letters or digits.
func From(s string) string {
	// 1. Normalize and remove accents
	chain := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	folded, _, _ := transform.String(chain, s)

	// 2. Split on anything that is not [a-z0-9]
	words := strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	// 3. Join, stopping before MaxLength
	var builder strings.Builder
	for _, word := range words {
		extra := len(word)
		if builder.Len() > 0 {
			extra++
		}
		if builder.Len()+extra > MaxLength {
			break
		}
		if builder.Len() > 0 {
			builder.WriteByte('-')
		}
		builder.WriteString(word)
	}

	return builder.String()
}

// FromOr returns [From] of s, or fallback when s yields an empty slug
// (e.g. a title written entirely in a non-Latin script).
func FromOr(s, fallback string) string {
	if result := From(s); result != "" {
		return result
	}
	return fallback
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
