// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package preference stores each reader's display settings.

A stored row may leave any field unset; [Resolve] fills the gaps with the
platform defaults. Updates are partial: only the fields present in a patch
change.
*/
package preference

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// Supported enum values.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"

	FontSans  = "sans"
	FontSerif = "serif"
	FontMono  = "mono"

	WidthNarrow = "narrow"
	WidthNormal = "normal"
	WidthWide   = "wide"

	ReaderLight = "light"
	ReaderSepia = "sepia"
	ReaderDark  = "dark"
)

// Preferences is a stored row or a partial update. Nil means "not set".
type Preferences struct {
	Theme        *string    `json:"theme,omitempty" validate:"omitempty,oneof=system light dark"`
	FontSize     *int       `json:"fontSize,omitempty"`
	LineHeight   *float64   `json:"lineHeight,omitempty"`
	FontFamily   *string    `json:"fontFamily,omitempty" validate:"omitempty,oneof=sans serif mono"`
	ContentWidth *string    `json:"contentWidth,omitempty" validate:"omitempty,oneof=narrow normal wide"`
	ReaderTheme  *string    `json:"readerTheme,omitempty" validate:"omitempty,oneof=light sepia dark"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// IsEmpty reports whether the patch sets nothing.
func (preferences Preferences) IsEmpty() bool {
	return preferences.Theme == nil && preferences.FontSize == nil && preferences.LineHeight == nil &&
		preferences.FontFamily == nil && preferences.ContentWidth == nil && preferences.ReaderTheme == nil
}

// Merge returns preferences with every field set in patch applied on top.
func (preferences Preferences) Merge(patch Preferences) Preferences {
	merged := preferences
	if patch.Theme != nil {
		merged.Theme = patch.Theme
	}
	if patch.FontSize != nil {
		merged.FontSize = patch.FontSize
	}
	if patch.LineHeight != nil {
		merged.LineHeight = patch.LineHeight
	}
	if patch.FontFamily != nil {
		merged.FontFamily = patch.FontFamily
	}
	if patch.ContentWidth != nil {
		merged.ContentWidth = patch.ContentWidth
	}
	if patch.ReaderTheme != nil {
		merged.ReaderTheme = patch.ReaderTheme
	}
	return merged
}

// Clamp returns a copy with numeric fields forced into the supported ranges.
func (preferences Preferences) Clamp() Preferences {
	clamped := preferences
	if clamped.FontSize != nil {
		size := min(max(*clamped.FontSize, constants.FontSizeMin), constants.FontSizeMax)
		clamped.FontSize = &size
	}
	if clamped.LineHeight != nil {
		height := min(max(*clamped.LineHeight, constants.LineHeightMin), constants.LineHeightMax)
		clamped.LineHeight = &height
	}
	return clamped
}

// # Resolved Settings

// Resolved is a complete set of settings ready for the reader view.
type Resolved struct {
	Theme        string  `json:"theme"`
	FontSize     int     `json:"fontSize"`
	LineHeight   float64 `json:"lineHeight"`
	FontFamily   string  `json:"fontFamily"`
	ContentWidth string  `json:"contentWidth"`
	ReaderTheme  string  `json:"readerTheme"`
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Resolved {
	return Resolved{
		Theme:        constants.DefaultTheme,
		FontSize:     constants.DefaultFontSize,
		LineHeight:   constants.DefaultLineHeight,
		FontFamily:   constants.DefaultFontFamily,
		ContentWidth: constants.DefaultContentWidth,
		ReaderTheme:  constants.DefaultReaderTheme,
	}
}

// Resolve fills unset fields with [Defaults] and clamps the numeric ones.
// A nil row resolves to the defaults.
func Resolve(stored *Preferences) Resolved {
	resolved := Defaults()
	if stored == nil {
		return resolved
	}

	clamped := stored.Clamp()
	if clamped.Theme != nil {
		resolved.Theme = *clamped.Theme
	}
	if clamped.FontSize != nil {
		resolved.FontSize = *clamped.FontSize
	}
	if clamped.LineHeight != nil {
		resolved.LineHeight = *clamped.LineHeight
	}
	if clamped.FontFamily != nil {
		resolved.FontFamily = *clamped.FontFamily
	}
	if clamped.ContentWidth != nil {
		resolved.ContentWidth = *clamped.ContentWidth
	}
	if clamped.ReaderTheme != nil {
		resolved.ReaderTheme = *clamped.ReaderTheme
	}
	return resolved
}
