// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"fmt"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/config"
)

// # Viewer Identity

// Viewer identifies who is reading. An empty UserID is an anonymous reader.
type Viewer struct {
	UserID string
}

// Anonymous is the viewer without a session.
var Anonymous = Viewer{}

// IsAuthenticated reports whether the viewer carries a user id.
func (viewer Viewer) IsAuthenticated() bool {
	return viewer.UserID != ""
}

// # Premium Policy

// Policy decides who may read premium chapters.
type Policy string

const (
	// PublicOnly serves premium chapters to nobody.
	PublicOnly Policy = config.PolicyPublicOnly

	// Authenticated serves premium chapters to any signed-in viewer.
	Authenticated Policy = config.PolicyAuthenticated
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(value) {
	case PublicOnly, Authenticated:
		return Policy(value), nil
	}
	return "", fmt.Errorf("access: unknown premium policy %q", value)
}

// IsAccessible reports whether a viewer may read the chapter.
//
// Public chapters are always readable.
func (policy Policy) IsAccessible(view ChapterView, viewerIsAuthenticated bool) bool {
	if view.IsPublic {
		return true
	}
	return policy == Authenticated && viewerIsAuthenticated
}

// Authorize returns nil when the viewer may read the chapter, otherwise a
// PREMIUM_REQUIRED error whose hint tells the client which path to offer.
//
// Anonymous viewers get sign_in, signed-in viewers without entitlement get
// upgrade.
func (policy Policy) Authorize(view ChapterView, viewer Viewer) error {
	if policy.IsAccessible(view, viewer.IsAuthenticated()) {
		return nil
	}

	if !viewer.IsAuthenticated() {
		return apperr.PremiumRequired(apperr.HintSignIn)
	}
	return apperr.PremiumRequired(apperr.HintUpgrade)
}
