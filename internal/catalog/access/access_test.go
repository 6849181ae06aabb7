// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/catalog/access"
	"github.com/taibuivan/inkwell/internal/catalog/chapter"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

// sequence builds n chapters "chapter-0".."chapter-(n-1)" in reading order.
func sequence(n int) []*chapter.Chapter {
	chapters := make([]*chapter.Chapter, n)
	for i := range n {
		chapters[i] = &chapter.Chapter{ID: fmt.Sprintf("c-%d", i), Slug: fmt.Sprintf("chapter-%d", i), OrderIndex: i}
	}
	return chapters
}

func publicCount(views []access.ChapterView) int {
	count := 0
	for _, view := range views {
		if view.IsPublic {
			count++
		}
	}
	return count
}

/*
TestResolveVisibility_LeadingChapters verifies that exactly min(publicCount, N)
leading chapters are public for every combination up to N = 6.
*/
func TestResolveVisibility_LeadingChapters(t *testing.T) {
	for n := 0; n <= 6; n++ {
		for count := 0; count <= n+2; count++ {
			views := access.ResolveVisibility(sequence(n), count)

			require.Len(t, views, n)
			assert.Equal(t, min(count, n), publicCount(views), "n=%d count=%d", n, count)

			for i, view := range views {
				assert.Equal(t, i < count, view.IsPublic, "n=%d count=%d index=%d", n, count, i)
			}
		}
	}
}

/*
TestResolveVisibility_AlgoNotes verifies the five chapter, two free scenario.
*/
func TestResolveVisibility_AlgoNotes(t *testing.T) {
	views := access.ResolveVisibility(sequence(5), 2)

	got := make([]bool, len(views))
	for i, view := range views {
		got[i] = view.IsPublic
	}
	assert.Equal(t, []bool{true, true, false, false, false}, got)
}

/*
TestNavigate verifies neighbours and the absence of wraparound.
*/
func TestNavigate(t *testing.T) {
	views := access.ResolveVisibility(sequence(5), 2)

	tests := []struct {
		slug     string
		wantPrev string
		wantNext string
	}{
		{"chapter-0", "", "chapter-1"},
		{"chapter-2", "chapter-1", "chapter-3"},
		{"chapter-4", "chapter-3", ""},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			navigation, err := access.Navigate(views, tt.slug)
			require.NoError(t, err)
			assert.Equal(t, tt.slug, navigation.Current.Slug)

			if tt.wantPrev == "" {
				assert.Nil(t, navigation.Prev)
			} else {
				require.NotNil(t, navigation.Prev)
				assert.Equal(t, tt.wantPrev, navigation.Prev.Slug)
			}

			if tt.wantNext == "" {
				assert.Nil(t, navigation.Next)
			} else {
				require.NotNil(t, navigation.Next)
				assert.Equal(t, tt.wantNext, navigation.Next.Slug)
			}
		})
	}

	t.Run("single chapter", func(t *testing.T) {
		navigation, err := access.Navigate(access.ResolveVisibility(sequence(1), 0), "chapter-0")
		require.NoError(t, err)
		assert.Nil(t, navigation.Prev)
		assert.Nil(t, navigation.Next)
	})

	t.Run("foreign slug", func(t *testing.T) {
		_, err := access.Navigate(views, "not-in-this-book")
		assert.True(t, apperr.IsNotFound(err))
	})
}

/*
TestFind verifies lookup by slug.
*/
func TestFind(t *testing.T) {
	views := access.ResolveVisibility(sequence(3), 1)

	found := access.Find(views, "chapter-1")
	require.NotNil(t, found)
	assert.False(t, found.IsPublic)
	assert.Nil(t, access.Find(views, "chapter-9"))
}

/*
TestPolicy_Authorize verifies access and the sign-in versus upgrade hint.
*/
func TestPolicy_Authorize(t *testing.T) {
	free := access.ChapterView{IsPublic: true}
	premium := access.ChapterView{IsPublic: false}
	reader := access.Viewer{UserID: "user-1"}

	tests := []struct {
		name     string
		policy   access.Policy
		view     access.ChapterView
		viewer   access.Viewer
		wantHint string
	}{
		{"public chapter, anonymous", access.PublicOnly, free, access.Anonymous, ""},
		{"premium, public_only, anonymous", access.PublicOnly, premium, access.Anonymous, apperr.HintSignIn},
		{"premium, public_only, signed in", access.PublicOnly, premium, reader, apperr.HintUpgrade},
		{"premium, authenticated, anonymous", access.Authenticated, premium, access.Anonymous, apperr.HintSignIn},
		{"premium, authenticated, signed in", access.Authenticated, premium, reader, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Authorize(tt.view, tt.viewer)
			if tt.wantHint == "" {
				assert.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodePremiumRequired, ae.Code)
			assert.Equal(t, tt.wantHint, ae.Hint)
		})
	}
}

/*
TestParsePolicy verifies configured names.
*/
func TestParsePolicy(t *testing.T) {
	policy, err := access.ParsePolicy("authenticated")
	require.NoError(t, err)
	assert.Equal(t, access.Authenticated, policy)

	_, err = access.ParsePolicy("everyone")
	assert.Error(t, err)
}
