// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/catalog/access"
	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/catalog/chapter"
	"github.com/taibuivan/inkwell/internal/library/progress"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/reader"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

const (
	algoID  = "book-algo"
	draftID = "book-draft"
	ownerID = "author-1"
)

// # Fakes

type fakeBooks struct {
	books    []*book.Book
	failFind bool
	failList bool
}

var errReset = errors.New("connection reset")

func (books *fakeBooks) FindByID(_ context.Context, id string) (*book.Book, error) {
	if books.failFind {
		return nil, errReset
	}
	for _, b := range books.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (books *fakeBooks) FindBySlug(_ context.Context, slug string) (*book.Book, error) {
	for _, b := range books.books {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (books *fakeBooks) ListPublished(_ context.Context, _ pagination.Params) ([]*book.Book, int, error) {
	if books.failList {
		return nil, 0, errReset
	}
	published := []*book.Book{}
	for _, b := range books.books {
		if b.IsPublished {
			published = append(published, b)
		}
	}
	return published, len(published), nil
}

type fakeChapters struct {
	byBook    map[string][]*chapter.Chapter
	bodies    map[string]string
	downloads int
	failBody  bool
	failList  bool
}

func (chapters *fakeChapters) ListByBook(_ context.Context, id string) ([]*chapter.Chapter, error) {
	if chapters.failList {
		return nil, errReset
	}
	return chapters.byBook[id], nil
}

func (chapters *fakeChapters) Content(_ context.Context, c *chapter.Chapter) (string, error) {
	chapters.downloads++
	if chapters.failBody {
		return "", errReset
	}
	return chapters.bodies[c.ContentPath], nil
}

type fakePositions struct {
	rows     map[string]*progress.Position
	failList bool
}

func (positions *fakePositions) Retrieve(_ context.Context, userID, id string) (*progress.Position, error) {
	return positions.rows[userID+"/"+id], nil
}

func (positions *fakePositions) ListByUser(_ context.Context, userID string) ([]*progress.Position, error) {
	if positions.failList {
		return nil, errReset
	}
	result := []*progress.Position{}
	for _, position := range positions.rows {
		if position.UserID == userID {
			result = append(result, position)
		}
	}
	return result, nil
}

type echoRenderer struct{}

func (echoRenderer) Render(_ context.Context, markdown string) (string, error) {
	return "<p>" + markdown + "</p>", nil
}

type fixture struct {
	service   *reader.Service
	books     *fakeBooks
	chapters  *fakeChapters
	positions *fakePositions
}

// newFixture seeds "algo-notes" with chapter-0..chapter-4, the first two free,
// and an unpublished "draft" book.
func newFixture(policy access.Policy) fixture {
	books := &fakeBooks{books: []*book.Book{
		{ID: algoID, OwnerID: ownerID, Slug: "algo-notes", Title: "Algorithm Notes", IsPublished: true, PublicChapterCount: 2, ChapterCount: 5},
		{ID: draftID, OwnerID: ownerID, Slug: "draft", Title: "Draft", IsPublished: false},
	}}

	chapters := &fakeChapters{byBook: map[string][]*chapter.Chapter{}, bodies: map[string]string{}}
	for i := range 5 {
		slug := fmt.Sprintf("chapter-%d", i)
		path := "algo-notes/chapters/" + slug + ".md"
		chapters.byBook[algoID] = append(chapters.byBook[algoID], &chapter.Chapter{
			ID: "c-" + slug, BookID: algoID, Slug: slug, Title: slug, OrderIndex: i, ContentPath: path,
		})
		chapters.bodies[path] = "body of " + slug
	}
	chapters.byBook[draftID] = []*chapter.Chapter{{ID: "d-0", BookID: draftID, Slug: "only", ContentPath: "draft/chapters/only.md"}}

	positions := &fakePositions{rows: map[string]*progress.Position{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return fixture{
		service:   reader.NewService(books, chapters, positions, echoRenderer{}, policy, logger),
		books:     books,
		chapters:  chapters,
		positions: positions,
	}
}

var reader1 = access.Viewer{UserID: "reader-1"}

// # Tests

/*
TestService_GetBook verifies the free/premium split of the chapter list.
*/
func TestService_GetBook(t *testing.T) {
	f := newFixture(access.PublicOnly)

	detail, err := f.service.GetBook(context.Background(), access.Anonymous, "algo-notes")
	require.NoError(t, err)

	got := []bool{}
	for _, view := range detail.Chapters {
		got = append(got, view.IsPublic)
	}
	assert.Equal(t, []bool{true, true, false, false, false}, got)
	assert.Nil(t, detail.Position)
}

/*
TestService_GetBook_Draft verifies unpublished books are visible to their owner only.
*/
func TestService_GetBook_Draft(t *testing.T) {
	f := newFixture(access.PublicOnly)
	ctx := context.Background()

	_, err := f.service.GetBook(ctx, reader1, "draft")
	assert.True(t, apperr.IsNotFound(err))

	detail, err := f.service.GetBook(ctx, access.Viewer{UserID: ownerID}, "draft")
	require.NoError(t, err)
	assert.Equal(t, draftID, detail.Book.ID)
}

/*
TestService_ReadChapter verifies rendering and navigation of a free chapter.
*/
func TestService_ReadChapter(t *testing.T) {
	f := newFixture(access.PublicOnly)

	page, err := f.service.ReadChapter(context.Background(), access.Anonymous, "algo-notes", "chapter-1")
	require.NoError(t, err)

	assert.Equal(t, "<p>body of chapter-1</p>", page.HTML)
	assert.True(t, page.Chapter.IsPublic)
	assert.Equal(t, 1, page.Index)
	assert.Equal(t, 5, page.Total)
	require.NotNil(t, page.Prev)
	require.NotNil(t, page.Next)
	assert.Equal(t, "chapter-0", page.Prev.Slug)
	assert.Equal(t, "chapter-2", page.Next.Slug)
	assert.Nil(t, page.ResumeOffset)
}

/*
TestService_ReadChapter_Premium verifies premium gating under both policies and
that the body is never downloaded for a refused read.
*/
func TestService_ReadChapter_Premium(t *testing.T) {
	ctx := context.Background()

	t.Run("public_only refuses signed-in readers", func(t *testing.T) {
		f := newFixture(access.PublicOnly)
		_, err := f.service.ReadChapter(ctx, reader1, "algo-notes", "chapter-2")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodePremiumRequired, ae.Code)
		assert.Equal(t, apperr.HintUpgrade, ae.Hint)
		assert.Zero(t, f.chapters.downloads)
	})

	t.Run("authenticated asks anonymous readers to sign in", func(t *testing.T) {
		f := newFixture(access.Authenticated)
		_, err := f.service.ReadChapter(ctx, access.Anonymous, "algo-notes", "chapter-4")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.HintSignIn, ae.Hint)
	})

	t.Run("authenticated serves signed-in readers", func(t *testing.T) {
		f := newFixture(access.Authenticated)
		page, err := f.service.ReadChapter(ctx, reader1, "algo-notes", "chapter-4")
		require.NoError(t, err)
		assert.False(t, page.Chapter.IsPublic)
		assert.Nil(t, page.Next)
	})

	t.Run("owner reads premium chapters", func(t *testing.T) {
		f := newFixture(access.PublicOnly)
		_, err := f.service.ReadChapter(ctx, access.Viewer{UserID: ownerID}, "algo-notes", "chapter-3")
		assert.NoError(t, err)
	})
}

/*
TestService_ReadChapter_Resume verifies the offset only applies to the saved chapter.
*/
func TestService_ReadChapter_Resume(t *testing.T) {
	f := newFixture(access.PublicOnly)
	ctx := context.Background()
	f.positions.rows["reader-1/"+algoID] = &progress.Position{UserID: "reader-1", BookID: algoID, ChapterSlug: "chapter-1", ScrollOffset: 640}

	page, err := f.service.ReadChapter(ctx, reader1, "algo-notes", "chapter-1")
	require.NoError(t, err)
	require.NotNil(t, page.ResumeOffset)
	assert.Equal(t, 640.0, *page.ResumeOffset)

	page, err = f.service.ReadChapter(ctx, reader1, "algo-notes", "chapter-0")
	require.NoError(t, err)
	assert.Nil(t, page.ResumeOffset)
}

/*
TestService_ReadChapter_Degrade verifies failures become a clean not found.
*/
func TestService_ReadChapter_Degrade(t *testing.T) {
	f := newFixture(access.PublicOnly)
	ctx := context.Background()

	_, err := f.service.ReadChapter(ctx, access.Anonymous, "algo-notes", "chapter-9")
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.service.ReadChapter(ctx, access.Anonymous, "missing-book", "chapter-0")
	assert.True(t, apperr.IsNotFound(err))

	f.chapters.failBody = true
	_, err = f.service.ReadChapter(ctx, access.Anonymous, "algo-notes", "chapter-0")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_ListPublished_Degrade verifies storage failures on the catalogue become not found.
*/
func TestService_ListPublished_Degrade(t *testing.T) {
	f := newFixture(access.PublicOnly)
	ctx := context.Background()
	params := pagination.Params{Page: 1, Limit: 20}

	f.books.failList = true
	_, _, err := f.service.ListPublished(ctx, params)
	assert.True(t, apperr.IsNotFound(err))

	f.books.failList = false
	f.chapters.failList = true
	_, _, err = f.service.ListPublished(ctx, params)
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, errors.Is(err, errReset))
}

/*
TestService_Library_Degrade verifies storage failures on the library become not found.
*/
func TestService_Library_Degrade(t *testing.T) {
	f := newFixture(access.PublicOnly)
	ctx := context.Background()
	f.positions.rows["reader-1/"+algoID] = &progress.Position{UserID: "reader-1", BookID: algoID, ChapterSlug: "chapter-1"}

	f.positions.failList = true
	_, err := f.service.Library(ctx, reader1)
	assert.True(t, apperr.IsNotFound(err))

	f.positions.failList = false
	f.books.failFind = true
	_, err = f.service.Library(ctx, reader1)
	assert.True(t, apperr.IsNotFound(err))

	// Unauthenticated callers still get a 401.
	_, err = f.service.Library(ctx, access.Anonymous)
	assert.True(t, apperr.Is(err, "UNAUTHORIZED"))
}

/*
TestService_Library verifies drafts owned by others are skipped.
*/
func TestService_Library(t *testing.T) {
	f := newFixture(access.PublicOnly)
	f.positions.rows["reader-1/"+algoID] = &progress.Position{UserID: "reader-1", BookID: algoID, ChapterSlug: "chapter-1"}
	f.positions.rows["reader-1/"+draftID] = &progress.Position{UserID: "reader-1", BookID: draftID, ChapterSlug: "only"}

	entries, err := f.service.Library(context.Background(), reader1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "algo-notes", entries[0].Book.Slug)

	_, err = f.service.Library(context.Background(), access.Anonymous)
	assert.True(t, apperr.Is(err, "UNAUTHORIZED"))
}

/*
TestService_ListPublished verifies drafts stay out of the catalogue.
*/
func TestService_ListPublished(t *testing.T) {
	f := newFixture(access.PublicOnly)

	books, total, err := f.service.ListPublished(context.Background(), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, books, 1)
	assert.Len(t, books[0].Chapters, 5)
}

// # HTTP

/*
TestHandler_ReadChapter_Premium verifies the premium signal and hint on the wire.
*/
func TestHandler_ReadChapter_Premium(t *testing.T) {
	f := newFixture(access.PublicOnly)
	public := chi.NewRouter()
	me := chi.NewRouter()
	reader.NewHandler(f.service).RegisterRoutes(public, me)

	recorder := httptest.NewRecorder()
	public.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books/algo-notes/chapters/chapter-3", nil))
	require.Equal(t, http.StatusForbidden, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "PREMIUM_REQUIRED", body["code"])
	assert.Equal(t, "sign_in", body["hint"])

	request := httptest.NewRequest(http.MethodGet, "/library", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "reader-1"}))
	recorder = httptest.NewRecorder()
	me.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
