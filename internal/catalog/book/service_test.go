// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// memoryRepository is an in-memory [book.Repository] that enforces slug uniqueness.
type memoryRepository struct {
	mu            sync.Mutex
	books         map[string]*book.Book
	chapterCounts map[string]int
	skipPreCheck  bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{books: map[string]*book.Book{}, chapterCounts: map[string]int{}}
}

func (repository *memoryRepository) Create(_ context.Context, b *book.Book) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for _, existing := range repository.books {
		if existing.Slug == b.Slug {
			return apperr.Conflict("Book slug already exists")
		}
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	repository.books[b.ID] = &stored
	return nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*book.Book, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	stored, ok := repository.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	copied := *stored
	copied.ChapterCount = repository.chapterCounts[id]
	return &copied, nil
}

func (repository *memoryRepository) FindBySlug(ctx context.Context, slug string) (*book.Book, error) {
	repository.mu.Lock()
	var id string
	for _, stored := range repository.books {
		if stored.Slug == slug {
			id = stored.ID
		}
	}
	repository.mu.Unlock()
	return repository.FindByID(ctx, id)
}

func (repository *memoryRepository) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.skipPreCheck {
		return false, nil
	}
	for _, stored := range repository.books {
		if stored.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*book.Book, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	books := []*book.Book{}
	for _, stored := range repository.books {
		if stored.OwnerID == ownerID {
			copied := *stored
			books = append(books, &copied)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID > books[j].ID })
	return books, nil
}

func (repository *memoryRepository) ListPublished(_ context.Context, limit, offset int) ([]*book.Book, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	published := []*book.Book{}
	for _, stored := range repository.books {
		if stored.IsPublished {
			copied := *stored
			published = append(published, &copied)
		}
	}
	total := len(published)
	if offset >= total {
		return []*book.Book{}, total, nil
	}
	return published[offset:min(total, offset+limit)], total, nil
}

func (repository *memoryRepository) Update(_ context.Context, b *book.Book) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.books[b.ID]; !ok {
		return apperr.NotFound("Book")
	}
	stored := *b
	repository.books[b.ID] = &stored
	return nil
}

func newService(repository book.Repository) *book.Service {
	return book.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func introInput() book.CreateInput {
	return book.CreateInput{Title: "Introduction", Slug: "intro", AuthorName: "Ada"}
}

/*
TestService_Create verifies that new books start unpublished with no free chapters.
*/
func TestService_Create(t *testing.T) {
	service := newService(newMemoryRepository())

	created, err := service.Create(context.Background(), "author-1", introInput())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "author-1", created.OwnerID)
	assert.False(t, created.IsPublished)
	assert.Zero(t, created.PublicChapterCount)
}

/*
TestService_Create_DuplicateSlug verifies that a colliding slug is rejected
and no second row is written.
*/
func TestService_Create_DuplicateSlug(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	_, err := service.Create(ctx, "author-1", introInput())
	require.NoError(t, err)

	t.Run("caught by the pre-check", func(t *testing.T) {
		_, err := service.Create(ctx, "author-2", introInput())
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("caught by the storage constraint", func(t *testing.T) {
		repository.skipPreCheck = true
		defer func() { repository.skipPreCheck = false }()

		_, err := service.Create(ctx, "author-2", introInput())
		assert.True(t, apperr.IsConflict(err))
	})

	assert.Len(t, repository.books, 1)
}

/*
TestService_Create_Validation verifies required fields and slug format.
*/
func TestService_Create_Validation(t *testing.T) {
	service := newService(newMemoryRepository())

	_, err := service.Create(context.Background(), "author-1", book.CreateInput{Title: " ", Slug: "Not Valid", AuthorName: ""})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Len(t, ae.Details, 3)
}

/*
TestService_Update verifies ownership and clamping of the public chapter count.
*/
func TestService_Update(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	created, err := service.Create(ctx, "author-1", introInput())
	require.NoError(t, err)
	repository.chapterCounts[created.ID] = 5

	published := true

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"within range", 2, 2},
		{"above chapter count", 9, 5},
		{"negative", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := tt.requested
			updated, err := service.Update(ctx, "author-1", created.ID, book.UpdateInput{
				IsPublished:        &published,
				PublicChapterCount: &count,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, updated.PublicChapterCount)
			assert.True(t, updated.IsPublished)
		})
	}

	t.Run("not the owner", func(t *testing.T) {
		_, err := service.Update(ctx, "intruder", created.ID, book.UpdateInput{IsPublished: &published})
		assert.True(t, apperr.Is(err, apperr.CodeForbidden))
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := service.Update(ctx, "author-1", "intro", book.UpdateInput{})
		assert.True(t, apperr.IsNotFound(err))
	})
}

/*
TestService_ListPublished verifies that drafts stay out of the catalogue.
*/
func TestService_ListPublished(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	draft, err := service.Create(ctx, "author-1", introInput())
	require.NoError(t, err)

	live, err := service.Create(ctx, "author-1", book.CreateInput{Title: "Algorithm Notes", Slug: "algo-notes", AuthorName: "Ada"})
	require.NoError(t, err)

	published := true
	_, err = service.Update(ctx, "author-1", live.ID, book.UpdateInput{IsPublished: &published})
	require.NoError(t, err)

	books, total, err := service.ListPublished(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, books, 1)
	assert.Equal(t, "algo-notes", books[0].Slug)
	assert.NotEqual(t, draft.ID, books[0].ID)

	mine, err := service.ListByOwner(ctx, "author-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

/*
TestClampPublicCount verifies the write-time bounds.
*/
func TestClampPublicCount(t *testing.T) {
	assert.Equal(t, 0, book.ClampPublicCount(-1, 4))
	assert.Equal(t, 4, book.ClampPublicCount(10, 4))
	assert.Equal(t, 3, book.ClampPublicCount(3, 4))
	assert.Equal(t, 0, book.ClampPublicCount(2, 0))
}
