package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestBookmarkService(t *testing.T) {
	store := seedLibrary(t)
	svc := NewBookmarkService(store.Bookmarks(), store)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "emma", "chapter-2", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.Page)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := svc.Get(ctx, "emma")
	require.NoError(t, err)
	assert.Equal(t, "chapter-2", got.ChapterSlug)

	require.NoError(t, svc.Remove(ctx, "emma"))
	_, err = svc.Get(ctx, "emma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, "emma"), domain.ErrNotFound)
}

func TestBookmarkService_Validation(t *testing.T) {
	store := seedLibrary(t)
	svc := NewBookmarkService(store.Bookmarks(), store)
	ctx := context.Background()

	_, err := svc.Save(ctx, "emma", "chapter-2", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Save(ctx, "emma", "chapter-9", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
