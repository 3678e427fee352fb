package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore().Seed(map[string]any{
		KeyAllowedHosts:      []any{"gutenberg.org", "example.com"},
		KeyMinContentLength:  int64(0),
		KeyRequestsPerSecond: int64(3),
		KeyReaderPageSize:    2000,
	})

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, []string{"gutenberg.org", "example.com"}, settings.Import.AllowedHosts)
	assert.Equal(t, 0, settings.Import.MinContentLength)
	assert.InDelta(t, 3.0, settings.Fetch.RequestsPerSecond, 0.0001)
	assert.Equal(t, 2000, settings.Reader.PageSize)
	assert.Equal(t, domain.DefaultFetchTimeout, settings.Fetch.TimeoutSeconds)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Library.PageSize = 24
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, 24, store.GetInt(KeyLibraryPageSize))
	assert.Equal(t, []string{"slug", "collisions", "wordcount"}, store.GetStringSlice(KeyPostProcessors))

	settings.Reader.PageSize = 0
	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set(KeyAllowedHosts, "gutenberg.org, gutenberg.ca ,"))
	require.NoError(t, service.Set(KeyFetchTimeout, "10"))
	require.NoError(t, service.Set(KeyRequestsPerSecond, "0.5"))
	require.NoError(t, service.Set(KeyPostProcessors, "slug,pages"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"gutenberg.org", "gutenberg.ca"}, settings.Import.AllowedHosts)
	assert.Equal(t, 10, settings.Fetch.TimeoutSeconds)
	assert.InDelta(t, 0.5, settings.Fetch.RequestsPerSecond, 0.0001)
	assert.Equal(t, []string{"slug", "pages"}, settings.Import.PostProcessors)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Set("search.mode", "hybrid"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyReaderPageSize, "many"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyReaderPageSize, "-1"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyRequestsPerSecond, "0"), domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	assert.Len(t, keys, 7)
	assert.Contains(t, keys, KeyAllowedHosts)

	keys[0] = "changed"
	assert.Equal(t, KeyAllowedHosts, service.Keys()[0])
}
