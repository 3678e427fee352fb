package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/folio/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio/internal/adapters/driven/fetch"
	"github.com/custodia-labs/folio/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/folio/internal/adapters/driving/cli"
	"github.com/custodia-labs/folio/internal/core/services"
	"github.com/custodia-labs/folio/internal/logger"
	"github.com/custodia-labs/folio/internal/postprocessors"
	"github.com/custodia-labs/folio/internal/postprocessors/pages"
)

// bootstrap wires storage, settings and services from the global flags.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read settings: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := registry.BuildPipeline(settings.Import.PostProcessors, map[string]map[string]any{
		pages.Name: {"page_size": settings.Reader.PageSize},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build post-processors: %w", err)
	}
	logger.Debug("post-processors: %v", pipeline.Names())

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open library: %w", err)
	}
	logger.Debug("library: %s", store.Path())

	novels := store.NovelStore()
	return &cli.Services{
		Import: services.NewImportService(fetch.NewDefault(settings.Fetch), novels, pipeline, settings.Import),
		Library: services.NewLibraryService(novels,
			services.WithReaderPageSize(settings.Reader.PageSize),
			services.WithListLimit(settings.Library.PageSize),
		),
		Bookmarks: services.NewBookmarkService(store.BookmarkStore(), novels),
		Settings:  settingsService,
	}, store.Close, nil
}
