package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAllowedHosts      = "import.allowed_hosts"
	KeyMinContentLength  = "import.min_content_length"
	KeyFetchTimeout      = "fetch.timeout_seconds"
	KeyRequestsPerSecond = "fetch.requests_per_second"
	KeyReaderPageSize    = "reader.page_size"
	KeyLibraryPageSize   = "library.page_size"
	KeyPostProcessors    = "postprocessors"
)

var settingKeys = []string{
	KeyAllowedHosts,
	KeyMinContentLength,
	KeyFetchTimeout,
	KeyRequestsPerSecond,
	KeyReaderPageSize,
	KeyLibraryPageSize,
	KeyPostProcessors,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Keys missing from the store
// take their default values.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Import: domain.ImportSettings{
			AllowedHosts:     s.getStrings(KeyAllowedHosts, defaults.Import.AllowedHosts),
			MinContentLength: s.getInt(KeyMinContentLength, defaults.Import.MinContentLength),
			PostProcessors:   s.getStrings(KeyPostProcessors, defaults.Import.PostProcessors),
		},
		Fetch: domain.FetchSettings{
			TimeoutSeconds:    s.getInt(KeyFetchTimeout, defaults.Fetch.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(KeyRequestsPerSecond, defaults.Fetch.RequestsPerSecond),
		},
		Reader: domain.ReaderSettings{
			PageSize: s.getInt(KeyReaderPageSize, defaults.Reader.PageSize),
		},
		Library: domain.LibrarySettings{
			PageSize: s.getInt(KeyLibraryPageSize, defaults.Library.PageSize),
		},
	}, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		KeyAllowedHosts:      settings.Import.AllowedHosts,
		KeyMinContentLength:  settings.Import.MinContentLength,
		KeyPostProcessors:    settings.Import.PostProcessors,
		KeyFetchTimeout:      settings.Fetch.TimeoutSeconds,
		KeyRequestsPerSecond: settings.Fetch.RequestsPerSecond,
		KeyReaderPageSize:    settings.Reader.PageSize,
		KeyLibraryPageSize:   settings.Library.PageSize,
	}
	for _, key := range settingKeys {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set updates a single setting, parsing value to the key's type.
// Lists are comma-separated.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyAllowedHosts:
		settings.Import.AllowedHosts = splitList(value)
	case KeyPostProcessors:
		settings.Import.PostProcessors = splitList(value)
	case KeyMinContentLength:
		err = parseInt(value, &settings.Import.MinContentLength)
	case KeyFetchTimeout:
		err = parseInt(value, &settings.Fetch.TimeoutSeconds)
	case KeyReaderPageSize:
		err = parseInt(value, &settings.Reader.PageSize)
	case KeyLibraryPageSize:
		err = parseInt(value, &settings.Library.PageSize)
	case KeyRequestsPerSecond:
		var f float64
		if f, err = strconv.ParseFloat(value, 64); err == nil {
			settings.Fetch.RequestsPerSecond = f
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// Keys returns the recognised config keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStrings(key string, def []string) []string {
	if v := s.configStore.GetStringSlice(key); v != nil {
		return v
	}
	return def
}

func parseInt(value string, dst *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
