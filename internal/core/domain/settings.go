package domain

// Default settings values.
const (
	DefaultMinContentLength  = 50
	DefaultFetchTimeout      = 30
	DefaultRequestsPerSecond = 1.0
	DefaultReaderPageSize    = 4000
)

// DefaultAllowedHosts are the hosts imports may fetch from.
func DefaultAllowedHosts() []string {
	return []string{"gutenberg.org"}
}

// DefaultPostProcessors are the chapter processors run on import, in order.
func DefaultPostProcessors() []string {
	return []string{"slug", "collisions", "wordcount"}
}

// ImportSettings configures the import pipeline.
type ImportSettings struct {
	// AllowedHosts lists hosts (and their subdomains) URL imports may use.
	AllowedHosts []string

	// MinContentLength is the minimum stripped body length in characters.
	MinContentLength int

	// PostProcessors names the chapter processors to run, in order.
	PostProcessors []string
}

// FetchSettings configures remote document retrieval.
type FetchSettings struct {
	// TimeoutSeconds bounds a single fetch.
	TimeoutSeconds int

	// RequestsPerSecond throttles requests to remote hosts.
	RequestsPerSecond float64
}

// ReaderSettings configures paginated display.
type ReaderSettings struct {
	// PageSize is the maximum number of characters per chapter page.
	PageSize int
}

// LibrarySettings configures novel listings.
type LibrarySettings struct {
	// PageSize is the number of novels per listing page.
	PageSize int
}

// AppSettings represents all configurable application settings.
type AppSettings struct {
	Import  ImportSettings
	Fetch   FetchSettings
	Reader  ReaderSettings
	Library LibrarySettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Import: ImportSettings{
			AllowedHosts:     DefaultAllowedHosts(),
			MinContentLength: DefaultMinContentLength,
			PostProcessors:   DefaultPostProcessors(),
		},
		Fetch: FetchSettings{
			TimeoutSeconds:    DefaultFetchTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Reader: ReaderSettings{
			PageSize: DefaultReaderPageSize,
		},
		Library: LibrarySettings{
			PageSize: DefaultListLimit,
		},
	}
}

// Validate checks settings for values the pipeline cannot run with.
func (s AppSettings) Validate() error {
	if s.Import.MinContentLength < 0 {
		return ErrInvalidInput
	}
	if s.Fetch.TimeoutSeconds <= 0 || s.Fetch.RequestsPerSecond <= 0 {
		return ErrInvalidInput
	}
	if s.Reader.PageSize <= 0 || s.Library.PageSize <= 0 {
		return ErrInvalidInput
	}
	return nil
}
