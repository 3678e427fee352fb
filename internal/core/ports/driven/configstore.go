package driven

// ConfigStore provides access to application configuration.
// Keys are dot-separated paths such as "import.allowed_hosts"; the file
// adapter maps them onto TOML tables.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when absent or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when absent or mistyped.
	GetInt(key string) int

	// GetFloat retrieves a numeric value as float64, or 0 when absent or mistyped.
	// Integer values are converted.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value, or false when absent or mistyped.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value, or nil when absent.
	GetStringSlice(key string) []string

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
