package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation matching TOML tables, e.g. "index.backend".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if missing or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if missing or mistyped.
	GetInt(key string) int

	// GetFloat retrieves a float value. Integers are widened.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value, or false if missing or mistyped.
	GetBool(key string) bool

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Keys returns every stored key in sorted order.
	Keys() []string

	// Load re-reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
