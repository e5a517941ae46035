package driven

// ConfigStore holds the flattened settings keys, e.g. "steering.poll_interval_ms".
// The file adapter keeps them as TOML tables; the memory adapter keeps a map.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns "" for a missing or non-string value.
	GetString(key string) string

	// GetInt returns 0 for a missing or non-integer value.
	GetInt(key string) int

	// GetBool returns false for a missing or non-bool value.
	GetBool(key string) bool

	// Set stores a value and persists it.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is the config file location. The default steer file sits beside it.
	Path() string
}
