package snapshot

// Config holds configuration for snapshot storage.
type Config struct {
	// Backend selects where snapshots live: "file" or "object".
	Backend string `mapstructure:"backend" default:"file"`
	// Dir is the base directory for relative snapshot names with the file backend.
	Dir string `mapstructure:"dir" default:""`
	// Prefix is the object key prefix with the object backend.
	Prefix string `mapstructure:"prefix" default:"snapshots"`
	// CacheTTLSeconds is how long built code indices are cached by the server. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

const (
	BackendFile   = "file"
	BackendObject = "object"
)

// IsValidBackend checks if the configured backend is known.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendFile, BackendObject:
		return true
	default:
		return false
	}
}
