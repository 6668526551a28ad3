package store

// Config holds the tunable limits and paths a Manager uses to load and
// render templates safely.
type Config struct {
	// DataSource is passed to the configured SQL driver unchanged (a file
	// path plus optional query parameters for sqlite).
	DataSource string

	// MaxRenderDepth bounds nested includes plus nested control-flow blocks
	// during a render. Zero means the renderer's own default.
	MaxRenderDepth int

	// MaxSourceBytes rejects a template body larger than this many bytes at
	// Add/Replace time, before it ever reaches Parse. Zero means no limit.
	MaxSourceBytes int

	// RefreshLogInterval, if set, is the number of Refresh calls between
	// logging the humanized total corpus size at slog.LevelDebug. Zero logs
	// on every Refresh.
	RefreshLogInterval int
}

// DefaultConfig returns a Config with safe default values.
func DefaultConfig() Config {
	return Config{
		DataSource:         "./data/wisp.db?_journal_mode=WAL&_busy_timeout=5000",
		MaxRenderDepth:     128,
		MaxSourceBytes:     1 << 20, // 1MB
		RefreshLogInterval: 0,
	}
}
