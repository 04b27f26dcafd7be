package driven

// CompletionSettings selects and tunes the completion backend.
type CompletionSettings struct {
	// Backend is one of "", "none", "ollama", "openai" or "anthropic".
	// Empty or "none" disables model-backed analysis.
	Backend string

	// Model overrides the backend's default model.
	Model string

	// BaseURL overrides the backend's default endpoint.
	BaseURL string

	// RequestsPerSecond and Burst tune the rate limiter wrapped around
	// hosted backends. Zero values use the built-in default.
	RequestsPerSecond float64
	Burst             int
}

// StorageSettings locates persisted state.
type StorageSettings struct {
	// Dir is the data directory. Empty defaults to ~/.scholia/data.
	Dir string
}

// WatchSettings tunes watch mode.
type WatchSettings struct {
	// Extensions lists the file extensions watch mode ingests.
	// Empty defaults to plain text and markdown.
	Extensions []string
}

// Settings is the full application configuration. Zero values mean
// "use the built-in default"; consumers apply their own defaults.
type Settings struct {
	Completion CompletionSettings
	Storage    StorageSettings
	Watch      WatchSettings
}

// ConfigStore loads and persists application settings.
// Implementations own the storage format (e.g. a TOML file).
type ConfigStore interface {
	// Settings returns the currently loaded settings.
	Settings() Settings

	// Save persists the given settings and makes them current.
	Save(Settings) error

	// Path returns the backing file path, for display.
	Path() string
}
