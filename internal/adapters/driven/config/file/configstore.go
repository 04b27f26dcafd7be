package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// settingsFile is the TOML wire form of driven.Settings. Unknown keys
// in the file are ignored so hand-edited configs stay forgiving.
type settingsFile struct {
	Completion completionSection `toml:"completion,omitempty"`
	Storage    storageSection    `toml:"storage,omitempty"`
	Watch      watchSection      `toml:"watch,omitempty"`
}

type completionSection struct {
	Backend           string  `toml:"backend,omitempty"`
	Model             string  `toml:"model,omitempty"`
	BaseURL           string  `toml:"base_url,omitempty"`
	RequestsPerSecond float64 `toml:"requests_per_second,omitempty"`
	Burst             int     `toml:"burst,omitempty"`
}

type storageSection struct {
	Dir string `toml:"dir,omitempty"`
}

type watchSection struct {
	Extensions []string `toml:"extensions,omitempty"`
}

func (f settingsFile) toSettings() driven.Settings {
	return driven.Settings{
		Completion: driven.CompletionSettings{
			Backend:           f.Completion.Backend,
			Model:             f.Completion.Model,
			BaseURL:           f.Completion.BaseURL,
			RequestsPerSecond: f.Completion.RequestsPerSecond,
			Burst:             f.Completion.Burst,
		},
		Storage: driven.StorageSettings{Dir: f.Storage.Dir},
		Watch:   driven.WatchSettings{Extensions: f.Watch.Extensions},
	}
}

func fromSettings(s driven.Settings) settingsFile {
	var f settingsFile
	f.Completion.Backend = s.Completion.Backend
	f.Completion.Model = s.Completion.Model
	f.Completion.BaseURL = s.Completion.BaseURL
	f.Completion.RequestsPerSecond = s.Completion.RequestsPerSecond
	f.Completion.Burst = s.Completion.Burst
	f.Storage.Dir = s.Storage.Dir
	f.Watch.Extensions = s.Watch.Extensions
	return f
}

// ConfigStore reads and writes settings as a TOML file in the scholia
// config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	settings driven.Settings
}

// NewConfigStore creates a TOML-backed config store. If configDir is
// empty, defaults to ~/.scholia/config.toml. A missing file is not an
// error; zero settings mean built-in defaults everywhere.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".scholia")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{filePath: filepath.Join(configDir, "config.toml")}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var f settingsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return err
	}
	s.settings = f.toSettings()
	return nil
}

// Settings returns the currently loaded settings.
func (s *ConfigStore) Settings() driven.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.settings
	st.Watch.Extensions = append([]string(nil), st.Watch.Extensions...)
	return st
}

// Save persists the given settings and makes them current.
func (s *ConfigStore) Save(st driven.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(fromSettings(st))
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return err
	}

	s.settings = st
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
