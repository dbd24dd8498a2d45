package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"sync"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// The prefix of environment variables defining settings.
const EnvironmentVariablesPrefix = "MB_"

// Options for `Load`.
type Options struct {
	FilePath   string         // The path to a YAML file mapping setting names to values. Ignored if empty or missing.
	DisableEnv bool           // If `true`, `MB_*` environment variables are not read.
	Overrides  map[string]any // Values taking precedence over all other sources.
}

// Settings of a Metabase instance, read from (by increasing precedence) the defaults, a YAML file, the environment,
// and explicit overrides.
type Store struct {
	mu sync.RWMutex
	k  *koanf.Koanf
}

// Creates a store containing only the default values of the settings.
func NewStore() *Store {
	k := koanf.New(".")

	defaults := make(map[string]any, len(Definitions))
	for _, d := range Definitions {
		defaults[d.Name] = d.Default
	}

	// Loading a static map cannot fail.
	_ = k.Load(confmap.Provider(defaults, ""), nil)

	return &Store{k: k}
}

// Loads settings from all sources.
func Load(opts Options) (*Store, error) {
	s := NewStore()

	if len(opts.FilePath) > 0 {
		fileK := koanf.New(".")
		err := fileK.Load(file.Provider(opts.FilePath), yaml.Parser())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load settings from %s: %w", opts.FilePath, err)
		}

		err = s.merge(fileK.All())
		if err != nil {
			return nil, err
		}
	}

	if !opts.DisableEnv {
		err := s.k.Load(env.Provider(EnvironmentVariablesPrefix, ".", settingNameFromEnvironmentVariable), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings from the environment: %w", err)
		}
	}

	err := s.merge(opts.Overrides)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Merges values into the store, using the canonical names of settings. Unknown settings are ignored.
func (s *Store) merge(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}

	canonical := make(map[string]any, len(values))
	for name, v := range values {
		d, ok := lookupDefinition(name)
		if !ok {
			continue
		}
		canonical[d.Name] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.k.Load(confmap.Provider(canonical, ""), nil)
}

// Sets the value of a setting. Unknown settings are ignored.
func (s *Store) Set(name string, value any) error {
	return s.merge(map[string]any{name: value})
}

// Returns the raw value of a setting, or `nil` if it is unknown.
func (s *Store) Get(name string) any {
	d, ok := lookupDefinition(name)
	if !ok {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.k.Get(d.Name)
}

// Returns the value of a boolean setting. Unknown settings and values that are not booleans are read as `false`.
func (s *Store) Bool(name string) bool {
	switch v := s.Get(name).(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}

	return false
}

// Returns the value of a string setting, or an empty string if it is unknown.
func (s *Store) String(name string) string {
	switch v := s.Get(name).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
