// Package config loads the promptkit configuration file and applies
// environment overrides.
//
// Configuration lives in a single TOML file. Every field has a working
// default, so a missing file is not an error. Environment variables with
// the PROMPTKIT_ prefix override individual fields after the file is read.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables recognized by Load.
const (
	EnvDebounce  = "PROMPTKIT_DEBOUNCE_MS"
	EnvLimit     = "PROMPTKIT_LIMIT"
	EnvLogLevel  = "PROMPTKIT_LOG_LEVEL"
	EnvOverrides = "PROMPTKIT_UI_OVERRIDES"
)

// Defaults applied before the file and environment are consulted.
const (
	DefaultDebounceMS = 75
	DefaultLimit      = 50
	DefaultLogLevel   = "info"
)

// Config is the resolved application configuration.
type Config struct {
	Tags    Tags    `toml:"tags"`
	UI      UI      `toml:"ui"`
	Logging Logging `toml:"logging"`
}

// Tags configures the suggestion engine.
type Tags struct {
	// Bundled is the vocabulary file shipped with the application. It
	// loads first, so it wins canonical fields on collisions.
	Bundled string `toml:"bundled"`

	// Paths lists extra vocabulary files or directories, merged after
	// the bundled source and before PROMPTKIT_TAG_PATH.
	Paths []string `toml:"paths"`

	// DebounceMS is the keystroke debounce window in milliseconds.
	DebounceMS int `toml:"debounce_ms"`

	// Limit caps the number of candidates per query.
	Limit int `toml:"limit"`

	// Watch enables vocabulary file watching and automatic reload.
	Watch bool `toml:"watch"`
}

// UI configures the override pass.
type UI struct {
	// Overrides is the path to the ui-config.json override document.
	// Empty means no override pass.
	Overrides string `toml:"overrides"`
}

// Logging configures log output.
type Logging struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Debounce returns the debounce window as a duration.
func (t Tags) Debounce() time.Duration {
	return time.Duration(t.DebounceMS) * time.Millisecond
}

// FileSystem abstracts file reads so tests can use an in-memory tree.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem on the real file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) { return os.Open(name) }

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Tags: Tags{
			DebounceMS: DefaultDebounceMS,
			Limit:      DefaultLimit,
			Watch:      true,
		},
		Logging: Logging{Level: DefaultLogLevel},
	}
}

// Load reads the TOML file at path, applies environment overrides and
// validates the result. A missing file is not an error; defaults plus the
// environment apply.
func Load(path string) (Config, error) {
	return LoadWithFS(OSFS{}, path)
}

// LoadWithFS is Load with an explicit file system.
func LoadWithFS(fsys FileSystem, path string) (Config, error) {
	cfg := Default()

	data, err := fsys.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, &ParseError{Path: path, Err: err}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides individual fields from the environment. Vocabulary
// paths from PROMPTKIT_TAG_PATH are handled by the corpus loader, not here.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvDebounce); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvDebounce, v)
		}
		cfg.Tags.DebounceMS = n
	}
	if v, ok := os.LookupEnv(EnvLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvLimit, v)
		}
		cfg.Tags.Limit = n
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvOverrides); ok {
		cfg.UI.Overrides = v
	}
	return nil
}

// Validate checks field ranges after file and environment merging.
func (c Config) Validate() error {
	if c.Tags.DebounceMS < 0 {
		return fmt.Errorf("tags.debounce_ms: %d is negative", c.Tags.DebounceMS)
	}
	if c.Tags.Limit <= 0 {
		return fmt.Errorf("tags.limit: %d must be positive", c.Tags.Limit)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
