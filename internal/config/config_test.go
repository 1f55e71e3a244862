package config

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"
)

// mapFS adapts fstest.MapFS to the FileSystem interface with OS-style
// missing-file errors.
type mapFS struct {
	fstest.MapFS
}

func (m mapFS) ReadFile(path string) ([]byte, error) {
	data, err := m.MapFS.ReadFile(path)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithFS(mapFS{fstest.MapFS{}}, "promptkit.toml")
	if err != nil {
		t.Fatalf("LoadWithFS() error = %v", err)
	}
	if cfg.Tags.DebounceMS != DefaultDebounceMS {
		t.Errorf("DebounceMS = %d, want %d", cfg.Tags.DebounceMS, DefaultDebounceMS)
	}
	if cfg.Tags.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", cfg.Tags.Limit, DefaultLimit)
	}
	if !cfg.Tags.Watch {
		t.Error("Watch = false, want true by default")
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	fsys := mapFS{fstest.MapFS{
		"promptkit.toml": &fstest.MapFile{Data: []byte(`
[tags]
bundled = "/usr/share/promptkit/danbooru.csv"
paths = ["/opt/tags/danbooru.csv", "/opt/tags/extra"]
debounce_ms = 120
limit = 25
watch = false

[ui]
overrides = "ui-config.json"

[logging]
level = "debug"
`)},
	}}

	cfg, err := LoadWithFS(fsys, "promptkit.toml")
	if err != nil {
		t.Fatalf("LoadWithFS() error = %v", err)
	}
	if cfg.Tags.Bundled != "/usr/share/promptkit/danbooru.csv" {
		t.Errorf("Bundled = %q", cfg.Tags.Bundled)
	}
	if len(cfg.Tags.Paths) != 2 || cfg.Tags.Paths[0] != "/opt/tags/danbooru.csv" {
		t.Errorf("Paths = %v", cfg.Tags.Paths)
	}
	if cfg.Tags.DebounceMS != 120 {
		t.Errorf("DebounceMS = %d, want 120", cfg.Tags.DebounceMS)
	}
	if got := cfg.Tags.Debounce(); got != 120*time.Millisecond {
		t.Errorf("Debounce() = %v, want 120ms", got)
	}
	if cfg.Tags.Limit != 25 {
		t.Errorf("Limit = %d, want 25", cfg.Tags.Limit)
	}
	if cfg.Tags.Watch {
		t.Error("Watch = true, want false")
	}
	if cfg.UI.Overrides != "ui-config.json" {
		t.Errorf("Overrides = %q", cfg.UI.Overrides)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	fsys := mapFS{fstest.MapFS{
		"promptkit.toml": &fstest.MapFile{Data: []byte(`[tags` + "\n")},
	}}

	_, err := LoadWithFS(fsys, "promptkit.toml")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("LoadWithFS() error = %v, want *ParseError", err)
	}
	if parseErr.Path != "promptkit.toml" {
		t.Errorf("ParseError.Path = %q", parseErr.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDebounce, "200")
	t.Setenv(EnvLimit, "10")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvOverrides, "/etc/promptkit/ui-config.json")

	cfg, err := LoadWithFS(mapFS{fstest.MapFS{}}, "promptkit.toml")
	if err != nil {
		t.Fatalf("LoadWithFS() error = %v", err)
	}
	if cfg.Tags.DebounceMS != 200 {
		t.Errorf("DebounceMS = %d, want 200", cfg.Tags.DebounceMS)
	}
	if cfg.Tags.Limit != 10 {
		t.Errorf("Limit = %d, want 10", cfg.Tags.Limit)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.UI.Overrides != "/etc/promptkit/ui-config.json" {
		t.Errorf("Overrides = %q", cfg.UI.Overrides)
	}
}

func TestLoad_EnvOverridesBeatFile(t *testing.T) {
	t.Setenv(EnvDebounce, "30")

	fsys := mapFS{fstest.MapFS{
		"promptkit.toml": &fstest.MapFile{Data: []byte("[tags]\ndebounce_ms = 120\n")},
	}}

	cfg, err := LoadWithFS(fsys, "promptkit.toml")
	if err != nil {
		t.Fatalf("LoadWithFS() error = %v", err)
	}
	if cfg.Tags.DebounceMS != 30 {
		t.Errorf("DebounceMS = %d, want env value 30", cfg.Tags.DebounceMS)
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv(EnvDebounce, "fast")

	if _, err := LoadWithFS(mapFS{fstest.MapFS{}}, "promptkit.toml"); err == nil {
		t.Error("LoadWithFS() = nil error, want failure for non-integer env value")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"negative debounce", func(c *Config) { c.Tags.DebounceMS = -1 }, true},
		{"zero debounce valid", func(c *Config) { c.Tags.DebounceMS = 0 }, false},
		{"zero limit", func(c *Config) { c.Tags.Limit = 0 }, true},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"level case-insensitive", func(c *Config) { c.Logging.Level = "WARN" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
