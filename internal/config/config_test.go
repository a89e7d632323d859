package config

import (
	"errors"
	"io/fs"
	"testing"
	"time"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Identifiers.Strategy != "counter" {
		t.Errorf("Strategy = %q, want 'counter'", cfg.Identifiers.Strategy)
	}
	if cfg.History.MaxVersions != 0 {
		t.Errorf("MaxVersions = %d, want 0", cfg.History.MaxVersions)
	}
	if cfg.Export.Format != FormatTOML {
		t.Errorf("Format = %q, want 'toml'", cfg.Export.Format)
	}
}

func TestLoad_File(t *testing.T) {
	fsys := memFS{"/pagestorm.toml": `
[identifiers]
strategy = "uuid"

[history]
maxVersions = 25
`}

	cfg, err := Load(WithFile("/pagestorm.toml"), WithFileSystem(fsys), WithoutEnv())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Identifiers.Strategy != "uuid" {
		t.Errorf("Strategy = %q, want 'uuid'", cfg.Identifiers.Strategy)
	}
	if cfg.History.MaxVersions != 25 {
		t.Errorf("MaxVersions = %d, want 25", cfg.History.MaxVersions)
	}
	// Untouched settings keep their defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want 'info'", cfg.Logging.Level)
	}
	if cfg.Script.OperationLimit != 100_000 {
		t.Errorf("OperationLimit = %d, want 100000", cfg.Script.OperationLimit)
	}
	if cfg.Script.TimeoutDuration() != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Script.TimeoutDuration())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(WithFile("/missing.toml"), WithFileSystem(memFS{}), WithoutEnv())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want 'info'", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("TESTPS_LOG_LEVEL", "debug")
	t.Setenv("TESTPS_HISTORY_MAX_VERSIONS", "3")

	fsys := memFS{"/pagestorm.toml": `
[logging]
level = "error"

[history]
maxVersions = 25
`}

	cfg, err := Load(WithFile("/pagestorm.toml"), WithFileSystem(fsys), WithEnvPrefix("TESTPS_"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want 'debug'", cfg.Logging.Level)
	}
	if cfg.History.MaxVersions != 3 {
		t.Errorf("MaxVersions = %d, want 3", cfg.History.MaxVersions)
	}
}

func TestLoad_NumericStringFromEnv(t *testing.T) {
	t.Setenv("TESTPS_IDENTIFIERS_PREFIX", "2024")
	t.Setenv("TESTPS_ID_STRATEGY", "counter")
	t.Setenv("TESTPS_LOGGING_FILE", "1")
	t.Setenv("TESTPS_SCRIPT_OPERATION_LIMIT", "250")

	cfg, err := Load(WithFileSystem(memFS{}), WithEnvPrefix("TESTPS_"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Identifiers.Prefix != "2024" {
		t.Errorf("Prefix = %q, want \"2024\"", cfg.Identifiers.Prefix)
	}
	if cfg.Logging.File != "1" {
		t.Errorf("File = %q, want \"1\"", cfg.Logging.File)
	}
	if cfg.Script.OperationLimit != 250 {
		t.Errorf("OperationLimit = %d, want 250", cfg.Script.OperationLimit)
	}
}

func TestLoad_NonNumericEnvForNumber(t *testing.T) {
	t.Setenv("TESTPS_HISTORY_MAX_VERSIONS", "lots")

	_, err := Load(WithFileSystem(memFS{}), WithEnvPrefix("TESTPS_"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	fsys := memFS{"/pagestorm.toml": "[history\n"}

	_, err := Load(WithFile("/pagestorm.toml"), WithFileSystem(fsys), WithoutEnv())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoad_UnknownSetting(t *testing.T) {
	fsys := memFS{"/pagestorm.toml": "[history]\nmaxVersion = 3\n"}

	_, err := Load(WithFile("/pagestorm.toml"), WithFileSystem(fsys), WithoutEnv())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	fsys := memFS{"/pagestorm.toml": "[export]\nformat = \"pdf\"\n"}

	_, err := Load(WithFile("/pagestorm.toml"), WithFileSystem(fsys), WithoutEnv())
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got: %v", err)
	}

	var ferr *FieldError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if ferr.Path != "export.format" {
		t.Errorf("Path = %q, want 'export.format'", ferr.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"strategy", func(c *Config) { c.Identifiers.Strategy = "random" }, "identifiers.strategy"},
		{"max versions", func(c *Config) { c.History.MaxVersions = -1 }, "history.maxVersions"},
		{"operation limit", func(c *Config) { c.Script.OperationLimit = -5 }, "script.operationLimit"},
		{"timeout", func(c *Config) { c.Script.Timeout = "soon" }, "script.timeout"},
		{"format", func(c *Config) { c.Export.Format = "" }, "export.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			var ferr *FieldError
			if err := cfg.Validate(); !errors.As(err, &ferr) {
				t.Fatalf("expected *FieldError, got: %v", err)
			}
			if ferr.Path != tt.path {
				t.Errorf("Path = %q, want %q", ferr.Path, tt.path)
			}
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.Export.Format = "pdf"

	err := cfg.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined errors, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 2 {
		t.Errorf("got %d errors, want 2", n)
	}
}

func TestValidate_Suggestion(t *testing.T) {
	tests := []struct {
		mutate func(*Config)
		want   string
	}{
		{func(c *Config) { c.Identifiers.Strategy = "uid" }, "uuid"},
		{func(c *Config) { c.Export.Format = "jsn" }, "json"},
		{func(c *Config) { c.Logging.Level = "debgu" }, "debug"},
		{func(c *Config) { c.Export.Format = "markdown" }, ""},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)

		var ferr *FieldError
		if err := cfg.Validate(); !errors.As(err, &ferr) {
			t.Fatalf("expected *FieldError, got: %v", err)
		}
		if ferr.Suggestion != tt.want {
			t.Errorf("%s: Suggestion = %q, want %q", ferr.Path, ferr.Suggestion, tt.want)
		}
	}
}
