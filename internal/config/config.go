package config

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/pagestorm/internal/config/loader"
	"github.com/dshills/pagestorm/internal/engine/ident"
)

// Export formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Config holds all Pagestorm settings.
type Config struct {
	Logging     LoggingConfig     `toml:"logging"`
	Identifiers IdentifiersConfig `toml:"identifiers"`
	History     HistoryConfig     `toml:"history"`
	Script      ScriptConfig      `toml:"script"`
	Export      ExportConfig      `toml:"export"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// IdentifiersConfig selects the page identifier generator.
type IdentifiersConfig struct {
	Strategy string `toml:"strategy"`
	Prefix   string `toml:"prefix"`
}

// HistoryConfig configures the version history.
type HistoryConfig struct {
	MaxVersions int `toml:"maxVersions"`
}

// ScriptConfig configures the Lua script runtime.
type ScriptConfig struct {
	// OperationLimit caps document calls per script run. Zero is unlimited.
	OperationLimit int64 `toml:"operationLimit"`
	// Timeout is a duration string such as "30s". Empty disables it.
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns the parsed script timeout.
func (s ScriptConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.Timeout)
	return d
}

// ExportConfig configures document export.
type ExportConfig struct {
	// Format is used when the destination does not name one.
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging:     LoggingConfig{Level: "info"},
		Identifiers: IdentifiersConfig{Strategy: ident.StrategyCounter},
		Script:      ScriptConfig{OperationLimit: 100_000, Timeout: "30s"},
		Export:      ExportConfig{Format: FormatTOML},
	}
}

var (
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	strategies = []string{ident.StrategyCounter, ident.StrategyUUID}
	formats    = []string{FormatTOML, FormatJSON}
)

// Validate checks every setting and reports all violations at once.
// Each violation is a *FieldError matching ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error

	if err := oneOf("logging.level", strings.ToLower(c.Logging.Level), logLevels); err != nil {
		errs = append(errs, err)
	}
	if err := oneOf("identifiers.strategy", c.Identifiers.Strategy, strategies); err != nil {
		errs = append(errs, err)
	}
	if c.History.MaxVersions < 0 {
		errs = append(errs, &FieldError{Path: "history.maxVersions", Value: c.History.MaxVersions, Reason: "must not be negative"})
	}
	if c.Script.OperationLimit < 0 {
		errs = append(errs, &FieldError{Path: "script.operationLimit", Value: c.Script.OperationLimit, Reason: "must not be negative"})
	}
	if c.Script.Timeout != "" {
		if d, err := time.ParseDuration(c.Script.Timeout); err != nil || d < 0 {
			errs = append(errs, &FieldError{Path: "script.timeout", Value: c.Script.Timeout, Reason: "must be a non-negative duration"})
		}
	}
	if err := oneOf("export.format", c.Export.Format, formats); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// oneOf rejects a value outside options and suggests the nearest option
// within two edits.
func oneOf(path, value string, options []string) error {
	if slices.Contains(options, value) {
		return nil
	}

	err := &FieldError{
		Path:   path,
		Value:  value,
		Reason: "must be one of " + strings.Join(options, ", "),
	}
	best := 3
	for _, opt := range options {
		if d := levenshtein.ComputeDistance(value, opt); d < best {
			best = d
			err.Suggestion = opt
		}
	}
	return err
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	file      string
	fs        loader.FileSystem
	envPrefix string
	env       bool
}

// WithFile reads settings from a TOML file. A missing file is ignored.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithFileSystem sets the file system the settings file is read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.env = false
	}
}

// Load reads defaults, the settings file and the environment, then
// validates the result.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		env:       true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var layers []loader.Loader
	if o.file != "" {
		layers = append(layers, loader.NewTOMLLoaderWithFS(o.fs, o.file))
	}
	if o.env {
		layers = append(layers, loader.NewEnvLoader(o.envPrefix))
	}

	merged := make(map[string]any)
	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := decode(merged, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays the settings map onto cfg. Unknown settings are errors.
func decode(settings map[string]any, cfg *Config) error {
	if len(settings) == 0 {
		return nil
	}

	coerce(settings, reflect.TypeFor[Config]())

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// coerce converts string settings into the integer or boolean kind of the
// struct field they target. Strings that do not parse are left alone so
// decode reports them.
func coerce(settings map[string]any, t reflect.Type) {
	for key, value := range settings {
		field, ok := fieldByTag(t, key)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case map[string]any:
			if field.Type.Kind() == reflect.Struct {
				coerce(v, field.Type)
			}
		case string:
			if typed, ok := parseAs(strings.TrimSpace(v), field.Type.Kind()); ok {
				settings[key] = typed
			}
		}
	}
}

func parseAs(s string, kind reflect.Kind) (any, bool) {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, 64)
		return i, err == nil
	case reflect.Bool:
		switch strings.ToLower(s) {
		case "true", "yes", "on", "1":
			return true, true
		case "false", "no", "off", "0":
			return false, true
		}
	}
	return nil, false
}

func fieldByTag(t reflect.Type, tag string) (reflect.StructField, bool) {
	for i := range t.NumField() {
		f := t.Field(i)
		if name, _, _ := strings.Cut(f.Tag.Get("toml"), ","); name == tag {
			return f, true
		}
	}
	return reflect.StructField{}, false
}
