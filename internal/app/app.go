package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/pagestorm/internal/config"
	"github.com/dshills/pagestorm/internal/engine"
	"github.com/dshills/pagestorm/internal/engine/ident"
	"github.com/dshills/pagestorm/internal/engine/page"
	"github.com/dshills/pagestorm/internal/manifest"
	"github.com/dshills/pagestorm/internal/script"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// Manifests are opened in order; the first one starts the document.
	Manifests []string

	// ScriptPath is a Lua script run after the manifests are loaded.
	ScriptPath string

	// Output is the destination manifest. Empty writes to Stdout.
	Output string

	// Stdout receives the exported manifest and script output.
	// Defaults to os.Stdout.
	Stdout io.Writer
}

// Application runs one editing session from the command line.
type Application struct {
	config *config.Config
	logger *Logger
	engine *engine.Engine
	opts   Options
}

// New loads configuration, sets up logging and creates the engine.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(config.WithFile(opts.ConfigPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	logger := ConfigureLogging(LoggerConfig{
		Level: ParseLogLevel(cfg.Logging.Level),
		Name:  "pagestorm",
		File:  cfg.Logging.File,
	})

	return newApplication(cfg, logger, opts)
}

func newApplication(cfg *config.Config, logger *Logger, opts Options) (*Application, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	gen, err := ident.New(cfg.Identifiers.Strategy, cfg.Identifiers.Prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	e := engine.New(
		engine.WithGenerator(gen),
		engine.WithMaxVersions(cfg.History.MaxVersions),
		engine.WithLogger(logger.WithComponent("engine")),
	)

	historyLog := logger.WithComponent("history")
	e.OnChange(func(c engine.Change) {
		historyLog.Debug("%s: version %d, %d pages, current %d", c.Kind, c.Version, c.PageCount, c.Current)
	})

	return &Application{
		config: cfg,
		logger: logger,
		engine: e,
		opts:   opts,
	}, nil
}

// Run loads the manifests, runs the script and exports the result.
func (app *Application) Run(ctx context.Context) error {
	if len(app.opts.Manifests) == 0 {
		return ErrNoManifest
	}

	first, rest := app.opts.Manifests[0], app.opts.Manifests[1:]
	if err := app.engine.Open(ctx, manifest.NewLoader(first)); err != nil {
		return NewOperationError("open", first, err)
	}
	app.logger.Info("opened %s (%d pages)", first, app.engine.Count())

	for _, path := range rest {
		if err := app.engine.AppendFrom(ctx, manifest.NewLoader(path)); err != nil {
			return NewOperationError("append", path, err)
		}
		app.logger.Info("appended %s (%d pages)", path, app.engine.Count())
	}

	if app.opts.ScriptPath != "" {
		err := script.RunFile(ctx, app.engine, app.opts.ScriptPath,
			script.WithOperationLimit(app.config.Script.OperationLimit),
			script.WithTimeout(app.config.Script.TimeoutDuration()),
			script.WithOutput(app.opts.Stdout),
		)
		if err != nil {
			return NewOperationError("script", app.opts.ScriptPath, err)
		}
	}

	return app.export(ctx)
}

// export writes the document to Output, or to Stdout in the configured
// format.
func (app *Application) export(ctx context.Context) error {
	if app.opts.Output != "" {
		if err := app.engine.Export(ctx, manifest.NewWriter(), app.opts.Output); err != nil {
			return NewOperationError("export", app.opts.Output, err)
		}
		return nil
	}

	format := app.config.Export.Format
	stdout := engine.WriterFunc(func(_ context.Context, _ string, contents []page.Content) error {
		refs, err := manifest.Refs(contents)
		if err != nil {
			return err
		}
		data, err := manifest.Encode(format, refs)
		if err != nil {
			return err
		}
		_, err = app.opts.Stdout.Write(data)
		return err
	})
	if err := app.engine.Export(ctx, stdout, "-"); err != nil {
		return NewOperationError("export", "stdout", err)
	}
	return nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Engine returns the editing engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}
