package params

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-params/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is an Fx application resolving parameters on start.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options, os.Stderr),
	}
}

func configure(options *Options, w io.Writer) *fx.App {
	config := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat, Service: ""}
	logger := logging.NewLogger(config, w)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(config),
		fx.Supply(logger),
		fx.Options(options.Modules...),
	)
}

// Err returns the error Fx recorded while building the dependency graph, if any.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err()
}

// Start starts the Fx application, running the parameter resolution.
func (app *App) Start() error {
	return app.StartContext(context.Background())
}

// StartContext starts the Fx application with ctx bounding the start hooks.
func (app *App) StartContext(ctx context.Context) error {
	if app != nil && app.app != nil {
		err := app.app.Start(ctx)
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
