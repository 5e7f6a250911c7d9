package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/pipelineir/internal/model"
)

// Loader turns a definition path into a scope tree.
type Loader interface {
	Load(ctx context.Context, path string) (*model.Pipeline, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader Loader
}

// NewApp is the constructor for the main application. Compiled documents
// go to outW unless the config names an output file; logs go to logW
// through the app's own isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config, loader Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}
