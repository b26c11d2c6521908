package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/trafficgo/internal/loader"
	"github.com/specialistvlad/trafficgo/internal/transport"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	loader    loader.Loader
	transport transport.Transport
}

// Option overrides one of the App's collaborators.
type Option func(*App)

// WithLoader replaces the file loader.
func WithLoader(l loader.Loader) Option {
	return func(a *App) { a.loader = l }
}

// WithTransport replaces the network transport, mainly for tests.
func WithTransport(t transport.Transport) Option {
	return func(a *App) { a.transport = t }
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW; each App has its own isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.transport == nil {
		a.transport = transport.NewHTTP(transport.WithInsecureSkipVerify(cfg.InsecureSkipVerify))
	}
	return a
}
