package wsmfs

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jcd386/WSM-File-System/pkg/logger"
	"github.com/jcd386/WSM-File-System/pkg/store"
	"github.com/jcd386/WSM-File-System/pkg/store/postgres"
	"github.com/jcd386/WSM-File-System/pkg/store/sqlite"
)

type Config struct {
	// Database configuration. PostgresDSN is the normal backend; SQLitePath
	// selects the embedded backend instead (":memory:" works for local runs).
	PostgresDSN string
	SQLitePath  string
	UseSQLite   bool

	// ReadOnly rejects all write operations when true. It can be toggled at
	// runtime via the admin endpoint.
	ReadOnly bool

	// MaxTreeDepth bounds every traversal; zero selects the default.
	MaxTreeDepth int

	// Server configuration.
	ServerPort string
	LogLevel   string
	LogPath    string
}

type App struct {
	store    store.Store
	service  *Service
	events   *Hub
	config   *Config
	log      zerolog.Logger
	readOnly atomic.Bool
}

func New(config *Config) (*App, error) {
	build := logger.New().Level(config.LogLevel)
	if config.LogPath != "" {
		build = build.ToPath(config.LogPath)
	}
	log, err := build.Make()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	log = log.With().Str("service", "wsmfs").Logger()

	var backing store.Store
	if config.UseSQLite {
		backing, err = sqlite.New(config.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store: %w", err)
		}
		log.Info().Str("path", config.SQLitePath).Msg("using SQLite store")
	} else {
		backing, err = postgres.New(config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info().Msg("connected to PostgreSQL")
	}

	app := &App{config: config, log: log}
	app.readOnly.Store(config.ReadOnly)

	// All reads and writes go through the read-only gate; the gate consults
	// the runtime flag on every write.
	app.store = store.NewReadOnlyStore(backing, app.IsReadOnly)
	app.events = NewHub(log)
	app.service = NewService(app.store, config.MaxTreeDepth, log, app.events)
	return app, nil
}

// Service exposes the operation set directly, for embedding without HTTP.
func (a *App) Service() *Service { return a.service }

func (a *App) IsReadOnly() bool { return a.readOnly.Load() }

func (a *App) SetReadOnly(readOnly bool) {
	a.readOnly.Store(readOnly)
	a.log.Info().Bool("readOnly", readOnly).Msg("read-only mode changed")
}

func (a *App) Close() error {
	a.events.Close()
	return a.store.Close()
}
