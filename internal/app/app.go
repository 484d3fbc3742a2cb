// Package app wires the HTTP service: middleware, the document store
// connection, the service routes and the route modules, then the listener.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dine/backend/internal/config"
	"github.com/dine/backend/internal/database"
	"github.com/dine/backend/internal/handler"
	"github.com/dine/backend/internal/middleware"
)

// Database is the document store handle the bootstrap depends on.
type Database interface {
	Ping(ctx context.Context) error
	Database() *mongo.Database
	EnsureIndexes(ctx context.Context, sets ...database.IndexSet) error
	Close(ctx context.Context)
}

// Connector opens the document store. It must return only after the store answered.
type Connector func(ctx context.Context, uri string, timeout time.Duration) (Database, error)

// ConnectMongo is the default Connector.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (Database, error) {
	db, err := database.New(ctx, uri, timeout)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// App is the service instance. It is built once by Initialize and passed
// explicitly to route modules; nothing about it is process-global.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	connect  Connector
	addr     string
	router   chi.Router
	registry *prometheus.Registry
	db       Database
	listener net.Listener
	state    stateBox
}

// Option customizes Initialize.
type Option func(*App)

// WithLogger sets the logger used for bootstrap and access logs.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithConnector replaces the MongoDB connector.
func WithConnector(connect Connector) Option {
	return func(a *App) {
		a.connect = connect
	}
}

// WithListenAddr overrides the listen address derived from the configured port.
func WithListenAddr(addr string) Option {
	return func(a *App) {
		a.addr = addr
	}
}

// Initialize runs the bootstrap up to, but not including, binding the listener:
// middleware, database connection, indexes, service routes, then modules.
// Any failure is returned as a *StartupError and leaves nothing running.
func Initialize(ctx context.Context, cfg config.Config, modules []Module, opts ...Option) (*App, error) {
	a := &App{
		cfg:      cfg,
		logger:   slog.Default(),
		connect:  ConnectMongo,
		addr:     cfg.Addr(),
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.state.store(StateStarting)

	if err := cfg.Validate(); err != nil {
		return nil, a.fail(StageConfig, err)
	}

	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.router = chi.NewRouter()
	a.router.Use(
		middleware.RequestID,
		middleware.AccessLog(a.logger),
		middleware.NewHTTPMetrics(a.registry).Middleware,
		chimw.Recoverer,
		middleware.AllowAllOrigins(),
		middleware.JSONBody(cfg.BodyLimit),
		middleware.URLEncodedBody(cfg.BodyLimit),
	)

	a.state.store(StateConnecting)
	db, err := a.connect(ctx, cfg.MongoURI, cfg.ConnectTimeout)
	if err != nil {
		a.logger.Error("Cannot connect to the database!", "error", err)
		return nil, a.fail(StageDatabase, err)
	}
	a.db = db
	a.logger.Info("Connected to the database!")

	var indexes []database.IndexSet
	for _, m := range modules {
		indexes = append(indexes, m.Indexes()...)
	}
	if len(indexes) > 0 {
		if err := db.EnsureIndexes(ctx, indexes...); err != nil {
			db.Close(context.Background())
			return nil, a.fail(StageIndexes, err)
		}
	}

	handler.New(db, a.registry).RegisterRoutes(a.router, cfg.Profile.ServesRoot())

	for _, m := range modules {
		if err := m.Mount(a); err != nil {
			db.Close(context.Background())
			return nil, a.fail(StageRoutes, fmt.Errorf("mount %s: %w", m.Name(), err))
		}
		a.logger.Debug("route module mounted", "module", m.Name())
	}

	return a, nil
}

func (a *App) fail(stage Stage, err error) error {
	a.state.store(StateTerminated)
	return &StartupError{Stage: stage, Err: err}
}

// Router returns the router route modules attach to.
func (a *App) Router() chi.Router {
	return a.router
}

// Handler returns the complete HTTP handler including middleware.
func (a *App) Handler() http.Handler {
	return a.router
}

// Database returns the connected document store database.
func (a *App) Database() *mongo.Database {
	return a.db.Database()
}

// Config returns the configuration the App was built with.
func (a *App) Config() config.Config {
	return a.cfg
}

// State reports the lifecycle position.
func (a *App) State() State {
	return a.state.load()
}

// Addr returns the bound address once Listen succeeded, else the configured one.
func (a *App) Addr() string {
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return a.addr
}

// Listen binds the TCP listener and logs the confirmation.
func (a *App) Listen() error {
	if a.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		a.logger.Error("failed to bind listener", "addr", a.addr, "error", err)
		a.db.Close(context.Background())
		return a.fail(StageListen, err)
	}
	a.listener = ln
	a.state.store(StateListening)

	port := a.cfg.Port
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = fmt.Sprint(tcp.Port)
	}
	a.logger.Info(fmt.Sprintf("Server is running on port %s.", port),
		"server_addr", "http://localhost:"+port,
	)
	return nil
}

// Serve handles requests until ctx is cancelled, then shuts down gracefully
// and disconnects from the database. Listen must have succeeded.
func (a *App) Serve(ctx context.Context) error {
	if a.listener == nil {
		return errors.New("serve called before listen")
	}

	server := &http.Server{
		Handler:           a.router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Serve(a.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	defer a.db.Close(context.Background())

	select {
	case err := <-serverErr:
		a.state.store(StateTerminated)
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	a.state.store(StateTerminated)
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}

// Run binds the listener and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.Listen(); err != nil {
		return err
	}
	return a.Serve(ctx)
}
