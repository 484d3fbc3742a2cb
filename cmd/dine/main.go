// @title			Dine API
// @version		1.0
// @description	Backend service for the dine tutorials catalogue.
// @BasePath		/

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dine/backend/internal/app"
	"github.com/dine/backend/internal/config"
	"github.com/dine/backend/internal/database"
	"github.com/dine/backend/internal/logger"
	"github.com/dine/backend/internal/repository"
	"github.com/dine/backend/internal/routes"
)

func main() {
	if err := newCLI(runServe, runMigrate).Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newCLI(serve, migrate cli.ActionFunc) *cli.App {
	return &cli.App{
		Name:  "dine",
		Usage: "Backend server for the dine tutorials catalogue",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "json",
				Usage:   "Log format (json, text)",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "mongo-uri",
				Aliases: []string{"d"},
				Value:   config.DefaultMongoURI,
				Usage:   "MongoDB connection string",
				EnvVars: []string{"MONGO_URI"},
			},
			&cli.DurationFlag{
				Name:    "db-connect-timeout",
				Value:   config.DefaultConnectTimeout,
				Usage:   "Maximum time to wait for the initial database connection",
				EnvVars: []string{"DB_CONNECT_TIMEOUT"},
			},
		}, serveFlags()...),
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")), c.String("log-format"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create the database indexes and exit",
				Action: migrate,
			},
		},
		Action: serve,
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Value:   string(config.DefaultProfile),
			Usage:   "Bootstrap profile (standard: port 5000 with GET /, classic: port 8080 without it)",
			EnvVars: []string{"PROFILE"},
		},
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "HTTP server port (defaults to the profile port)",
			EnvVars: []string{"PORT"},
		},
		&cli.Int64Flag{
			Name:    "body-limit",
			Value:   config.DefaultBodyLimit,
			Usage:   "Maximum request body size in bytes",
			EnvVars: []string{"BODY_LIMIT"},
		},
		&cli.DurationFlag{
			Name:    "shutdown-timeout",
			Value:   config.DefaultShutdownTimeout,
			Usage:   "Graceful shutdown timeout",
			EnvVars: []string{"SHUTDOWN_TIMEOUT"},
		},
	}
}

// loadConfig resolves the configuration from flags and environment.
// An unset port falls back to the profile default.
func loadConfig(c *cli.Context) config.Config {
	cfg := config.New(config.Profile(c.String("profile")))

	if port := c.String("port"); port != "" {
		cfg.Port = port
	}
	cfg.MongoURI = c.String("mongo-uri")
	cfg.LogLevel = c.String("log-level")
	cfg.LogFormat = c.String("log-format")
	cfg.ConnectTimeout = c.Duration("db-connect-timeout")
	cfg.BodyLimit = c.Int64("body-limit")
	cfg.ShutdownTimeout = c.Duration("shutdown-timeout")
	return cfg
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig(c)

	a, err := app.Initialize(ctx, cfg, routes.Default())
	if err != nil {
		return err
	}

	return a.Run(ctx)
}

func runMigrate(c *cli.Context) error {
	ctx := c.Context
	cfg := loadConfig(c)
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := database.New(ctx, cfg.MongoURI, cfg.ConnectTimeout)
	if err != nil {
		slog.Error("Cannot connect to the database!", "error", err)
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(context.Background())

	if err := db.EnsureIndexes(ctx, repository.TutorialIndexes()); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return nil
}
