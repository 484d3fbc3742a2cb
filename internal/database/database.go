package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabaseName is used when the connection string carries no database path.
const DefaultDatabaseName = "dinedb"

// DB wraps a mongo.Client bound to a single database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Client returns the underlying driver client.
func (db *DB) Client() *mongo.Client {
	return db.client
}

// Database returns the handle of the database named in the connection string.
func (db *DB) Database() *mongo.Database {
	return db.db
}

// New connects to the document store at uri and waits for a successful ping.
// connectTimeout bounds server selection for the initial attempt; there is no retry.
func New(ctx context.Context, uri string, connectTimeout time.Duration) (*DB, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parse database URI: %w", err)
	}

	name := cs.Database
	if name == "" {
		name = DefaultDatabaseName
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(connectTimeout).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(10).
		SetMinPoolSize(2)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Debug("mongo client connected", "database", name)

	return &DB{client: client, db: client.Database(name)}, nil
}

// Ping checks that the primary is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.client == nil {
		return errors.New("database not connected")
	}
	return db.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the declared indexes in the bound database.
func (db *DB) EnsureIndexes(ctx context.Context, sets ...IndexSet) error {
	return EnsureIndexes(ctx, db.db, sets...)
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) {
	if err := db.client.Disconnect(ctx); err != nil {
		slog.Error("failed to disconnect from database", "error", err)
		return
	}
	slog.Info("database connection closed")
}
