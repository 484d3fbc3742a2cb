package database

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
)

// IndexSet declares the indexes one collection needs.
type IndexSet struct {
	Collection string
	Models     []mongo.IndexModel
}

// EnsureIndexes creates every declared index. Indexes that already exist
// with the same keys and options are left untouched by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database, sets ...IndexSet) error {
	total := 0
	for _, set := range sets {
		if len(set.Models) == 0 {
			continue
		}

		names, err := db.Collection(set.Collection).Indexes().CreateMany(ctx, set.Models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", set.Collection, err)
		}
		total += len(names)
	}

	slog.Info("indexes ensured", "collections", len(sets), "indexes", total)

	return nil
}
