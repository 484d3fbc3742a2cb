package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dine/backend/internal/database"
)

func TestNew_InvalidURI(t *testing.T) {
	db, err := database.New(context.Background(), "not-a-uri", time.Second)

	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "parse database URI")
}

func TestNew_UnreachableServer(t *testing.T) {
	start := time.Now()
	db, err := database.New(context.Background(), "mongodb://127.0.0.1:1/dinedb", 300*time.Millisecond)

	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "ping database")
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestPing_NilDB(t *testing.T) {
	var db *database.DB
	assert.Error(t, db.Ping(context.Background()))
}
