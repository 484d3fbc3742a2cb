// Package routes holds the route modules mounted by the bootstrap.
package routes

import (
	"errors"

	"github.com/dine/backend/internal/app"
	"github.com/dine/backend/internal/database"
	"github.com/dine/backend/internal/handler"
	"github.com/dine/backend/internal/repository"
	"github.com/dine/backend/internal/service"
)

// Tutorials mounts the tutorials API under /api/tutorials.
type Tutorials struct {
	store service.TutorialStore
}

// NewTutorials returns the tutorials module backed by the App's MongoDB database.
func NewTutorials() *Tutorials {
	return &Tutorials{}
}

// NewTutorialsWithStore returns the tutorials module backed by store.
func NewTutorialsWithStore(store service.TutorialStore) *Tutorials {
	return &Tutorials{store: store}
}

func (m *Tutorials) Name() string {
	return "tutorials"
}

// Indexes declares the tutorial indexes when the module owns a MongoDB collection.
func (m *Tutorials) Indexes() []database.IndexSet {
	if m.store != nil {
		return nil
	}
	return []database.IndexSet{repository.TutorialIndexes()}
}

func (m *Tutorials) Mount(a *app.App) error {
	store := m.store
	if store == nil {
		db := a.Database()
		if db == nil {
			return errors.New("no database available")
		}
		store = repository.NewTutorialRepository(db)
	}

	handler.NewTutorialHandler(service.NewTutorialService(store)).RegisterRoutes(a.Router())
	return nil
}

// Default returns the modules the service mounts in production.
func Default() []app.Module {
	return []app.Module{NewTutorials()}
}
