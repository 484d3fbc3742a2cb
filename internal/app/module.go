package app

import "github.com/dine/backend/internal/database"

// Module is an externally supplied set of routes. The bootstrap hands it the
// App so it can reach the router and the database, and never looks inside.
type Module interface {
	// Name identifies the module in logs.
	Name() string

	// Indexes declares the indexes the module needs before it serves traffic.
	Indexes() []database.IndexSet

	// Mount attaches the module's routes to app.Router().
	Mount(app *App) error
}
