package app

import "fmt"

// Stage names the bootstrap step that failed.
type Stage string

const (
	StageConfig   Stage = "config"
	StageDatabase Stage = "database"
	StageIndexes  Stage = "indexes"
	StageRoutes   Stage = "routes"
	StageListen   Stage = "listen"
)

// StartupError is returned when the service cannot reach the listening state.
// The process entry point decides how to exit; the bootstrap never terminates the process.
type StartupError struct {
	Stage Stage
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup failed at %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}
