package state

import (
	"io"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// RunReader covers lookups of persisted runs.
type RunReader interface {
	GetRun(id string) (*models.RunState, error)
	GetRunByToken(token string) (*models.RunState, error)
	ListRuns() ([]*models.RunState, error)
}

// RunWriter covers mutations of persisted runs.
type RunWriter interface {
	CreateRun(run *models.RunState) error
	UpdateRun(run *models.RunState) error
}

// Migrator applies pending schema migrations.
type Migrator interface {
	Migrate() error
}

// RunStore is the persistence contract the workflow driver and approval
// gate depend on, kept abstract so tests can substitute an in-memory
// implementation.
type RunStore interface {
	io.Closer
	Migrator
	RunReader
	RunWriter
}

// Compile-time verification that DB implements all interfaces.
var (
	_ RunStore  = (*DB)(nil)
	_ RunReader = (*DB)(nil)
	_ RunWriter = (*DB)(nil)
	_ Migrator  = (*DB)(nil)
)
