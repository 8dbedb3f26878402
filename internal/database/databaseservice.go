package database

import "database/sql"

// DatabaseService records pipeline runs and the outcome of each stage
type DatabaseService interface {
	CreateDatabase() (*sql.DB, error)
	DoesDatabaseExist() bool
	Close() error

	// CreateRun inserts a new run in the running state and returns its id
	CreateRun() (string, error)
	RecordStage(runID string, stage StageRecord) error
	// FinishRun marks the run as succeeded, or failed with runErr when it is non-nil
	FinishRun(runID string, runErr error) error
	GetRun(id string) (*Run, error)
	GetRuns() ([]*Run, error)
	GetStages(runID string) ([]*StageRecord, error)
}
