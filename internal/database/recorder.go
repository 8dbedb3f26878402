package database

import (
	"log/slog"

	"github.com/jo-hoe/gobrush/internal/pipeline"
)

// Recorder writes the stage events of one run to the ledger. Write
// failures are logged and never interrupt the run.
type Recorder struct {
	db    DatabaseService
	runID string
}

// NewRecorder opens a new run in the ledger
func NewRecorder(db DatabaseService) (*Recorder, error) {
	id, err := db.CreateRun()
	if err != nil {
		return nil, err
	}
	slog.Debug("database: run started", "run_id", id)
	return &Recorder{db: db, runID: id}, nil
}

// RunID returns the id of the recorded run
func (r *Recorder) RunID() string {
	return r.runID
}

// StageDone implements pipeline.Observer
func (r *Recorder) StageDone(ev pipeline.StageEvent) {
	rec := StageRecord{
		RunID:    r.runID,
		JobIndex: ev.Index,
		Input:    ev.Job.Input,
		Output:   ev.Job.Output,
		Stage:    string(ev.Stage),
		Duration: ev.Duration,
	}
	if ev.Err != nil {
		rec.Error = ev.Err.Error()
	}
	if err := r.db.RecordStage(r.runID, rec); err != nil {
		slog.Warn("database: failed to record stage", "run_id", r.runID, "stage", rec.Stage, "error", err)
	}
}

// Finish closes the run with the driver's result
func (r *Recorder) Finish(runErr error) {
	if err := r.db.FinishRun(r.runID, runErr); err != nil {
		slog.Warn("database: failed to finish run", "run_id", r.runID, "error", err)
	}
}
