package database

import "time"

// Run statuses
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

type Run struct {
	ID         string    `db:"id" json:"id"`
	StartedAt  time.Time `db:"started_at" json:"startedAt"`
	FinishedAt time.Time `db:"finished_at" json:"finishedAt"` // zero while running
	Status     string    `db:"status" json:"status"`
	Error      string    `db:"error" json:"error"`
}

type StageRecord struct {
	RunID    string        `db:"run_id" json:"runId"`
	JobIndex int           `db:"job_index" json:"jobIndex"`
	Input    string        `db:"input" json:"input"`
	Output   string        `db:"output" json:"output"`
	Stage    string        `db:"stage" json:"stage"`
	Duration time.Duration `db:"duration_ms" json:"duration"`
	Error    string        `db:"error" json:"error"`
}
