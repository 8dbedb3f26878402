package pipeline

import "time"

// Stage identifies one step of a job
type Stage string

const (
	StageLoad   Stage = "load"
	StageFilter Stage = "filter"
	StageSave   Stage = "save"
)

// StageEvent describes a finished stage. Err is nil on success.
type StageEvent struct {
	Index    int
	Job      Job
	Stage    Stage
	Duration time.Duration
	Err      error
}

// Observer is notified after every stage. Observers cannot influence the run.
type Observer interface {
	StageDone(ev StageEvent)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(ev StageEvent)

// StageDone calls f(ev)
func (f ObserverFunc) StageDone(ev StageEvent) { f(ev) }
