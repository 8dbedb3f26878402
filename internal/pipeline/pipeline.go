package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jo-hoe/gobrush/internal/imaging"
)

// Loader reads an encoded image into memory
type Loader interface {
	Load(ctx context.Context, path string) (*imaging.Image, error)
}

// Filter turns one image into a new one without mutating its input
type Filter interface {
	Apply(ctx context.Context, img *imaging.Image) (*imaging.Image, error)
}

// Saver encodes and writes an image under a name
type Saver interface {
	Save(ctx context.Context, img *imaging.Image, name string) error
}

// Job is one (input path, output name) pair
type Job struct {
	Input  string
	Output string
}

// Report lists the jobs that completed, in order
type Report struct {
	Completed []Job
}

// Driver runs load, apply and save for each job in order and stops at the
// first failure.
type Driver struct {
	loader    Loader
	filter    Filter
	saver     Saver
	observers []Observer
}

// NewDriver creates a driver over the given stages
func NewDriver(loader Loader, filter Filter, saver Saver, observers ...Observer) *Driver {
	return &Driver{
		loader:    loader,
		filter:    filter,
		saver:     saver,
		observers: observers,
	}
}

func (d *Driver) notify(ev StageEvent) {
	for _, o := range d.observers {
		o.StageDone(ev)
	}
}

// Run processes jobs sequentially. The returned error is a *LoadError,
// *FilterError or *SaveError for the failing stage, or ctx.Err() when the
// context ends between jobs.
func (d *Driver) Run(ctx context.Context, jobs []Job) (Report, error) {
	var report Report
	start := time.Now()

	slog.Info("starting brush run", "job_count", len(jobs))

	for idx, job := range jobs {
		if err := ctx.Err(); err != nil {
			slog.Error("brush run cancelled", "index", idx, "error", err)
			return report, err
		}
		if err := d.runJob(ctx, idx, job); err != nil {
			slog.Error("brush run aborted",
				"index", idx,
				"input", job.Input,
				"output", job.Output,
				"error", err)
			return report, err
		}
		report.Completed = append(report.Completed, job)
	}

	slog.Info("brush run completed",
		"job_count", len(jobs),
		"total_duration_ms", time.Since(start).Milliseconds())
	return report, nil
}

func (d *Driver) runJob(ctx context.Context, idx int, job Job) error {
	stageStart := time.Now()
	img, err := d.loader.Load(ctx, job.Input)
	if err != nil {
		err = asLoadError(job.Input, err)
	}
	d.notify(StageEvent{Index: idx, Job: job, Stage: StageLoad, Duration: time.Since(stageStart), Err: err})
	if err != nil {
		return err
	}

	stageStart = time.Now()
	result, err := d.filter.Apply(ctx, img)
	if err != nil {
		err = asFilterError(err)
	}
	d.notify(StageEvent{Index: idx, Job: job, Stage: StageFilter, Duration: time.Since(stageStart), Err: err})
	if err != nil {
		return err
	}

	stageStart = time.Now()
	err = d.saver.Save(ctx, result, job.Output)
	if err != nil {
		err = asSaveError(job.Output, err)
	}
	d.notify(StageEvent{Index: idx, Job: job, Stage: StageSave, Duration: time.Since(stageStart), Err: err})
	if err != nil {
		return err
	}

	slog.Debug("job done", "index", idx, "input", job.Input, "output", job.Output)
	return nil
}

func asLoadError(path string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Path: path, Err: err}
}

func asFilterError(err error) error {
	var fe *FilterError
	if errors.As(err, &fe) {
		return err
	}
	return &FilterError{Index: -1, Err: err}
}

func asSaveError(name string, err error) error {
	var se *SaveError
	if errors.As(err, &se) {
		return err
	}
	return &SaveError{Name: name, Err: err}
}
