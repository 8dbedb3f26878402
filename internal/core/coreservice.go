package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/jo-hoe/gobrush/internal/brush"
	"github.com/jo-hoe/gobrush/internal/cache"
	"github.com/jo-hoe/gobrush/internal/cache/memory"
	"github.com/jo-hoe/gobrush/internal/cache/redis"
	"github.com/jo-hoe/gobrush/internal/config"
	"github.com/jo-hoe/gobrush/internal/database"
	"github.com/jo-hoe/gobrush/internal/imageio"
	"github.com/jo-hoe/gobrush/internal/metrics"
	"github.com/jo-hoe/gobrush/internal/pipeline"
)

// CoreService owns every collaborator built from the configuration
type CoreService struct {
	config          *config.Config
	adapter         *imageio.Adapter
	registry        *brush.Registry
	chain           *brush.Chain
	filter          pipeline.Filter
	cacheProvider   cache.Provider
	databaseService database.DatabaseService
	metrics         *metrics.Metrics
}

// NewCoreService builds the object graph for cfg on top of fs. Only
// configuration errors are returned; an unavailable cache or ledger is
// logged and left out.
func NewCoreService(ctx context.Context, cfg *config.Config, fs afero.Fs) (*CoreService, error) {
	format, err := imageio.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	registry := brush.NewDefaultRegistry()
	chain, err := brush.NewChain(registry, brushConfigs(cfg.Brushes))
	if err != nil {
		return nil, fmt.Errorf("failed to build brush chain: %w", err)
	}

	service := &CoreService{
		config: cfg,
		adapter: imageio.NewAdapter(fs, imageio.Options{
			OutputDir: cfg.Output.Directory,
			Format:    format,
			Quality:   cfg.Output.Quality,
			Decode: imageio.DecodeOptions{
				SVGFallbackWidth:  cfg.Input.SVGFallbackWidth,
				SVGFallbackHeight: cfg.Input.SVGFallbackHeight,
			},
		}),
		registry: registry,
		chain:    chain,
		filter:   chain,
		metrics:  metrics.New(),
	}

	if provider, err := getCacheProvider(ctx, cfg.Cache); err != nil {
		slog.Error("failed to initialize cache, continuing without it", "type", cfg.Cache.Type, "error", err)
	} else if provider != nil {
		service.cacheProvider = provider
		service.filter = cache.NewFilter(provider, chain, chain.Fingerprint())
		slog.Info("cache initialized successfully", "type", cfg.Cache.Type)
	}

	if databaseService, err := getDatabaseService(cfg.Database); err != nil {
		slog.Error("failed to initialize database, continuing without run ledger", "type", cfg.Database.Type, "error", err)
	} else if databaseService != nil {
		service.databaseService = databaseService
		slog.Info("database initialized successfully", "type", cfg.Database.Type)
	}

	slog.Info("core service ready",
		"brushes", chain.Names(),
		"jobs", len(cfg.Jobs),
		"format", string(format))
	return service, nil
}

// brushConfigs converts configured brushes, falling back to the default chain
func brushConfigs(configured []config.BrushConfig) []brush.Config {
	if len(configured) == 0 {
		return brush.DefaultConfigs()
	}
	out := make([]brush.Config, len(configured))
	for i, c := range configured {
		out[i] = brush.Config{Name: c.Name, Params: c.Params}
	}
	return out
}

func getCacheProvider(ctx context.Context, cfg config.Cache) (cache.Provider, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "memory":
		return memory.New(cfg.MaxEntries), nil
	case "redis":
		return redis.New(ctx, cfg.Address, cfg.PoolSize, cfg.TTL)
	}
	return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
}

func getDatabaseService(cfg config.Database) (database.DatabaseService, error) {
	if cfg.Type == "" {
		return nil, nil
	}
	databaseService, err := database.NewDatabase(cfg.Type, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return databaseService, nil
}

// Jobs returns the configured jobs in order
func (service *CoreService) Jobs() []pipeline.Job {
	jobs := make([]pipeline.Job, len(service.config.Jobs))
	for i, j := range service.config.Jobs {
		jobs[i] = pipeline.Job{Input: j.Input, Output: j.Output}
	}
	return jobs
}

// Run executes every configured job and records the run when a ledger is
// configured.
func (service *CoreService) Run(ctx context.Context) (pipeline.Report, error) {
	observers := []pipeline.Observer{service.metrics}

	var recorder *database.Recorder
	if service.databaseService != nil {
		r, err := database.NewRecorder(service.databaseService)
		if err != nil {
			slog.Error("failed to start run record", "error", err)
		} else {
			recorder = r
			observers = append(observers, r)
		}
	}

	driver := pipeline.NewDriver(service.adapter, service.filter, service.adapter, observers...)
	report, err := driver.Run(ctx, service.Jobs())

	if recorder != nil {
		recorder.Finish(err)
		slog.Info("run recorded", "run_id", recorder.RunID())
	}
	return report, err
}

// uploadJob labels the stage events of requests handled by Process
var uploadJob = pipeline.Job{Input: "upload", Output: "response"}

// Process applies the brush chain to one encoded image and encodes the
// result in format. Errors are the pipeline's stage errors. Every stage is
// reported to the metrics collectors the same way Run reports them.
func (service *CoreService) Process(ctx context.Context, data []byte, format imageio.Format) ([]byte, error) {
	start := time.Now()
	img, _, err := imageio.Decode(data, imageio.DecodeOptions{
		SVGFallbackWidth:  service.config.Input.SVGFallbackWidth,
		SVGFallbackHeight: service.config.Input.SVGFallbackHeight,
	})
	if err != nil {
		err = &pipeline.LoadError{Path: uploadJob.Input, Err: err}
	}
	service.stageDone(pipeline.StageLoad, start, err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	out, err := service.filter.Apply(ctx, img)
	if err != nil {
		var fe *pipeline.FilterError
		if !errors.As(err, &fe) {
			err = &pipeline.FilterError{Index: -1, Err: err}
		}
	}
	service.stageDone(pipeline.StageFilter, start, err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	var buf bytes.Buffer
	if err = imageio.Encode(&buf, out, format, service.config.Output.Quality); err != nil {
		err = &pipeline.SaveError{Name: uploadJob.Output, Err: err}
	}
	service.stageDone(pipeline.StageSave, start, err)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (service *CoreService) stageDone(stage pipeline.Stage, start time.Time, err error) {
	service.metrics.StageDone(pipeline.StageEvent{
		Job:      uploadJob,
		Stage:    stage,
		Duration: time.Since(start),
		Err:      err,
	})
}

// BrushNames lists the registered brushes
func (service *CoreService) BrushNames() []string {
	return service.registry.Names()
}

// ChainNames lists the brushes applied, in order
func (service *CoreService) ChainNames() []string {
	return service.chain.Names()
}

// DefaultFormat is the configured output format
func (service *CoreService) DefaultFormat() imageio.Format {
	f, _ := imageio.ParseFormat(service.config.Output.Format)
	return f
}

// Metrics returns the collectors shared by runs and HTTP requests
func (service *CoreService) Metrics() *metrics.Metrics {
	return service.metrics
}

// Database returns the run ledger, or nil when none is configured
func (service *CoreService) Database() database.DatabaseService {
	return service.databaseService
}

// Close releases the cache and the database
func (service *CoreService) Close() error {
	if service.cacheProvider != nil {
		service.cacheProvider.Shutdown()
	}
	if service.databaseService != nil {
		return service.databaseService.Close()
	}
	return nil
}
