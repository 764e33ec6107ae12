package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"reelpress/internal/acquire"
	"reelpress/internal/captions"
	"reelpress/internal/captions/whisper"
	"reelpress/internal/config"
	"reelpress/internal/logging"
	"reelpress/internal/media/transcode"
	"reelpress/internal/pipeline"
	"reelpress/internal/render"
	"reelpress/internal/server"
	"reelpress/internal/task"
)

// Janitor sweep cadence for expired terminal tasks.
const janitorInterval = 10 * time.Minute

// Daemon wires the processing pipeline to the HTTP boundary and enforces
// single-instance execution through a lock file.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *task.Registry
	pool     *pipeline.Pool
	httpSrv  *server.Server

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon with all pipeline dependencies wired from cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	registry := task.NewRegistry(time.Duration(cfg.Workflow.TaskTTLHours) * time.Hour)

	engine := transcode.NewEngine(cfg.FFmpegBinary(), cfg.FFprobeBinary(), logger)
	downloader := acquire.NewDownloader(
		time.Duration(cfg.Acquire.RequestTimeout)*time.Second,
		cfg.Acquire.UserAgent,
		logger,
	)

	var speech captions.SpeechEngine
	if cfg.Whisper.Enabled {
		speech = whisper.NewService(whisper.Config{
			Enabled: cfg.Whisper.Enabled,
			Model:   cfg.Whisper.Model,
		})
	}
	resolver := captions.NewResolver(speech, engine, cfg.Captions.CharBudget, logger)
	renderer := render.NewRenderer(engine, logger)

	processor := pipeline.NewProcessor(
		registry,
		downloader,
		engine,
		resolver,
		renderer,
		cfg.Paths.TempDir,
		cfg.Paths.OutputDir,
		logger,
	)
	pool := pipeline.NewPool(processor, registry, cfg.Workflow.Workers, cfg.Workflow.QueueCapacity, logger)

	handlers := server.NewHandlers(registry, pool, logger)
	httpSrv := server.New(cfg.Paths.Bind, server.NewRouter(handlers, logger), logger)

	lockPath := filepath.Join(cfg.Paths.LogDir, "reelpressd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		registry: registry,
		pool:     pool,
		httpSrv:  httpSrv,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and brings up the worker pool, registry
// janitor, and HTTP server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another reelpress daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.registry.StartJanitor(runCtx, janitorInterval)
	d.pool.Start(runCtx)

	if err := d.httpSrv.Start(runCtx); err != nil {
		cancel()
		d.cancel = nil
		_ = d.lock.Unlock()
		return fmt.Errorf("start http server: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("bind", d.httpSrv.Addr()),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the HTTP server, drains the worker pool, and releases the
// instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.httpSrv.Stop()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.pool.Shutdown()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("cannot release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}
