package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"reelpress/internal/acquire"
	"reelpress/internal/captions"
	"reelpress/internal/logging"
	"reelpress/internal/render"
	"reelpress/internal/task"
)

// Progress checkpoints reported through the registry as a task advances.
const (
	ProgressAcquired  = 20
	ProgressResolved  = 70
	ProgressCompleted = 100
)

// Assembler normalizes fetched clips into one playable stream.
type Assembler interface {
	Assemble(ctx context.Context, files []string, output string) (bool, error)
}

// Processor runs one task end to end: acquire clips, assemble them, resolve
// captions, render the final video. Every state change goes through the
// registry so the status boundary always sees a consistent view.
type Processor struct {
	registry   *task.Registry
	downloader *acquire.Downloader
	assembler  Assembler
	resolver   *captions.Resolver
	renderer   *render.Renderer
	tempDir    string
	outputDir  string
	logger     *slog.Logger
}

// NewProcessor wires the pipeline stages together.
func NewProcessor(
	registry *task.Registry,
	downloader *acquire.Downloader,
	assembler Assembler,
	resolver *captions.Resolver,
	renderer *render.Renderer,
	tempDir, outputDir string,
	logger *slog.Logger,
) *Processor {
	return &Processor{
		registry:   registry,
		downloader: downloader,
		assembler:  assembler,
		resolver:   resolver,
		renderer:   renderer,
		tempDir:    tempDir,
		outputDir:  outputDir,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run processes the task with the given id. The task must already be
// registered; Run owns its status transitions from processing to a terminal
// state and never returns an error for task-level failures, which are
// recorded on the task itself.
func (p *Processor) Run(ctx context.Context, id string) {
	t, ok := p.registry.Get(id)
	if !ok {
		p.logger.Error("task vanished before processing", logging.String(logging.FieldTaskID, id))
		return
	}

	if err := p.registry.SetProcessing(id); err != nil {
		p.logger.Error("cannot start task", logging.String(logging.FieldTaskID, id), logging.Error(err))
		return
	}
	p.logger.Info("task started",
		logging.String(logging.FieldTaskID, id),
		logging.Int("clips", len(t.Descriptors)))

	if err := p.process(ctx, t); err != nil {
		if ctx.Err() != nil {
			err = Wrap(ErrCanceled, "shutdown", "processing interrupted", ctx.Err())
		}
		p.logger.Error("task failed", logging.String(logging.FieldTaskID, id), logging.Error(err))
		if failErr := p.registry.Fail(id, err.Error()); failErr != nil {
			p.logger.Error("cannot record failure", logging.String(logging.FieldTaskID, id), logging.Error(failErr))
		}
	}
}

func (p *Processor) process(ctx context.Context, t *task.Task) error {
	acquired, err := p.downloader.AcquireAll(ctx, t.Descriptors, p.tempDir, t.ID)
	p.recordWarnings(t.ID, acquired.Warnings)
	if err != nil {
		return Wrap(ErrAcquisition, "download", "no clips available", err)
	}
	defer removeFiles(acquired.Files)

	p.checkpoint(t.ID, ProgressAcquired)

	combinedPath := filepath.Join(p.tempDir, fmt.Sprintf("combined_%s.mp4", t.ID))
	hasAudio, err := p.assembler.Assemble(ctx, acquired.Files, combinedPath)
	if err != nil {
		return Wrap(ErrAssembly, "combine", "clip assembly failed", err)
	}
	defer os.Remove(combinedPath)

	resolution := p.resolver.Resolve(ctx, combinedPath, hasAudio, t.SubtitleScript, t.Descriptors, p.tempDir, t.ID)

	p.checkpoint(t.ID, ProgressResolved)

	outputPath := filepath.Join(p.outputDir, fmt.Sprintf("final_%s.mp4", t.ID))
	rendered, err := p.renderer.Render(ctx, render.Request{
		Input:      combinedPath,
		Output:     outputPath,
		HasAudio:   hasAudio,
		Resolution: resolution,
		TempDir:    p.tempDir,
		TaskID:     t.ID,
	})
	p.recordWarnings(t.ID, rendered.Warnings)
	if err != nil {
		return Wrap(ErrRender, "render", "video rendering failed", err)
	}

	if err := p.registry.Complete(t.ID, outputPath); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	p.logger.Info("task completed",
		logging.String(logging.FieldTaskID, t.ID),
		logging.String("output", outputPath),
		logging.String("captions", string(resolution.Source)),
		logging.String("render", rendered.Method))
	return nil
}

func (p *Processor) checkpoint(id string, progress int) {
	if err := p.registry.SetProgress(id, progress); err != nil {
		p.logger.Warn("cannot record progress",
			logging.String(logging.FieldTaskID, id),
			logging.Int("progress", progress),
			logging.Error(err))
	}
}

func (p *Processor) recordWarnings(id string, warnings []string) {
	for _, warning := range warnings {
		if err := p.registry.AddWarning(id, warning); err != nil {
			p.logger.Warn("cannot record warning", logging.String(logging.FieldTaskID, id), logging.Error(err))
		}
	}
}

func removeFiles(files []string) {
	for _, file := range files {
		_ = os.Remove(file)
	}
}
