package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"reelpress/internal/captions"
	"reelpress/internal/logging"
	"reelpress/internal/subtitles"
)

// Engine is the transcoding collaborator the renderer drives. Each method
// produces the final output file from the assembled input.
type Engine interface {
	BurnASS(ctx context.Context, input, assPath, output string, hasAudio bool) error
	BurnSRT(ctx context.Context, input, srtPath, output string, hasAudio bool) error
	Copy(ctx context.Context, input, output string, hasAudio bool) error
}

// Method names reported for the applied rendering strategy.
const (
	MethodAnimated = "animated"
	MethodPlain    = "plain"
	MethodCopy     = "copy"
)

// Request carries everything one render needs.
type Request struct {
	Input      string
	Output     string
	HasAudio   bool
	Resolution captions.Resolution
	TempDir    string
	TaskID     string
}

// Result reports which strategy produced the output and any warnings
// accumulated while higher-fidelity strategies failed.
type Result struct {
	Method   string
	Warnings []string
}

// Renderer burns captions into the assembled video, degrading gracefully:
// animated ASS burn-in first, then a plain styled SRT burn-in, then a
// subtitle-free copy. Only when every strategy fails does rendering error.
type Renderer struct {
	engine Engine
	logger *slog.Logger
}

// NewRenderer constructs a Renderer around the given transcoding engine.
func NewRenderer(engine Engine, logger *slog.Logger) *Renderer {
	return &Renderer{
		engine: engine,
		logger: logging.NewComponentLogger(logger, "render"),
	}
}

type strategy struct {
	name string
	run  func(ctx context.Context, req Request) error
}

// Render produces req.Output from req.Input. With no cues resolved it goes
// straight to the subtitle-free copy; otherwise it walks the fallback chain.
func (r *Renderer) Render(ctx context.Context, req Request) (Result, error) {
	chain := r.strategies(req.Resolution)

	var warnings []string
	for i, s := range chain {
		err := s.run(ctx, req)
		if err == nil {
			r.logger.Info("render complete",
				logging.String(logging.FieldTaskID, req.TaskID),
				logging.String("method", s.name))
			return Result{Method: s.name, Warnings: warnings}, nil
		}
		if ctx.Err() != nil {
			return Result{Warnings: warnings}, ctx.Err()
		}

		r.logger.Warn("render strategy failed",
			logging.String(logging.FieldTaskID, req.TaskID),
			logging.String("method", s.name),
			logging.Error(err))
		if i < len(chain)-1 {
			warnings = append(warnings, fmt.Sprintf("%s rendering failed: %v", s.name, err))
			continue
		}
		return Result{Warnings: warnings}, fmt.Errorf("all render strategies failed: %w", err)
	}

	return Result{}, fmt.Errorf("no render strategies configured")
}

// strategies builds the ordered chain for the given resolution. Cue-less
// resolutions skip both burn-in strategies.
func (r *Renderer) strategies(res captions.Resolution) []strategy {
	if len(res.Cues) == 0 {
		return []strategy{{name: MethodCopy, run: r.runCopy}}
	}
	return []strategy{
		{name: MethodAnimated, run: r.runAnimated},
		{name: MethodPlain, run: r.runPlain},
		{name: MethodCopy, run: r.runCopy},
	}
}

func (r *Renderer) runAnimated(ctx context.Context, req Request) error {
	assPath := filepath.Join(req.TempDir, fmt.Sprintf("subtitles_%s.ass", req.TaskID))
	content := subtitles.BuildASS(req.Resolution.Cues, req.Resolution.Words)
	if err := os.WriteFile(assPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write ass file: %w", err)
	}
	defer os.Remove(assPath)

	return r.engine.BurnASS(ctx, req.Input, assPath, req.Output, req.HasAudio)
}

func (r *Renderer) runPlain(ctx context.Context, req Request) error {
	srtPath := filepath.Join(req.TempDir, fmt.Sprintf("subtitles_%s.srt", req.TaskID))
	if err := os.WriteFile(srtPath, []byte(captions.WriteSRT(req.Resolution.Cues)), 0o644); err != nil {
		return fmt.Errorf("write srt file: %w", err)
	}
	defer os.Remove(srtPath)

	return r.engine.BurnSRT(ctx, req.Input, srtPath, req.Output, req.HasAudio)
}

func (r *Renderer) runCopy(ctx context.Context, req Request) error {
	return r.engine.Copy(ctx, req.Input, req.Output, req.HasAudio)
}
