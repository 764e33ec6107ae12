package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"reelpress/internal/logging"
	"reelpress/internal/media/ffprobe"
)

// Engine invokes ffmpeg as an external process for every transcoding
// operation the pipeline needs: single-clip re-encode, multi-clip concat,
// audio extraction, subtitle burn-in, and pass-through copy.
type Engine struct {
	ffmpeg  string
	ffprobe string
	logger  *slog.Logger

	commandRunner func(ctx context.Context, name string, args ...string) error
	prober        func(ctx context.Context, path string) (bool, error)
}

// NewEngine creates an Engine using the given ffmpeg/ffprobe binaries.
func NewEngine(ffmpegBinary, ffprobeBinary string, logger *slog.Logger) *Engine {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	return &Engine{
		ffmpeg:  ffmpegBinary,
		ffprobe: ffprobeBinary,
		logger:  logging.NewComponentLogger(logger, "transcode"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Engine) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.commandRunner = runner
}

// WithProber sets a custom audio prober (for testing).
func (e *Engine) WithProber(prober func(ctx context.Context, path string) (bool, error)) {
	e.prober = prober
}

func (e *Engine) run(ctx context.Context, op string, args []string) error {
	if e.commandRunner != nil {
		if err := e.commandRunner(ctx, e.ffmpeg, args...); err != nil {
			return fmt.Errorf("ffmpeg %s: %w", op, err)
		}
		return nil
	}
	cmd := exec.CommandContext(ctx, e.ffmpeg, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg %s: %w: %s", op, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// HasAudio probes the file's stream list for an audio track. Probe failures
// are reported as "no audio" so a damaged clip degrades instead of aborting.
func (e *Engine) HasAudio(ctx context.Context, path string) bool {
	if e.prober != nil {
		ok, err := e.prober(ctx, path)
		if err != nil {
			e.logger.Warn("audio probe failed", logging.String("path", path), logging.Error(err))
			return false
		}
		return ok
	}
	result, err := ffprobe.Inspect(ctx, e.ffprobe, path)
	if err != nil {
		e.logger.Warn("audio probe failed", logging.String("path", path), logging.Error(err))
		return false
	}
	return result.HasAudio()
}

// Assemble normalizes the fetched clips into one playable stream and reports
// whether the result carries audio. The combined-audio decision is a logical
// OR over the inputs' audio presence.
//
// Inputs with mixed codecs or resolutions are not normalized before the
// concat filter; ffmpeg rejects such sets and the error propagates as an
// assembly failure.
func (e *Engine) Assemble(ctx context.Context, files []string, output string) (bool, error) {
	if len(files) == 0 {
		return false, fmt.Errorf("assemble: no input files")
	}

	hasAudio := false
	for _, file := range files {
		if e.HasAudio(ctx, file) {
			hasAudio = true
			break
		}
	}

	if len(files) == 1 {
		if err := e.run(ctx, "encode", buildEncodeSingleArgs(files[0], output, hasAudio)); err != nil {
			return false, err
		}
		return hasAudio, nil
	}

	if err := e.run(ctx, "concat", buildConcatArgs(files, output, hasAudio)); err != nil {
		return false, err
	}
	return hasAudio, nil
}

// ExtractAudio writes the input's audio track as mono 16 kHz WAV, the format
// the speech-recognition engine expects.
func (e *Engine) ExtractAudio(ctx context.Context, input, output string) error {
	return e.run(ctx, "extract audio", buildExtractAudioArgs(input, output))
}

// BurnASS burns an ASS subtitle definition into the video with the primary
// encode settings.
func (e *Engine) BurnASS(ctx context.Context, input, assPath, output string, hasAudio bool) error {
	return e.run(ctx, "burn ass", buildBurnASSArgs(input, assPath, output, hasAudio))
}

// FallbackStyle is the simplified styling applied when the animated burn-in
// fails and the renderer falls back to a plain SRT.
const FallbackStyle = "FontName=Arial,FontSize=28,PrimaryColour=&H00FFFFFF,BackColour=&H80000000,BorderStyle=1,Outline=2"

// BurnSRT burns a plain SRT file into the video with simplified styling.
func (e *Engine) BurnSRT(ctx context.Context, input, srtPath, output string, hasAudio bool) error {
	return e.run(ctx, "burn srt", buildBurnSRTArgs(input, srtPath, output, hasAudio, FallbackStyle))
}

// Copy re-muxes the input without subtitles, copying streams as-is.
func (e *Engine) Copy(ctx context.Context, input, output string, hasAudio bool) error {
	return e.run(ctx, "copy", buildCopyArgs(input, output, hasAudio))
}
