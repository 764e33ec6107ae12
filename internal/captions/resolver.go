package captions

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reelpress/internal/clip"
	"reelpress/internal/logging"
)

// Source identifies which resolution tier produced a set of cues.
type Source string

const (
	SourceSpeech   Source = "speech"
	SourceScript   Source = "script"
	SourceMetadata Source = "metadata"
	SourceNone     Source = "none"
)

// SpeechEngine is the speech-recognition collaborator used by the first
// resolution tier. Available reports whether the engine is installed and
// configured; when it is not, the tier is skipped entirely.
type SpeechEngine interface {
	Available() bool
	Transcribe(ctx context.Context, audioPath string) ([]WordTiming, error)
}

// AudioExtractor extracts the audio track of a media file to a WAV file.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, input, output string) error
}

// Resolution is the outcome of caption resolution: line-level cues plus,
// for the speech tier only, the word-level timings behind them.
type Resolution struct {
	Cues   []Cue
	Words  []WordTiming
	Source Source
}

// Resolver produces caption cues with a three-tier fallback strategy:
// speech-derived word timestamps, the caller-supplied script, and text
// synthesized from clip metadata. Tiers are tried in order; the first one
// yielding cues wins. Tier errors are logged, never fatal.
type Resolver struct {
	engine     SpeechEngine
	extractor  AudioExtractor
	charBudget int
	logger     *slog.Logger
}

// NewResolver constructs a Resolver. The speech engine may be nil, which
// disables the first tier.
func NewResolver(engine SpeechEngine, extractor AudioExtractor, charBudget int, logger *slog.Logger) *Resolver {
	if charBudget <= 0 {
		charBudget = DefaultCharBudget
	}
	return &Resolver{
		engine:     engine,
		extractor:  extractor,
		charBudget: charBudget,
		logger:     logging.NewComponentLogger(logger, "captions"),
	}
}

// Resolve runs the tier chain for the assembled video at combinedPath.
// An empty Resolution with SourceNone means the video renders uncaptioned.
func (r *Resolver) Resolve(ctx context.Context, combinedPath string, hasAudio bool, script string, descriptors []clip.Descriptor, tempDir, taskID string) Resolution {
	if words := r.resolveSpeech(ctx, combinedPath, hasAudio, tempDir, taskID); len(words) > 0 {
		cues := PackWords(words, r.charBudget)
		if len(cues) > 0 {
			r.logger.Info("captions resolved from speech",
				logging.String(logging.FieldTaskID, taskID),
				logging.Int("cues", len(cues)),
				logging.Int("words", len(words)))
			return Resolution{Cues: cues, Words: words, Source: SourceSpeech}
		}
	}

	if strings.TrimSpace(script) != "" {
		cues, err := ParseScript(script)
		if err != nil {
			r.logger.Warn("caption script unusable",
				logging.String(logging.FieldTaskID, taskID),
				logging.Error(err))
		} else {
			r.logger.Info("captions resolved from script",
				logging.String(logging.FieldTaskID, taskID),
				logging.Int("cues", len(cues)))
			return Resolution{Cues: cues, Source: SourceScript}
		}
	}

	texts := make([]string, 0, len(descriptors))
	for _, descriptor := range descriptors {
		texts = append(texts, descriptor.CaptionText())
	}
	if corpus := BuildCorpus(texts); corpus != "" {
		if cues := CuesFromText(corpus); len(cues) > 0 {
			r.logger.Info("captions synthesized from metadata",
				logging.String(logging.FieldTaskID, taskID),
				logging.Int("cues", len(cues)))
			return Resolution{Cues: cues, Source: SourceMetadata}
		}
	}

	r.logger.Info("no captions resolved", logging.String(logging.FieldTaskID, taskID))
	return Resolution{Source: SourceNone}
}

func (r *Resolver) resolveSpeech(ctx context.Context, combinedPath string, hasAudio bool, tempDir, taskID string) []WordTiming {
	if !hasAudio || r.engine == nil || !r.engine.Available() || r.extractor == nil {
		return nil
	}

	audioPath := filepath.Join(tempDir, fmt.Sprintf("audio_%s.wav", taskID))
	if err := r.extractor.ExtractAudio(ctx, combinedPath, audioPath); err != nil {
		r.logger.Warn("audio extraction failed",
			logging.String(logging.FieldTaskID, taskID),
			logging.Error(err))
		return nil
	}
	defer os.Remove(audioPath)

	words, err := r.engine.Transcribe(ctx, audioPath)
	if err != nil {
		r.logger.Warn("transcription failed",
			logging.String(logging.FieldTaskID, taskID),
			logging.Error(err))
		return nil
	}
	return words
}
