package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"reelpress/internal/captions"
)

// Service provides word-level transcription through the WhisperX CLI.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
	lookPath      func(name string) (string, error)
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config) *Service {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Service{cfg: cfg, lookPath: exec.LookPath}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// WithLookPath sets a custom binary locator (for testing).
func (s *Service) WithLookPath(lookPath func(name string) (string, error)) {
	s.lookPath = lookPath
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Available reports whether the engine can run: it must be enabled in config
// and the uvx launcher must be on PATH.
func (s *Service) Available() bool {
	if !s.cfg.Enabled {
		return false
	}
	_, err := s.lookPath(UVXCommand)
	return err == nil
}

// Transcribe runs WhisperX over the audio file requesting word-level
// timestamps and returns the flattened, time-ordered word sequence.
func (s *Service) Transcribe(ctx context.Context, audioPath string) ([]captions.WordTiming, error) {
	if audioPath == "" {
		return nil, fmt.Errorf("transcribe: audio path required")
	}
	outputDir := filepath.Dir(audioPath)

	args := []string{
		"whisperx",
		audioPath,
		"--model", s.cfg.Model,
		"--output_dir", outputDir,
		"--output_format", outputFormat,
		"--device", cpuDevice,
		"--compute_type", cpuComputeType,
	}
	if err := s.run(ctx, UVXCommand, args...); err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	defer os.Remove(jsonPath)

	return loadWords(jsonPath)
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

type payloadWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type payloadSegment struct {
	Words []payloadWord `json:"words"`
}

type payload struct {
	Segments []payloadSegment `json:"segments"`
}

func loadWords(jsonPath string) ([]captions.WordTiming, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var parsed payload
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}

	var words []captions.WordTiming
	for _, segment := range parsed.Segments {
		for _, word := range segment.Words {
			text := strings.TrimSpace(word.Word)
			if text == "" {
				continue
			}
			words = append(words, captions.WordTiming{Word: text, Start: word.Start, End: word.End})
		}
	}
	return words, nil
}
