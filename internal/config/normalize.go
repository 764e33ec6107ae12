package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAcquire()
	c.normalizeCaptions()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = defaultTempDir
	}
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.Bind) == "" {
		c.Paths.Bind = defaultBind
	}
	if env := strings.TrimSpace(os.Getenv("REELPRESS_BIND")); env != "" {
		c.Paths.Bind = env
	}
	return nil
}

func (c *Config) normalizeAcquire() {
	if c.Acquire.RequestTimeout <= 0 {
		c.Acquire.RequestTimeout = defaultRequestTimeout
	}
	if strings.TrimSpace(c.Acquire.UserAgent) == "" {
		c.Acquire.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeCaptions() {
	if c.Captions.CharBudget <= 0 {
		c.Captions.CharBudget = defaultCharBudget
	}
	if strings.TrimSpace(c.Whisper.Model) == "" {
		c.Whisper.Model = defaultWhisperModel
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = defaultWorkers
	}
	if c.Workflow.QueueCapacity <= 0 {
		c.Workflow.QueueCapacity = defaultQueueCapacity
	}
	if c.Workflow.TaskTTLHours <= 0 {
		c.Workflow.TaskTTLHours = defaultTaskTTLHours
	}
}

func (c *Config) normalizeLogging() {
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}
