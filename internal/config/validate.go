package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		return errors.New("paths.temp_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.TempDir == c.Paths.OutputDir {
		return errors.New("paths.temp_dir and paths.output_dir must differ")
	}
	if !strings.Contains(c.Paths.Bind, ":") {
		return fmt.Errorf("paths.bind %q must be host:port", c.Paths.Bind)
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.Workers > 64 {
		return errors.New("workflow.workers must be 64 or fewer")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
