// Package config loads, normalizes, and validates the TOML configuration
// for the reelpress daemon and CLI.
package config
