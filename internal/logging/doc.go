// Package logging wires log/slog with the console and JSON handlers used
// across the daemon, plus small attribute helpers shared by all components.
package logging
