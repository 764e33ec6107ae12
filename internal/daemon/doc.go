// Package daemon assembles the pipeline, worker pool, and HTTP boundary
// into the single-instance background service.
package daemon
